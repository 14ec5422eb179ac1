package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/cli/config"
	"github.com/secmon-lab/stubscout/pkg/service/embedding"
	"github.com/secmon-lab/stubscout/pkg/usecase"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// pipelineConfig groups the config needed to build the use cases
type pipelineConfig struct {
	app       config.AppConfigFlag
	llm       config.LLM
	wikipedia config.Wikipedia
	reranker  config.Reranker
}

func (p *pipelineConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, p.app.Flags()...)
	flags = append(flags, p.llm.Flags()...)
	flags = append(flags, p.wikipedia.Flags()...)
	flags = append(flags, p.reranker.Flags()...)
	return flags
}

// Configure builds every service from flags and the config file and wires the use cases
func (p *pipelineConfig) Configure(ctx context.Context) (*usecase.UseCases, error) {
	appCfg, err := p.app.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration")
	}
	settings, err := appCfg.PipelineSettings()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid pipeline settings")
	}
	timeouts, err := appCfg.Timeouts()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timeouts")
	}

	clients, err := p.llm.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure LLM")
	}

	embedder, err := embedding.New(clients.Embedding,
		embedding.WithDimension(clients.Dimension),
		embedding.WithTimeout(timeouts.Embedding),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure embedding service")
	}

	wiki, err := p.wikipedia.Configure(timeouts.Search)
	if err != nil {
		return nil, err
	}

	reranker, err := p.reranker.Configure(timeouts.Rerank)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Pipeline configured",
		"app", appCfg.LogAttrs(),
		"llm", p.llm.LogAttrs(),
		"wikipedia", p.wikipedia.LogAttrs(),
		"reranker", p.reranker.LogAttrs(),
	)

	opts := []usecase.Option{
		usecase.WithPipelineSettings(settings),
		usecase.WithStubCategories(appCfg.StubCategories()),
		usecase.WithSummaryLLM(clients.Summary),
		usecase.WithValidationLLM(clients.Validation),
	}
	if reranker != nil {
		opts = append(opts, usecase.WithReranker(reranker))
	}

	return usecase.New(wiki, embedder, opts...), nil
}
