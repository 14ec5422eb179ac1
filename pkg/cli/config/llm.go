package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/secmon-lab/stubscout/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

var defaultModels = map[types.LLMProvider]struct {
	summary    string
	validation string
	embedding  string
	dimension  int
}{
	types.LLMProviderOpenAI: {
		summary:    "gpt-4o-mini",
		validation: "gpt-4o",
		embedding:  "text-embedding-3-small",
		dimension:  1536,
	},
	types.LLMProviderGemini: {
		summary:    "gemini-2.0-flash",
		validation: "gemini-2.0-flash",
		dimension:  768,
	},
}

// LLM holds CLI flags for the embedding, summary and validation clients
type LLM struct {
	provider        string
	openaiAPIKey    string `masq:"secret"`
	embeddingModel  string
	summaryModel    string
	validationModel string
	dimension       int
	geminiProject   string
	geminiLocation  string
}

// LLMClients are the configured clients. Summary and validation use their own models.
type LLMClients struct {
	Embedding  gollem.LLMClient
	Summary    gollem.LLMClient
	Validation gollem.LLMClient
	Dimension  int
}

// llmSettings is the effective configuration after provider defaults are applied
type llmSettings struct {
	provider        types.LLMProvider
	embeddingModel  string
	summaryModel    string
	validationModel string
	dimension       int
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider for embeddings and text generation [openai|gemini]",
			Value:       types.LLMProviderOpenAI.String(),
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Embedding model (provider default when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_EMBEDDING_MODEL"),
			Destination: &l.embeddingModel,
		},
		&cli.IntFlag{
			Name:        "embedding-dimension",
			Usage:       "Embedding vector dimension (provider default when 0)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_EMBEDDING_DIMENSION"),
			Destination: &l.dimension,
		},
		&cli.StringFlag{
			Name:        "summary-model",
			Usage:       "Model for article summaries (provider default when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_SUMMARY_MODEL"),
			Destination: &l.summaryModel,
		},
		&cli.StringFlag{
			Name:        "validation-model",
			Usage:       "Model for content validation (provider default when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_VALIDATION_MODEL"),
			Destination: &l.validationModel,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Category:    "LLM",
			Sources:     cli.EnvVars("STUBSCOUT_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
	}
}

// LogAttrs returns log attributes for the LLM configuration
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("provider", l.provider),
		slog.Bool("openai_api_key_set", l.openaiAPIKey != ""),
		slog.String("embedding_model", l.embeddingModel),
		slog.String("summary_model", l.summaryModel),
		slog.String("validation_model", l.validationModel),
		slog.Int("dimension", l.dimension),
		slog.String("gemini_project", l.geminiProject),
		slog.String("gemini_location", l.geminiLocation),
	}
}

// resolve validates the flags and fills provider defaults
func (l *LLM) resolve() (*llmSettings, error) {
	provider, err := types.ParseLLMProvider(l.provider)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidProvider, err.Error(), goerr.V(ProviderKey, l.provider))
	}

	switch provider {
	case types.LLMProviderOpenAI:
		if l.openaiAPIKey == "" {
			return nil, goerr.Wrap(ErrMissingAPIKey, "openai-api-key is required for openai provider")
		}
	case types.LLMProviderGemini:
		if l.geminiProject == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "gemini-project is required for gemini provider", goerr.V(FieldKey, "gemini-project"))
		}
	}

	if l.dimension < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "embedding dimension must not be negative", goerr.V(FieldKey, "embedding-dimension"), goerr.V("value", l.dimension))
	}

	defaults := defaultModels[provider]
	s := &llmSettings{
		provider:        provider,
		embeddingModel:  orDefault(l.embeddingModel, defaults.embedding),
		summaryModel:    orDefault(l.summaryModel, defaults.summary),
		validationModel: orDefault(l.validationModel, defaults.validation),
		dimension:       l.dimension,
	}
	if s.dimension == 0 {
		s.dimension = defaults.dimension
	}
	return s, nil
}

// Configure creates the LLM clients for the selected provider
func (l *LLM) Configure(ctx context.Context) (*LLMClients, error) {
	s, err := l.resolve()
	if err != nil {
		return nil, err
	}

	clients := &LLMClients{Dimension: s.dimension}
	switch s.provider {
	case types.LLMProviderOpenAI:
		if clients.Embedding, err = l.newOpenAI(ctx, s.summaryModel, s.embeddingModel); err != nil {
			return nil, err
		}
		if clients.Summary, err = l.newOpenAI(ctx, s.summaryModel, s.embeddingModel); err != nil {
			return nil, err
		}
		if clients.Validation, err = l.newOpenAI(ctx, s.validationModel, s.embeddingModel); err != nil {
			return nil, err
		}

	case types.LLMProviderGemini:
		if clients.Embedding, err = l.newGemini(ctx, s.summaryModel); err != nil {
			return nil, err
		}
		clients.Summary = clients.Embedding
		if clients.Validation, err = l.newGemini(ctx, s.validationModel); err != nil {
			return nil, err
		}
	}

	return clients, nil
}

func (l *LLM) newOpenAI(ctx context.Context, model, embeddingModel string) (gollem.LLMClient, error) {
	client, err := openai.New(ctx, l.openaiAPIKey,
		openai.WithModel(model),
		openai.WithEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client", goerr.V("model", model))
	}
	return client, nil
}

func (l *LLM) newGemini(ctx context.Context, model string) (gollem.LLMClient, error) {
	client, err := gemini.New(ctx, l.geminiProject, l.geminiLocation, gemini.WithModel(model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client", goerr.V("model", model))
	}
	return client, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
