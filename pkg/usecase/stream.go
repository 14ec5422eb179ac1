package usecase

import (
	"bytes"
	"context"
	"iter"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
)

// streamText asks the LLM for prompt under the system prompt and yields text fragments
// as they arrive. Stopping the iteration cancels the upstream stream.
func streamText(ctx context.Context, llmClient gollem.LLMClient, systemPrompt, prompt string, timeout time.Duration) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		session, err := llmClient.NewSession(ctx, gollem.WithSessionSystemPrompt(systemPrompt))
		if err != nil {
			yield("", goerr.Wrap(model.Upstream(err), "failed to create LLM session"))
			return
		}

		ch, err := session.GenerateStream(ctx, gollem.Text(prompt))
		if err != nil {
			yield("", goerr.Wrap(model.Upstream(err), "failed to start LLM stream"))
			return
		}

		for {
			select {
			case <-ctx.Done():
				yield("", goerr.Wrap(ctx.Err(), "LLM stream interrupted"))
				return

			case resp, ok := <-ch:
				if !ok {
					return
				}
				if resp == nil {
					continue
				}
				if resp.Error != nil {
					yield("", goerr.Wrap(model.Upstream(resp.Error), "LLM stream failed"))
					return
				}
				for _, text := range resp.Texts {
					if text == "" {
						continue
					}
					if !yield(text, nil) {
						return
					}
				}
			}
		}
	}
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}
