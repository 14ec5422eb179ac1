package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/service/wikipedia"
	"github.com/urfave/cli/v3"
)

// Wikipedia holds CLI flags for the MediaWiki API client
type Wikipedia struct {
	endpoint  string
	userAgent string
}

// Flags returns CLI flags for Wikipedia configuration
func (w *Wikipedia) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "wikipedia-endpoint",
			Usage:       "MediaWiki action API endpoint",
			Value:       wikipedia.DefaultEndpoint,
			Category:    "Wikipedia",
			Sources:     cli.EnvVars("STUBSCOUT_WIKIPEDIA_ENDPOINT"),
			Destination: &w.endpoint,
		},
		&cli.StringFlag{
			Name:        "wikipedia-user-agent",
			Usage:       "User-Agent sent to the MediaWiki API (client default when empty)",
			Category:    "Wikipedia",
			Sources:     cli.EnvVars("STUBSCOUT_WIKIPEDIA_USER_AGENT"),
			Destination: &w.userAgent,
		},
	}
}

// LogAttrs returns log attributes for the Wikipedia configuration
func (w *Wikipedia) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("endpoint", w.endpoint),
		slog.String("user_agent", w.userAgent),
	}
}

// Configure creates the Wikipedia client. timeout bounds each API call.
func (w *Wikipedia) Configure(timeout time.Duration) (wikipedia.Service, error) {
	endpoint := orDefault(w.endpoint, wikipedia.DefaultEndpoint)
	opts := []wikipedia.Option{wikipedia.WithTimeout(timeout)}
	if w.userAgent != "" {
		opts = append(opts, wikipedia.WithUserAgent(w.userAgent))
	}

	svc, err := wikipedia.New(endpoint, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create wikipedia client")
	}
	return svc, nil
}
