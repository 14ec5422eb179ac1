package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds CLI flags for the HTTP server
type Server struct {
	addr        string
	corsOrigins []string
}

// Flags returns CLI flags for server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("STUBSCOUT_ADDR"),
			Destination: &s.addr,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin, repeatable. \"*\" allows any origin",
			Value:       []string{"*"},
			Sources:     cli.EnvVars("STUBSCOUT_CORS_ORIGIN"),
			Destination: &s.corsOrigins,
		},
	}
}

// LogAttrs returns log attributes for the server configuration
func (s *Server) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", s.addr),
		slog.Any("cors_origins", s.corsOrigins),
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// CORSOrigins returns the allowed origins, "*" when none are set
func (s *Server) CORSOrigins() []string {
	if len(s.corsOrigins) == 0 {
		return []string{"*"}
	}
	return s.corsOrigins
}
