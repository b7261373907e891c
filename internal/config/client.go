package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultClientServerURL      = "http://localhost:8000"
	DefaultClientRequestTimeout = 15 * time.Second
)

// ErrInvalidClientConfigs indicates the CLI cannot reach a server.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// Client configures the command-line client.
type Client struct {
	// ServerURL is the base URL of the HTTP API.
	// Env: SENTINEL_SERVER_URL
	ServerURL string `env:"SENTINEL_SERVER_URL"`

	// RequestTimeout bounds every request made by the client.
	// Env: SENTINEL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"SENTINEL_REQUEST_TIMEOUT"`

	// Token is the bearer token used by authenticated commands.
	// Env: SENTINEL_TOKEN
	Token string `env:"SENTINEL_TOKEN"`

	// Verbose enables debug logging.
	Verbose bool `env:"SENTINEL_VERBOSE"`
}

// GetClientConfig loads the client configuration from the environment and
// args, in that priority order, falling back to defaults. It returns the
// positional arguments left after flag parsing.
func GetClientConfig(args []string) (*Client, []string, error) {
	envCfg := &Client{}
	if err := env.Parse(envCfg); err != nil {
		return nil, nil, fmt.Errorf("error getting env configs: %w", err)
	}

	flagCfg := &Client{}
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&flagCfg.ServerURL, "server", "", "Server base URL")
	fs.DurationVar(&flagCfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&flagCfg.Token, "token", "", "Bearer token")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	defaults := &Client{
		ServerURL:      DefaultClientServerURL,
		RequestTimeout: DefaultClientRequestTimeout,
	}

	cfg := new(Client)
	for _, src := range []*Client{envCfg, flagCfg, defaults} {
		if err := mergo.Merge(cfg, src); err != nil {
			return nil, nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if cfg.RequestTimeout < 0 {
		return nil, nil, fmt.Errorf("%w: negative request timeout", ErrInvalidClientConfigs)
	}

	return cfg, fs.Args(), nil
}
