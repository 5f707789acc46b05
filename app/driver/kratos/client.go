package kratos

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"willvault-auth/app/config"

	kratos "github.com/ory/kratos-client-go"
)

// Client wraps the Ory Kratos SDK for session operations
type Client struct {
	api    *kratos.APIClient
	logger *slog.Logger
}

// NewClient creates a new Kratos API client. The HTTP timeout bounds a
// stalled identity resolution; there is no additional timeout upstream.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.KratosPublicURL == "" {
		return nil, fmt.Errorf("kratos public URL is not configured")
	}

	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{
			URL: cfg.KratosPublicURL,
		},
	}
	configuration.HTTPClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	logger.Info("kratos client initialized", "public_url", cfg.KratosPublicURL)

	return &Client{
		api:    kratos.NewAPIClient(configuration),
		logger: logger.With("component", "kratos_client"),
	}, nil
}

// API returns the underlying Kratos API client
func (c *Client) API() *kratos.APIClient {
	return c.api
}
