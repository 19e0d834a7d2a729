package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/zatekoja/unitycure/backend/pkg/config"
	"github.com/zatekoja/unitycure/backend/pkg/retry"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client and waits, with backoff, for the
// server to report healthy
func NewClient(ctx context.Context, cfg *config.TypesenseConfig, logger zerolog.Logger) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	retryConfig := retry.Bounded(15 * time.Second)
	retryConfig.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("Typesense not ready, retrying")
	}
	err := retry.Do(ctx, retryConfig, "typesense", func(ctx context.Context) error {
		healthy, err := client.Health(ctx, 2*time.Second)
		if err != nil {
			return err
		}
		if !healthy {
			return fmt.Errorf("typesense at %s is not healthy", cfg.URL)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense: %w", err)
	}

	logger.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Wrap adapts an already configured Typesense client
func Wrap(client *typesense.Client) *Client {
	return &Client{client: client}
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}
