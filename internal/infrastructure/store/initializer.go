package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/pkg/config"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// Opener opens one candidate store.
type Opener func(ctx context.Context) (Store, error)

// Initializer selects the live store: PostgreSQL when reachable, otherwise
// the embedded SQLite file.
type Initializer struct {
	primary  Opener
	fallback Opener
	logger   zerolog.Logger
}

// Option customizes an Initializer.
type Option func(*Initializer)

// WithPrimary replaces the primary opener.
func WithPrimary(open Opener) Option {
	return func(i *Initializer) { i.primary = open }
}

// WithFallback replaces the fallback opener.
func WithFallback(open Opener) Option {
	return func(i *Initializer) { i.fallback = open }
}

// NewInitializer builds an Initializer from configuration.
func NewInitializer(cfg *config.Config, logger zerolog.Logger, opts ...Option) *Initializer {
	i := &Initializer{
		logger: logger,
		primary: func(ctx context.Context) (Store, error) {
			return OpenPostgres(ctx, &cfg.Database, logger)
		},
		fallback: func(ctx context.Context) (Store, error) {
			return OpenSQLite(ctx, cfg.Storage.FallbackPath)
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Initialize opens exactly one store and ensures its schema. The returned
// store is the only one callers should use for the rest of the process.
func (i *Initializer) Initialize(ctx context.Context) (Store, error) {
	s, primaryErr := i.open(ctx, i.primary)
	if primaryErr == nil {
		i.logger.Info().Str("store", string(s.Kind())).Msg("Connected to primary store")
		return s, nil
	}
	i.logger.Warn().Err(primaryErr).Msg("Primary store unavailable, falling back to embedded store")

	s, fallbackErr := i.open(ctx, i.fallback)
	if fallbackErr == nil {
		i.logger.Info().Str("store", string(s.Kind())).Msg("Using embedded fallback store")
		return s, nil
	}
	i.logger.Error().Err(fallbackErr).Msg("Fallback store unavailable")
	return nil, apperrors.NewStoreUnavailableError(primaryErr, fallbackErr)
}

func (i *Initializer) open(ctx context.Context, open Opener) (Store, error) {
	s, err := open(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: %w", s.Kind(), err)
	}
	return s, nil
}
