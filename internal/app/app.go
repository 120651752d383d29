// Package app wires configuration, logging, the LLM client, the local
// catalogue and the resolver for the binaries in cmd/.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/agenthands/saber/internal/config"
	"github.com/agenthands/saber/internal/core/catalog"
	"github.com/agenthands/saber/internal/core/resolver"
	"github.com/agenthands/saber/internal/driver"
	"github.com/agenthands/saber/internal/llm"
	"github.com/agenthands/saber/internal/logging"
)

const DefaultConfigPath = "config/config.toml"

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	LLM      llm.LLMClient
	Catalog  *catalog.Catalog
	Graph    driver.GraphDriver
	Resolver *resolver.Resolver
}

// LoadConfig reads path, or CONFIG_PATH, or the default location. A missing
// file at the default location is not an error: built-in defaults are used.
func LoadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.Default()
	}
	cfg.ApplyEnv()
	cfg.Sanitize()
	return cfg, nil
}

// New builds every collaborator. Memgraph is optional: when it is not
// configured or cannot be reached the bundled catalogue is used alone.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		var err error
		if logger, err = logging.New(cfg.Server.LogLevel); err != nil {
			return nil, err
		}
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	cat, err := catalog.Bundled(
		catalog.WithMinQueryLength(cfg.Resolver.MinQueryLength),
		catalog.WithLimit(cfg.Resolver.MaxSuggestions),
		catalog.WithConfidence(cfg.Resolver.LocalConfidence),
	)
	if err != nil {
		if c, ok := llmClient.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}

	a := &App{Config: cfg, Logger: logger, LLM: llmClient}

	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
		if err != nil {
			logger.Warn("memgraph unavailable, using bundled catalogue only", zap.Error(err))
		} else {
			a.Graph = d
			cat = a.mergeGraph(ctx, cat)
		}
	}

	a.Catalog = cat
	a.Resolver = resolver.New(llmClient, cat, cfg, logger)
	logger.Info("resolver ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Int("catalogue_entries", cat.Len()),
	)
	return a, nil
}

func (a *App) mergeGraph(ctx context.Context, cat *catalog.Catalog) *catalog.Catalog {
	if err := a.Graph.BuildIndices(ctx); err != nil {
		a.Logger.Warn("failed to build indices", zap.Error(err))
	}
	extra, err := catalog.LoadFromGraph(ctx, a.Graph)
	if err != nil {
		a.Logger.Warn("failed to load institutions from memgraph", zap.Error(err))
		return cat
	}
	return cat.Merge(extra)
}

// Close releases the Memgraph driver and any LLM client holding connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Graph != nil {
		if err := a.Graph.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close memgraph driver: %w", err))
		}
	}
	if c, ok := a.LLM.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close LLM client: %w", err))
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}
