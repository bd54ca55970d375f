package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/config"
	"github.com/five82/stories/internal/logging"
	"github.com/five82/stories/internal/persist"
	"github.com/five82/stories/internal/query"
	"github.com/five82/stories/internal/results"
	"github.com/five82/stories/internal/ui"
)

// Options configure the stories application. Empty fields fall back to
// the config file.
type Options struct {
	ConfigPath string
	Endpoint   string
	Schema     string
}

// runtime is everything one session needs, built from config.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	schema   catalog.Schema
	endpoint string
	store    *results.Store
	orch     *query.Orchestrator
}

func boot(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.Schema != "" {
		cfg.Schema = opts.Schema
	}

	endpoint, err := catalog.ParseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	schema, err := catalog.LookupSchema(cfg.Schema)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store := results.NewStore()
	client := catalog.NewClient(schema, cfg.RequestTimeout)
	return &runtime{
		cfg:      cfg,
		logger:   logger,
		schema:   schema,
		endpoint: endpoint,
		store:    store,
		orch:     query.NewOrchestrator(store, client, logger),
	}, nil
}

func (r *runtime) close() {
	_ = r.logger.Sync()
}

// Run boots the stories TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := boot(opts)
	if err != nil {
		return err
	}
	defer rt.close()
	logger := rt.logger

	kv, err := persist.Open(rt.cfg.StorageDriver, rt.cfg.StoragePath)
	if err != nil {
		logger.Warn("open state store failed, using memory", zap.String("driver", rt.cfg.StorageDriver), zap.Error(err))
		kv = persist.NewMemoryStore()
	}
	defer kv.Close()

	term, err := persist.NewValue(kv, persist.KeySearch, rt.cfg.DefaultTerm)
	if err != nil {
		logger.Warn("read search term failed", zap.Error(err))
	}
	theme, err := persist.NewValue(kv, persist.KeyTheme, rt.cfg.Theme)
	if err != nil {
		logger.Warn("read theme failed", zap.Error(err))
	}

	logger.Info("stories starting",
		zap.String("schema", rt.schema.Name),
		zap.String("endpoint", rt.endpoint),
		zap.String("storage", rt.cfg.StorageDriver))

	program := ui.NewProgram(ui.Options{
		Context:      ctx,
		Controller:   query.NewController(term, rt.endpoint),
		Orchestrator: rt.orch,
		Results:      rt.store,
		Schema:       rt.schema,
		Theme:        theme,
		LogPath:      rt.cfg.LogPath,
		Logger:       logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			program.Quit()
		case <-done:
		}
		return nil
	})
	err = g.Wait()
	logger.Info("stories stopped", zap.Error(err))
	return err
}
