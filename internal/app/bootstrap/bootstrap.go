package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	doodlepoll "doodle/contexts/community-scheduling/doodle-poll"
	postgresadapter "doodle/contexts/community-scheduling/doodle-poll/adapters/postgres"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
	"doodle/internal/platform/config"
	"doodle/internal/platform/httpserver"
	"doodle/internal/platform/logging"
	"doodle/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server *httpserver.Server
	bus    *messaging.Bus
	closer func() error
	logger *slog.Logger
}

// ModuleApp is a wired doodle module plus the resources it holds open.
type ModuleApp struct {
	Module doodlepoll.Module
	Bus    *messaging.Bus
	closer func() error
	logger *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log.Format, cfg.Log.Level).
		With("service", cfg.ServiceName, "process", "api")

	app, err := BuildModule(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &APIApp{
		server: httpserver.New(app.Module, logger, normalizeAddr(cfg.HTTPPort), cfg.CORSAllowedOrigins),
		bus:    app.Bus,
		closer: app.Close,
		logger: logger,
	}, nil
}

// BuildModule wires the doodle module against the configured blob backend.
func BuildModule(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ModuleApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	location, err := loadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	blobs, closer, err := openBlobStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var bus *messaging.Bus
	var events ports.EventPublisher
	if cfg.EnableVoteEvents {
		bus = messaging.NewBus(128, logger)
		events = bus
	}

	module := doodlepoll.NewModule(doodlepoll.Dependencies{
		Blobs:    blobs,
		Clock:    postgresadapter.SystemClock{},
		IDGen:    postgresadapter.UUIDGenerator{},
		Events:   events,
		Location: location,
		Logger:   logger,
	})
	logger.Info("doodle module wired",
		"event", "bootstrap_module_wired",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"blob_backend", cfg.Storage.Backend,
		"vote_events", cfg.EnableVoteEvents,
	)
	return &ModuleApp{Module: module, Bus: bus, closer: closer, logger: logger}, nil
}

func (m *ModuleApp) Close() error {
	if m == nil || m.closer == nil {
		return nil
	}
	return m.closer()
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *APIApp) Run(ctx context.Context) error {
	if a.bus != nil {
		StartVoteAudit(ctx, a.bus, a.logger)
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return <-errCh
}

func (a *APIApp) Close() error {
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return location, nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

func joinClosers(closers ...func() error) func() error {
	return func() error {
		var errs []error
		for _, closeFn := range closers {
			if closeFn == nil {
				continue
			}
			if err := closeFn(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
