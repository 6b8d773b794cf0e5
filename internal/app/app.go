// Package app wires configuration, persistence, the HTTP API, and an
// optional sensor link into a running dive-server process.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/deepwater-eng/buhlmann"
	"github.com/deepwater-eng/buhlmann/internal/httpapi"
	"github.com/deepwater-eng/buhlmann/internal/log"
	"github.com/deepwater-eng/buhlmann/internal/persistence"
	"github.com/deepwater-eng/buhlmann/internal/sensorlink"
	"github.com/deepwater-eng/buhlmann/internal/session"
	"github.com/deepwater-eng/buhlmann/pkg/config"
)

// App owns the wiring for one dive-server process.
type App struct {
	configProvider config.Provider
	logger         *zap.SugaredLogger
}

// New creates an App from a configuration provider.
func New(configProvider config.Provider, logger *zap.SugaredLogger) *App {
	return &App{configProvider: configProvider, logger: logger}
}

// Run loads configuration, starts persistence, the HTTP API, and (if
// configured) a sensor link, then blocks until ctx is cancelled or a
// SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	data, err := a.configProvider.Load()
	if err != nil {
		return fmt.Errorf("app: loading config: %w", err)
	}

	repo, err := openRepository(data.Storage)
	if err != nil {
		return fmt.Errorf("app: opening storage: %w", err)
	}
	if repo != nil {
		defer repo.Close()
	}

	sessions := session.NewManager()

	defaultCfg := buhlmann.DefaultConfig()
	if data.Defaults.GFLow != 0 {
		defaultCfg.GF.Low = data.Defaults.GFLow
	}
	if data.Defaults.GFHigh != 0 {
		defaultCfg.GF.High = data.Defaults.GFHigh
	}
	if data.Defaults.SurfacePressureMbar != 0 {
		defaultCfg.SurfacePressureMbar = data.Defaults.SurfacePressureMbar
	}
	if data.Defaults.DecoAscentRateMPerMin != 0 {
		defaultCfg.DecoAscentRateMPerMin = data.Defaults.DecoAscentRateMPerMin
	}
	if data.Defaults.AdaptiveCeiling {
		defaultCfg.CeilingType = buhlmann.CeilingAdaptive
	}
	if data.Defaults.DecoStopWindowM != 0 {
		defaultCfg.DecoStopWindowM = data.Defaults.DecoStopWindowM
	}
	defaultCfg.RoundCeiling = data.Defaults.RoundCeiling
	defaultCfg.RecalcAllTissueMValues = data.Defaults.RecalcAllTissueMValues

	controller := httpapi.New(data.HTTP.ListenAddr, sessions, repo)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := controller.Serve(ctx); err != nil {
			log.Errorf("app: http server stopped: %v", err)
		}
	}()

	if data.SensorLink.Enabled {
		sess, err := sessions.Create(defaultCfg)
		if err != nil {
			return fmt.Errorf("app: creating sensor-link session: %w", err)
		}
		log.Infof("app: sensor link bound to session %s", sess.ID)

		link := sensorlink.New(sensorlink.Config{
			Device:       data.SensorLink.Device,
			BaudRate:     data.SensorLink.BaudRate,
			SessionID:    sess.ID.String(),
			DefaultGasO2: data.SensorLink.DefaultGasO2,
			DefaultGasHe: data.SensorLink.DefaultGasHe,
		}, sess)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := link.Run(ctx); err != nil && err != context.Canceled {
				log.Errorf("app: sensor link stopped: %v", err)
			}
		}()
	}

	log.Info("app: dive-server started")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("app: shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("app: context cancelled, shutting down...")
	}

	cancel()

	log.Info("app: waiting for workers to terminate...")
	wg.Wait()
	log.Info("app: shutdown complete")

	return nil
}

func openRepository(sd config.StorageData) (persistence.Repository, error) {
	switch {
	case sd.PostgresDSN != "":
		repo, err := persistence.NewPostgresRepository(sd.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := repo.AutoMigrate(); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case sd.SQLitePath != "":
		return persistence.NewSQLiteRepository(sd.SQLitePath)
	default:
		return nil, nil
	}
}
