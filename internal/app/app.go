// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/http"
)

// App is the wired scoop service.
type App struct {
	Engine   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	Router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	// logger first, every component takes a child of it
	InitializeLogger(cfg.Log)

	db := InitializeDatabase(cfg.Database)
	services := InitializeServices(cfg, db)
	routerComponents := InitializeRouter(services, db, cfg)

	a := &App{
		Engine:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Services: services,
		Database: db,
		Router:   routerComponents,
	}

	if cfg.Simulator.AutoStart {
		a.startSimulator(cfg.Simulator)
	}
	return a
}

func (a *App) startSimulator(cfg config.SimulatorConfig) {
	count := cfg.AutoStartCount
	if count <= 0 {
		count = 1
	}
	started := a.Services.Simulator.StartMultipleSessions(count, cfg.SessionGap, func() {
		log.Info().Int("count", count).Msg("Autostarted sessions finished")
	})
	if started {
		log.Info().Int("count", count).Dur("gap", cfg.SessionGap).Msg("Simulator autostarted")
	}
}

// NewServer builds the HTTP server for the app. Shutdown closes cart event
// streams first, then stops background work once requests have drained.
func (a *App) NewServer(port string) *Server {
	server := NewServer(a.Engine, port, a.Close)
	server.OnShutdown(a.Router.Handler.CloseStreams)
	return server
}

// Close stops the simulator, drains pending shop API callbacks and the
// journal, stops middleware workers and disconnects from MongoDB.
func (a *App) Close(ctx context.Context) error {
	start := time.Now()
	a.Services.Stop()
	a.Router.Stop()
	err := a.Database.Close(ctx)
	log.Info().Dur("took", time.Since(start)).Msg("Application components stopped")
	return err
}
