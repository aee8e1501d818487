package bootstrap

import (
	"music_chat_backend/config"
	"music_chat_backend/pkg/logging"
)

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Repositories   *Repositories
	Services       *Services
	Handlers       *Handlers
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	// repos
	repos := NewRepositories(infra.DB)
	app.Repositories = repos

	// services
	services := NewServices(cfg, repos, infra)
	app.Services = services

	handlers := NewHandlers(services, infra)
	app.Handlers = handlers

	return app, nil
}

// Shutdown stops the poll loops before tearing down infra.
func (a *App) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.Services != nil && a.Services.PollService != nil {
		a.Services.PollService.Shutdown()
	}
	if a.Infrastructure != nil {
		if err := a.Infrastructure.Shutdown(); err != nil {
			return err
		}
	}
	return nil
}
