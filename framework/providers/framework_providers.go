package providers

import (
	"io"
	"os"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	"github.com/km-arc/go-inject/framework/log"
	"github.com/km-arc/go-inject/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound:
//   - *config.Config (singleton)
//
// With Config unset the configuration is loaded from EnvFiles on first use.
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
	Config   *config.Config
}

func (p *ConfigServiceProvider) Register(c *container.Container) {
	if p.Config != nil {
		container.AddSingleton(c, p.Config)
		return
	}
	envFiles := p.EnvFiles
	container.AddLazySingleton(c, func(*container.Container) *config.Config {
		return config.Load(envFiles...)
	})
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider binds the application logger.
//
// Bound:
//   - log.Logger (singleton)
//
// With Logger unset a slog logger writing to Out (default stderr) is built
// from the Log section of *config.Config on first use.
type LogServiceProvider struct {
	container.BaseProvider
	Out    io.Writer
	Logger log.Logger
}

func (p *LogServiceProvider) Register(c *container.Container) {
	if p.Logger != nil {
		container.AddSingleton(c, p.Logger)
		return
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	container.AddLazySingleton(c, func(c *container.Container) log.Logger {
		cfg := *container.MustGetSingleton[*config.Config](c)
		return log.New(out, log.ParseLevel(cfg.Log.Level), cfg.Log.Format)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router.
//
// Bound:
//   - *routing.Router (lazy singleton, logs through log.Logger)
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c *container.Container) {
	container.AddLazySingleton(c, func(c *container.Container) *routing.Router {
		logger := *container.MustGetSingleton[log.Logger](c)
		return routing.New(routing.WithLogger(logger))
	})
}
