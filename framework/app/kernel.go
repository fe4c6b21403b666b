package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/km-arc/go-inject/framework/config"
	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/log"
	"github.com/km-arc/go-inject/framework/providers"
	"github.com/km-arc/go-inject/framework/routing"
)

const shutdownTimeout = 10 * time.Second

// Application owns the bootstrap of one container: the framework providers
// (config, logger, router) and the user's providers are registered and booted
// in a single setup pass, after which the container is read-only.
type Application struct {
	container *container.Container
}

type options struct {
	bootstrap *container.Bootstrap
	envFiles  []string
	cfg       *config.Config
	logOut    io.Writer
	providers []container.ServiceProvider
}

// Option configures New.
type Option func(*options)

// WithBootstrap initializes b instead of a private Bootstrap, e.g.
// container.Global() to publish the application container process-wide.
func WithBootstrap(b *container.Bootstrap) Option {
	return func(o *options) { o.bootstrap = b }
}

// WithEnvFiles sets the .env files read when no config is given.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithConfig uses cfg instead of loading one from the environment.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogOutput sets where the application logger writes. Default is stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOut = w }
}

// WithProviders appends service providers, registered after the framework
// ones in the given order.
func WithProviders(ps ...container.ServiceProvider) Option {
	return func(o *options) { o.providers = append(o.providers, ps...) }
}

// New loads the configuration, builds the logger and initializes the
// container with every provider.
func New(opts ...Option) (*Application, error) {
	o := options{logOut: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.Load(o.envFiles...)
	}
	logger := log.New(o.logOut, log.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	b := o.bootstrap
	if b == nil {
		b = container.NewBootstrap()
	}
	b.SetLogger(logger)

	all := []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LogServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
	}
	all = append(all, o.providers...)

	if err := b.InitializeWith(all...); err != nil {
		return nil, errors.Wrap(err, "initialize container")
	}

	return &Application{container: b.MustContainer()}, nil
}

// Container returns the frozen application container.
func (a *Application) Container() *container.Container { return a.container }

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return *container.MustGetSingleton[*config.Config](a.container)
}

// Logger resolves the application logger.
func (a *Application) Logger() log.Logger {
	return *container.MustGetSingleton[log.Logger](a.container)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return *container.MustGetSingleton[*routing.Router](a.container)
}

// Handler returns the router as an http.Handler.
func (a *Application) Handler() http.Handler { return a.Router() }

// Run serves the router on the configured port until ctx is cancelled, then
// shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	cfg := a.Config()
	logger := a.Logger()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"app", cfg.App.Name,
			"addr", srv.Addr,
			"env", cfg.App.Env,
			"routes", len(a.Router().Routes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logger.Info("server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
