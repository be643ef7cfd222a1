// Package app builds the services of the desktop shell from configuration
// and runs the window.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/deweydb/dewey/internal/auth"
	"github.com/deweydb/dewey/internal/backend"
	"github.com/deweydb/dewey/internal/config"
	"github.com/deweydb/dewey/internal/connection"
	"github.com/deweydb/dewey/internal/errhandler"
	"github.com/deweydb/dewey/internal/route"
	"github.com/deweydb/dewey/internal/session"
	"github.com/deweydb/dewey/internal/toast"
)

// requestTimeout bounds a single backend command
const requestTimeout = 30 * time.Second

// Services are the window-independent parts of the application
type Services struct {
	Config  config.App
	Logger  *slog.Logger
	Session *session.Store
	Backend *backend.Client
	Runner  *connection.Runner
	Errors  *errhandler.Handler
	Toasts  *toast.Queue
	Paths   route.Paths

	// Flow is nil when no OAuth provider is configured
	Flow *auth.Flow
}

// NewServices wires the services. presenter draws notifications; opener
// shows the OAuth authorization page.
func NewServices(cfg config.App, presenter toast.Presenter, opener auth.URLOpener, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	inv, err := backend.NewHTTPInvoker(cfg.BackendURL, cfg.BackendToken, &http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("backend invoker: %w", err)
	}
	policy := backend.DefaultRetryPolicy
	policy.MaxRetries = uint64(cfg.RequestRetry)
	client := backend.NewClient(inv, backend.WithRetryPolicy(policy), backend.WithLogger(logger))

	queue := toast.NewQueue(presenter, toast.WithLogger(logger))
	s := &Services{
		Config:  cfg,
		Logger:  logger,
		Session: session.NewStore(),
		Backend: client,
		Runner:  connection.NewRunner(connectionTester(cfg, client, logger), logger),
		Toasts:  queue,
		Paths:   route.DefaultPaths(),
		Errors: errhandler.New(errhandler.Options{
			Reporter: queue,
			Logger:   logger,
		}),
	}

	providers := oauthProviders(cfg)
	if len(providers) > 0 {
		s.Flow = auth.NewFlow(auth.Config{
			RedirectURL: cfg.RedirectURL,
			Providers:   providers,
		}, opener, auth.WithLogger(logger))
	}
	return s, nil
}

func oauthProviders(cfg config.App) map[auth.Provider]auth.ProviderConfig {
	providers := make(map[auth.Provider]auth.ProviderConfig)
	for p, c := range map[auth.Provider]config.OAuthClient{auth.GitHub: cfg.GitHub, auth.Google: cfg.Google} {
		if !c.Enabled() {
			continue
		}
		if pc, ok := auth.DefaultProviderConfig(p, c.ClientID, c.ClientSecret); ok {
			providers[p] = pc
		}
	}
	return providers
}

// connectionTester prefers the backend; a local driver test is used when the
// backend rejects the command as unknown.
func connectionTester(cfg config.App, client *backend.Client, logger *slog.Logger) connection.Tester {
	local := connection.NewDriverTester(cfg.TestTimeout, logger)
	remote := client.Tester()
	return connection.TesterFunc(func(ctx context.Context, p connection.Params) error {
		err := remote.Test(ctx, p)
		var rej *backend.Rejection
		if errors.As(err, &rej) && rej.StatusCode == http.StatusNotFound {
			logger.Debug("backend cannot test connections, testing locally", "db_type", p.DBType)
			return local.Test(ctx, p)
		}
		return err
	})
}
