package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"github.com/deweydb/dewey/internal/auth"
	"github.com/deweydb/dewey/internal/config"
	"github.com/deweydb/dewey/internal/logging"
	"github.com/deweydb/dewey/internal/platform"
	"github.com/deweydb/dewey/internal/ui"
)

const (
	AppID   = "io.deweydb.dewey"
	AppName = "Dewey"
)

// Options configure Run
type Options struct {
	ConfigPath string
	Version    string
}

// Run loads configuration, opens the main window and blocks until it is closed
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Version: opts.Version,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting", "version", opts.Version, "backend", cfg.BackendURL)

	if dir, err := platform.ConfigDir(); err == nil {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			logger.Warn("failed to ensure config dir", "dir", dir, "error", err)
		}
	}

	a := fyneapp.NewWithID(AppID)
	if icon, err := ui.LoadLogoResource(); err == nil {
		a.SetIcon(icon)
	} else {
		logger.Debug("app icon not loaded", "error", err)
	}
	settings := config.NewSettings(a)
	a.Settings().SetTheme(ui.NewCompactTheme(settings.GetTheme()))

	w := a.NewWindow(fmt.Sprintf("%s v%s", AppName, opts.Version))
	w.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	toasts := ui.NewToastPresenter(w)
	svc, err := NewServices(cfg, toasts, browserOpener{app: a}, logger)
	if err != nil {
		return err
	}
	root := NewRoot(a, w, settings, svc, toasts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return svc.Toasts.Run(gctx) })
	if svc.Flow != nil {
		cb := auth.NewCallback(svc.Flow, root.CompleteSignIn)
		g.Go(func() error {
			if err := cb.Serve(gctx, cfg.RedirectURL); err != nil {
				// The window stays usable with password sign-in.
				logger.Error("oauth callback stopped", "error", err)
			}
			return nil
		})
	}

	root.Start(gctx)
	w.SetOnClosed(cancel)
	w.ShowAndRun()

	cancel()
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// NewRoot builds the shell over svc. overlay may be nil.
func NewRoot(a fyne.App, w fyne.Window, settings *config.Settings, svc *Services, overlay ui.Overlay) *ui.RootUI {
	d := ui.Deps{
		App:      a,
		Window:   w,
		Settings: settings,
		Session:  svc.Session,
		Backend:  svc.Backend,
		Runner:   svc.Runner,
		Errors:   svc.Errors,
		Toasts:   svc.Toasts,
		Overlay:  overlay,
		Paths:    svc.Paths,
		Logger:   svc.Logger,
	}
	if svc.Flow != nil {
		d.SignIn = svc.Flow
	}
	return ui.NewRootUI(d)
}

// browserOpener opens authorization pages through Fyne and falls back to
// the platform command when the driver cannot.
type browserOpener struct {
	app      fyne.App
	fallback platform.Browser
}

func (b browserOpener) OpenURL(u *url.URL) error {
	if b.app != nil {
		if err := b.app.OpenURL(u); err == nil {
			return nil
		}
	}
	return b.fallback.OpenURL(u)
}
