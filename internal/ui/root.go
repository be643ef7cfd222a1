package ui

import (
	"context"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/auth"
	"github.com/deweydb/dewey/internal/backend"
	"github.com/deweydb/dewey/internal/config"
	"github.com/deweydb/dewey/internal/connection"
	"github.com/deweydb/dewey/internal/errhandler"
	"github.com/deweydb/dewey/internal/model"
	"github.com/deweydb/dewey/internal/platform"
	"github.com/deweydb/dewey/internal/route"
	"github.com/deweydb/dewey/internal/session"
	"github.com/deweydb/dewey/internal/toast"
)

// Backend is the part of the backend client the shell calls
type Backend interface {
	LoadState(ctx context.Context, userID string) (backend.State, error)
	CreateProject(ctx context.Context, p model.CreateProjectParams) (int64, error)
	HasEncryptionKey(ctx context.Context) (bool, error)
	InitializeEncryptionKey(ctx context.Context) error
	StoreOnboarding(ctx context.Context, hasCompleted bool) error
	Login(ctx context.Context, cred backend.Credentials) (model.User, error)
	Register(ctx context.Context, cred backend.Credentials) (model.User, error)
}

// SignIn is the browser-based OAuth flow
type SignIn interface {
	Providers() []auth.Provider
	Begin(p auth.Provider) (string, error)
	Loading() (auth.Provider, bool)
	VisibilityRegained()
}

// Overlay draws above every page
type Overlay interface {
	Wrap(content fyne.CanvasObject) fyne.CanvasObject
}

// Deps are the services the shell is built on
type Deps struct {
	App      fyne.App
	Window   fyne.Window
	Settings *config.Settings
	Session  *session.Store
	Backend  Backend
	// SignIn may be nil when no OAuth provider is configured
	SignIn SignIn
	Runner *connection.Runner
	Errors *errhandler.Handler
	Toasts *toast.Queue
	// Overlay, when set, wraps each page (toasts are drawn on it)
	Overlay Overlay
	Paths   route.Paths
	Logger  *slog.Logger
}

// keyState is the cached answer of has_encryption_key
type keyState int

const (
	keyUnknown keyState = iota
	keyChecking
	keyMissing
	keyPresent
)

// RootUI represents the main UI structure
type RootUI struct {
	app      fyne.App
	window   fyne.Window
	settings *config.Settings
	session  *session.Store
	backend  Backend
	signIn   SignIn
	runner   *connection.Runner
	errors   *errhandler.Handler
	toasts   *toast.Queue
	overlay  Overlay
	paths    route.Paths
	logger   *slog.Logger
	os       platform.OSInfo

	localization *Localization
	router       *Router
	guard        *route.Guard
	boundary     *Boundary

	ctx context.Context

	mu                 sync.Mutex
	authLoaded         bool
	projectsLoaded     bool
	projects           []model.Project
	onboardingRequired *bool
	loadGen            uint64
	key                keyState
	signUp             bool
	pendingProject     int64
}

// NewRootUI creates and initializes the main UI
func NewRootUI(d Deps) *RootUI {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Paths.Root == "" {
		d.Paths = route.DefaultPaths()
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(d.Settings.GetLanguage())

	ui := &RootUI{
		app:          d.App,
		window:       d.Window,
		settings:     d.Settings,
		session:      d.Session,
		backend:      d.Backend,
		signIn:       d.SignIn,
		runner:       d.Runner,
		errors:       d.Errors,
		toasts:       d.Toasts,
		overlay:      d.Overlay,
		paths:        d.Paths,
		logger:       d.Logger,
		os:           platform.DetectOS(),
		localization: localization,
		router:       NewRouter(d.Paths.Root),
		ctx:          errhandler.WithHandler(context.Background(), d.Errors),
	}
	ui.guard = route.NewGuard(route.NewResolver(d.Paths), ui.router, d.Session, d.Logger)
	ui.boundary = NewBoundary(localization, d.Paths.Onboarding, func(p string) { ui.router.Navigate(p, false) }, d.Logger)
	ui.boundary.OnReset = ui.errors.Clear

	ui.toasts.SetPolicy(ui.toastPolicy())
	ui.toasts.SetDelay(d.Settings.GetToastDelay())

	window := d.Window
	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.createMenu()
	ui.addShortcuts()

	ui.router.OnChange(func(string) { ui.evaluate() })
	d.Session.Subscribe(ui.onUserChanged)

	return ui
}

// Router returns the in-window navigator
func (ui *RootUI) Router() *Router {
	return ui.router
}

// Localization returns the active translations
func (ui *RootUI) Localization() *Localization {
	return ui.localization
}

// Start marks the session as restored and renders the first decision.
// Background work is bound to ctx.
func (ui *RootUI) Start(ctx context.Context) {
	ui.mu.Lock()
	ui.ctx = errhandler.WithHandler(ctx, ui.errors)
	ui.authLoaded = true
	ui.mu.Unlock()

	if u, ok := ui.session.Current(); ok {
		ui.loadState(u.ID)
	}

	ui.app.Lifecycle().SetOnEnteredForeground(ui.onForeground)
	ui.evaluate()
}

// CompleteSignIn receives the outcome of a browser sign-in. Failures are
// reported and the sign-in page is shown again.
func (ui *RootUI) CompleteSignIn(u model.User, err error) {
	if err != nil {
		ui.errors.Report(err)
		ui.router.Navigate(ui.paths.Auth, true)
		ui.rerender()
		return
	}
	ui.session.Set(u)
}

// onForeground clears a sign-in redirect the user abandoned in the browser
func (ui *RootUI) onForeground() {
	if ui.signIn == nil {
		return
	}
	if _, loading := ui.signIn.Loading(); loading {
		ui.signIn.VisibilityRegained()
		ui.evaluate()
	}
}

func (ui *RootUI) context() context.Context {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.ctx
}

func (ui *RootUI) toastPolicy() toast.Policy {
	return toast.Policy{
		Translate:      ui.localization.Translate,
		Navigator:      ui.router,
		OnboardingPath: ui.paths.Onboarding,
	}
}

// onUserChanged drops everything loaded for the previous user
func (ui *RootUI) onUserChanged(u *model.User) {
	ui.mu.Lock()
	ui.loadGen++
	ui.projectsLoaded = false
	ui.projects = nil
	ui.onboardingRequired = nil
	ui.key = keyUnknown
	ui.pendingProject = 0
	ui.mu.Unlock()

	if u != nil {
		ui.loadState(u.ID)
	}
	ui.evaluate()
}

// loadState fetches projects and the onboarding flag for userID. Results for
// a user that is no longer signed in are discarded.
func (ui *RootUI) loadState(userID string) {
	ui.mu.Lock()
	ui.loadGen++
	gen := ui.loadGen
	ctx := ui.ctx
	ui.mu.Unlock()

	go func() {
		st, e := errhandler.RunCommand(ctx, func(ctx context.Context) (backend.State, error) {
			return ui.backend.LoadState(ctx, userID)
		})

		ui.mu.Lock()
		if gen != ui.loadGen {
			ui.mu.Unlock()
			return
		}
		ui.projectsLoaded = true
		if e == nil {
			ui.projects = st.Projects
			required := st.OnboardingRequired
			ui.onboardingRequired = &required
		}
		pending := ui.pendingProject
		ui.pendingProject = 0
		ui.mu.Unlock()

		if pending != 0 {
			ui.router.Navigate(ui.paths.Project(pending), false)
			return
		}
		ui.evaluate()
	}()
}

// Inputs returns the current routing snapshot
func (ui *RootUI) Inputs() route.Inputs {
	u, signedIn := ui.session.Current()

	ui.mu.Lock()
	defer ui.mu.Unlock()
	return route.Inputs{
		AuthLoaded:         ui.authLoaded,
		SignedIn:           signedIn,
		UserID:             u.ID,
		CurrentPath:        ui.router.Current(),
		OnboardingRequired: ui.onboardingRequired,
		ProjectsLoaded:     ui.projectsLoaded,
		Projects:           append([]model.Project(nil), ui.projects...),
		ReturnTo:           ui.session.ReturnTo(),
	}
}

// evaluate applies the route guard and renders the result. A redirect is
// rendered by the evaluation its navigation triggers.
func (ui *RootUI) evaluate() {
	decision := ui.guard.Apply(ui.Inputs())
	if decision.Kind == route.Redirect {
		return
	}
	path := ui.router.Current()
	fyne.Do(func() {
		content := ui.layoutFor(decision, path)
		if ui.overlay != nil {
			content = ui.overlay.Wrap(content)
		}
		ui.window.SetContent(content)
	})
}

// rerender rebuilds the current page without re-running side effects
func (ui *RootUI) rerender() {
	ui.guard.Reset()
	ui.evaluate()
}

// projectByID returns the loaded project with id
func (ui *RootUI) projectByID(id int64) (model.Project, bool) {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	for _, p := range ui.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (ui *RootUI) projectList() []model.Project {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return append([]model.Project(nil), ui.projects...)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	configDirItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenConfigDir), ui.onOpenConfigDir)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, configDirItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onOpenConfigDir reveals the directory holding config.yaml
func (ui *RootUI) onOpenConfigDir() {
	dir, err := platform.ConfigDir()
	if err == nil {
		err = platform.CreateDirectoryIfNotExists(dir)
	}
	if err == nil {
		err = platform.RevealPath(dir)
	}
	if err != nil {
		ui.errors.Handle(err, errhandler.Overrides{Category: apperr.CategoryIO})
	}
}

func (ui *RootUI) addShortcuts() {
	settings := &desktop.CustomShortcut{KeyName: fyne.KeyComma, Modifier: fyne.KeyModifierShortcutDefault}
	ui.window.Canvas().AddShortcut(settings, func(fyne.Shortcut) { ui.onShowSettings() })
}

// shortcutHint is the settings shortcut as printed on this OS
func (ui *RootUI) shortcutHint() string {
	if ui.os.IsMac {
		return "⌘,"
	}
	return "Ctrl+,"
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.toasts.SetPolicy(ui.toastPolicy())
	ui.createMenu()
	ui.rerender()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved preferences into the running services
func (ui *RootUI) applySettings() {
	ui.app.Settings().SetTheme(NewCompactTheme(ui.settings.GetTheme()))
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.toasts.SetDelay(ui.settings.GetToastDelay())
	ui.refreshUITexts()
	ui.toasts.Notify(toast.Success(ui.localization.GetText(KeySettingsSaved), ""))
}

// onSignOut clears the session; the guard sends the window to sign-in
func (ui *RootUI) onSignOut() {
	ui.runner.Cancel()
	ui.toasts.Clear()
	ui.session.Clear()
}
