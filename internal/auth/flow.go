package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/model"
)

var (
	// ErrUnknownProvider is returned by Begin for a provider without configuration
	ErrUnknownProvider = errors.New("unknown OAuth provider")
	// ErrUnknownState is returned by Complete when the state matches no pending sign-in
	ErrUnknownState = errors.New("unknown OAuth state")
	// ErrNoFlow is returned by Complete when no sign-in was started
	ErrNoFlow = errors.New("no OAuth sign-in in progress")
	// ErrDenied is returned when the provider reported an error instead of a code
	ErrDenied = errors.New("OAuth sign-in denied")
)

// DefaultStateTTL bounds how long a started sign-in can be completed
const DefaultStateTTL = 10 * time.Minute

// URLOpener opens a URL in the system browser. fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// Config configures a Flow
type Config struct {
	RedirectURL string
	Providers   map[Provider]ProviderConfig
	StateTTL    time.Duration
}

type pending struct {
	provider Provider
	verifier string
	started  time.Time
}

// Flow tracks OAuth sign-ins in progress. Loading is set between Begin and
// Complete, and cleared when the window regains visibility without a callback.
type Flow struct {
	cfg    Config
	opener URLOpener
	client *http.Client
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]pending
	loading Provider
}

// Option configures a Flow
type Option func(*Flow)

// WithHTTPClient sets the client used for token exchange and user info
func WithHTTPClient(c *http.Client) Option {
	return func(f *Flow) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(f *Flow) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// NewFlow creates a sign-in flow
func NewFlow(cfg Config, opener URLOpener, opts ...Option) *Flow {
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = DefaultStateTTL
	}
	f := &Flow{
		cfg:     cfg,
		opener:  opener,
		client:  http.DefaultClient,
		logger:  slog.Default(),
		now:     time.Now,
		pending: make(map[string]pending),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Providers lists the configured providers in a stable order
func (f *Flow) Providers() []Provider {
	var out []Provider
	for _, p := range []Provider{GitHub, Google} {
		if _, ok := f.cfg.Providers[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Begin builds the authorization URL for p, marks p as loading and opens the URL
func (f *Flow) Begin(p Provider) (string, error) {
	pc, ok := f.cfg.Providers[p]
	if !ok {
		return "", authError(ErrUnknownProvider, fmt.Sprintf("Sign-in with %s is not configured", p.DisplayName()), map[string]any{"provider": string(p)})
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := pc.oauth2(f.cfg.RedirectURL).AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.S256ChallengeOption(verifier))

	f.mu.Lock()
	f.prune()
	f.pending[state] = pending{provider: p, verifier: verifier, started: f.now()}
	f.loading = p
	f.mu.Unlock()

	f.logger.Info("oauth sign-in started", "provider", p)

	if f.opener != nil {
		u, err := url.Parse(authURL)
		if err != nil {
			return "", fmt.Errorf("parse authorization url: %w", err)
		}
		if err := f.opener.OpenURL(u); err != nil {
			f.clearLoading()
			return "", authError(err, "Could not open the browser for sign-in", map[string]any{"provider": string(p)})
		}
	}
	return authURL, nil
}

// Complete exchanges the authorization code and fetches the signed-in user
func (f *Flow) Complete(ctx context.Context, state, code string) (model.User, error) {
	f.mu.Lock()
	if len(f.pending) == 0 {
		f.mu.Unlock()
		return model.User{}, authError(ErrNoFlow, "No sign-in is in progress", nil)
	}
	pd, ok := f.pending[state]
	delete(f.pending, state)
	expired := ok && f.now().Sub(pd.started) > f.cfg.StateTTL
	f.mu.Unlock()

	if !ok || expired {
		return model.User{}, authError(ErrUnknownState, "The sign-in link is invalid or has expired", nil)
	}
	defer f.clearLoading()

	pc := f.cfg.Providers[pd.provider]
	oc := pc.oauth2(f.cfg.RedirectURL)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.client)

	tok, err := oc.Exchange(ctx, code, oauth2.VerifierOption(pd.verifier))
	if err != nil {
		return model.User{}, authError(err, "Sign-in failed while exchanging the authorization code", map[string]any{"provider": string(pd.provider)})
	}

	user, err := fetchUser(ctx, oc.Client(ctx, tok), pc.UserInfoURL)
	if err != nil {
		return model.User{}, authError(err, "Sign-in failed while loading your profile", map[string]any{"provider": string(pd.provider)})
	}

	f.logger.Info("oauth sign-in completed", "provider", pd.provider, "user_id", user.ID)
	return user, nil
}

// CompleteCallback completes a sign-in from the provider's redirect query
func (f *Flow) CompleteCallback(ctx context.Context, q url.Values) (model.User, error) {
	if e := q.Get("error"); e != "" {
		msg := q.Get("error_description")
		if msg == "" {
			msg = e
		}
		f.mu.Lock()
		delete(f.pending, q.Get("state"))
		f.mu.Unlock()
		f.clearLoading()
		return model.User{}, authError(ErrDenied, msg, map[string]any{"oauth_error": e})
	}
	return f.Complete(ctx, q.Get("state"), q.Get("code"))
}

// Loading returns the provider whose redirect is believed to be in progress
func (f *Flow) Loading() (Provider, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading, f.loading != ""
}

// VisibilityRegained clears the loading flag. The user came back to the
// window without the callback having arrived. Pending state stays valid
// until it expires so a late callback still completes.
func (f *Flow) VisibilityRegained() {
	f.mu.Lock()
	was := f.loading
	f.loading = ""
	f.mu.Unlock()
	if was != "" {
		f.logger.Debug("oauth loading cleared on visibility", "provider", was)
	}
}

func (f *Flow) clearLoading() {
	f.mu.Lock()
	f.loading = ""
	f.mu.Unlock()
}

// prune drops expired pending sign-ins. Callers hold f.mu.
func (f *Flow) prune() {
	now := f.now()
	for s, p := range f.pending {
		if now.Sub(p.started) > f.cfg.StateTTL {
			delete(f.pending, s)
		}
	}
}

func authError(cause error, message string, ctx map[string]any) error {
	if ctx == nil {
		ctx = map[string]any{}
	}
	if cause != nil {
		ctx["cause"] = cause.Error()
	}
	e := apperr.New(apperr.CategoryAuth, apperr.SeverityError, message, "", ctx)
	return fmt.Errorf("%w: %w", e, cause)
}

// fetchUser loads the provider profile. GitHub and OpenID Connect field names are both understood.
func fetchUser(ctx context.Context, c *http.Client, endpoint string) (model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.User{}, fmt.Errorf("build user info request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return model.User{}, fmt.Errorf("user info request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.User{}, fmt.Errorf("user info returned %s", resp.Status)
	}

	var info struct {
		ID         json.Number `json:"id"`
		Sub        string      `json:"sub"`
		Login      string      `json:"login"`
		Name       string      `json:"name"`
		GivenName  string      `json:"given_name"`
		FamilyName string      `json:"family_name"`
		Email      string      `json:"email"`
		AvatarURL  string      `json:"avatar_url"`
		Picture    string      `json:"picture"`
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&info); err != nil {
		return model.User{}, fmt.Errorf("decode user info: %w", err)
	}

	u := model.User{
		ID:        info.Sub,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Username:  info.Login,
		ImageURL:  info.Picture,
	}
	if u.ID == "" && info.ID != "" {
		if n, err := info.ID.Int64(); err == nil {
			u.ID = strconv.FormatInt(n, 10)
		} else {
			u.ID = info.ID.String()
		}
	}
	if u.FirstName == "" && info.Name != "" {
		u.FirstName = info.Name
	}
	if u.ImageURL == "" {
		u.ImageURL = info.AvatarURL
	}
	if u.ID == "" {
		return model.User{}, errors.New("user info has no id")
	}
	return u, nil
}
