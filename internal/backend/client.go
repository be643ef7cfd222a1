package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deweydb/dewey/internal/connection"
	"github.com/deweydb/dewey/internal/model"
)

// Backend command names
const (
	CmdGetUserProjects         = "get_user_projects"
	CmdCreateProject           = "create_project"
	CmdShouldRunOnboarding     = "should_run_onboarding"
	CmdStoreOnboarding         = "store_onboarding"
	CmdHasEncryptionKey        = "has_encryption_key"
	CmdInitializeEncryptionKey = "initialize_encryption_key"
	CmdTestConnection          = "test_connection"
	CmdLogin                   = "login"
	CmdRegister                = "register"
)

// Client exposes the backend commands with typed arguments and results
type Client struct {
	inv    Invoker
	retry  RetryPolicy
	logger *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithRetryPolicy sets the retry policy of read-only commands
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client over inv
func NewClient(inv Invoker, opts ...Option) *Client {
	c := &Client{inv: inv, retry: DefaultRetryPolicy, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// query invokes a read-only command, retrying transient failures
func (c *Client) query(ctx context.Context, command string, args, out any) error {
	return retry(ctx, c.retry, func(err error, wait time.Duration) {
		c.logger.Warn("backend query retry", "command", command, "wait", wait, "error", err)
	}, func() error {
		return c.inv.Invoke(ctx, command, args, out)
	})
}

// GetUserProjects returns the user's projects in backend order
func (c *Client) GetUserProjects(ctx context.Context, userID string) ([]model.Project, error) {
	var projects []model.Project
	if err := c.query(ctx, CmdGetUserProjects, map[string]any{"userId": userID}, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns its id
func (c *Client) CreateProject(ctx context.Context, p model.CreateProjectParams) (int64, error) {
	var id int64
	if err := c.inv.Invoke(ctx, CmdCreateProject, p, &id); err != nil {
		return 0, err
	}
	c.logger.Info("project created", "project_id", id, "has_connection", p.InitialConnection != nil)
	return id, nil
}

// ShouldRunOnboarding reports whether the onboarding flow has not been completed
func (c *Client) ShouldRunOnboarding(ctx context.Context) (bool, error) {
	var required bool
	if err := c.query(ctx, CmdShouldRunOnboarding, nil, &required); err != nil {
		return false, err
	}
	return required, nil
}

// StoreOnboarding records whether onboarding was completed
func (c *Client) StoreOnboarding(ctx context.Context, hasCompleted bool) error {
	return c.inv.Invoke(ctx, CmdStoreOnboarding, map[string]any{"hasCompleted": hasCompleted}, nil)
}

// HasEncryptionKey reports whether the OS keyring holds the credential encryption key
func (c *Client) HasEncryptionKey(ctx context.Context) (bool, error) {
	var ok bool
	if err := c.query(ctx, CmdHasEncryptionKey, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// InitializeEncryptionKey generates the encryption key and stores it in the OS keyring
func (c *Client) InitializeEncryptionKey(ctx context.Context) error {
	return c.inv.Invoke(ctx, CmdInitializeEncryptionKey, nil, nil)
}

// TestConnection asks the backend to reach the database. It satisfies connection.Tester.
func (c *Client) TestConnection(ctx context.Context, p connection.Params) error {
	args := map[string]any{
		"dbType":   p.DBType,
		"host":     p.Host,
		"port":     p.Port,
		"username": p.Username,
		"password": p.Password,
		"database": p.Database,
	}
	if p.SQLiteMode != "" {
		args["sqliteType"] = p.SQLiteMode
	}
	return c.inv.Invoke(ctx, CmdTestConnection, args, nil)
}

// Tester adapts TestConnection to connection.Tester
func (c *Client) Tester() connection.Tester {
	return connection.TesterFunc(c.TestConnection)
}

// Credentials for password sign-in and sign-up
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// Login signs in with a password
func (c *Client) Login(ctx context.Context, cred Credentials) (model.User, error) {
	var u model.User
	if err := c.inv.Invoke(ctx, CmdLogin, cred, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, cred Credentials) (model.User, error) {
	var u model.User
	if err := c.inv.Invoke(ctx, CmdRegister, cred, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// State is what the route guard needs from the backend after sign-in
type State struct {
	Projects           []model.Project
	OnboardingRequired bool
}

// LoadState fetches the projects and the onboarding flag concurrently
func (c *Client) LoadState(ctx context.Context, userID string) (State, error) {
	var st State
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := c.GetUserProjects(gctx, userID)
		if err != nil {
			return err
		}
		st.Projects = projects
		return nil
	})
	g.Go(func() error {
		required, err := c.ShouldRunOnboarding(gctx)
		if err != nil {
			return err
		}
		st.OnboardingRequired = required
		return nil
	})
	if err := g.Wait(); err != nil {
		return State{}, fmt.Errorf("load state: %w", err)
	}
	return st, nil
}
