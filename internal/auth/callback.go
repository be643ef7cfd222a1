package auth

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/model"
)

var callbackPage = template.Must(template.New("callback").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Dewey</title></head>
<body style="font-family: sans-serif; text-align: center; margin-top: 4em">
{{if .Error}}<h2>Sign-in failed</h2><p>{{.Error}}</p>{{else}}<h2>Signed in</h2><p>You can close this window and return to Dewey.</p>{{end}}
</body></html>`))

// Callback receives the provider redirect on the loopback redirect URL
type Callback struct {
	flow   *Flow
	onDone func(model.User, error)
}

// NewCallback creates the redirect handler. onDone runs once per redirect,
// on the HTTP server goroutine.
func NewCallback(flow *Flow, onDone func(model.User, error)) *Callback {
	return &Callback{flow: flow, onDone: onDone}
}

// ServeHTTP implements http.Handler
func (c *Callback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, err := c.flow.CompleteCallback(r.Context(), r.URL.Query())
	if c.onDone != nil {
		c.onDone(user, err)
	}

	data := struct{ Error string }{}
	status := http.StatusOK
	if err != nil {
		data.Error = apperr.Normalize(err).Message
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = callbackPage.Execute(w, data)
}

// Serve listens on the host of redirectURL and serves the callback on its
// path until ctx is done.
func (c *Callback) Serve(ctx context.Context, redirectURL string) error {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return fmt.Errorf("parse redirect url: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("redirect url %q has no host", redirectURL)
	}

	mux := http.NewServeMux()
	path := u.Path
	if path == "" {
		path = "/"
	}
	mux.Handle(path, c)

	ln, err := net.Listen("tcp", u.Host)
	if err != nil {
		return fmt.Errorf("listen for oauth callback: %w", err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.flow.logger.Info("oauth callback listening", "addr", ln.Addr().String(), "path", path)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve oauth callback: %w", err)
	}
	return nil
}
