package errhandler

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/form"
)

// ErrOutsideProvider is returned by FromContext when no Handler was installed
var ErrOutsideProvider = errors.New("errhandler: must be used within a handler provider")

// Reporter receives errors that were not handled locally
type Reporter interface {
	Enqueue(e *apperr.Error)
}

// FieldViolation is implemented by validation error sets that know their first failing field
type FieldViolation interface {
	error
	FirstViolation() (path, message string)
}

// Options configure a Handler
type Options struct {
	// OnError may absorb an error. Returning true suppresses the toast and the returned error.
	OnError func(e *apperr.Error) bool
	// OnRecover runs after Clear.
	OnRecover func()

	DefaultCategory apperr.Category
	DefaultSeverity apperr.Severity

	Reporter Reporter
	Logger   *slog.Logger
}

// Overrides replace fields of the normalized error. Zero values leave them untouched.
type Overrides struct {
	Category    apperr.Category
	Severity    apperr.Severity
	Subcategory string
	Context     map[string]any
}

// Handler records the last error and reports unhandled ones
type Handler struct {
	opts     Options
	logger   *slog.Logger
	handling atomic.Bool

	mu   sync.RWMutex
	last *apperr.Error
}

// New creates a Handler
func New(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{opts: opts, logger: logger}
}

// Handle normalizes raw, merges o and either lets OnError absorb it or
// reports it. The second return value is nil only when the error was absorbed.
func (h *Handler) Handle(raw any, o Overrides) (*apperr.Error, error) {
	h.handling.Store(true)
	defer h.handling.Store(false)

	e := h.merge(apperr.Normalize(prenormalize(raw)), o)

	h.mu.Lock()
	h.last = e
	h.mu.Unlock()

	if h.opts.OnError != nil && h.opts.OnError(e) {
		h.logger.Debug("error handled locally",
			"category", e.Category,
			"subcategory", e.Subcategory)
		return e, nil
	}

	h.report(e)
	return e, e
}

// CreateAndHandle builds an error from message using the handler defaults and handles it
func (h *Handler) CreateAndHandle(message string, o Overrides) (*apperr.Error, error) {
	category := o.Category
	if category == "" {
		category = h.opts.DefaultCategory
	}
	severity := o.Severity
	if severity == "" {
		severity = h.opts.DefaultSeverity
	}
	return h.Handle(apperr.New(category, severity, message, o.Subcategory, o.Context), Overrides{})
}

// Report normalizes raw and shows it without consulting OnError
func (h *Handler) Report(raw any) *apperr.Error {
	e := apperr.Normalize(prenormalize(raw))
	h.report(e)
	return e
}

// Silently normalizes raw without any side effect
func (h *Handler) Silently(raw any) *apperr.Error {
	return apperr.Normalize(prenormalize(raw))
}

// IsHandling reports whether a Handle call is in progress
func (h *Handler) IsHandling() bool {
	return h.handling.Load()
}

// Error returns the last recorded error, or nil
func (h *Handler) Error() *apperr.Error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// Clear forgets the last error and runs OnRecover
func (h *Handler) Clear() {
	h.mu.Lock()
	h.last = nil
	h.mu.Unlock()

	if h.opts.OnRecover != nil {
		h.opts.OnRecover()
	}
}

func (h *Handler) report(e *apperr.Error) {
	h.logger.Warn("error reported",
		"category", e.Category,
		"severity", e.Severity,
		"subcategory", e.Subcategory,
		"message", e.Message)
	if h.opts.Reporter != nil {
		h.opts.Reporter.Enqueue(e)
	}
}

// merge applies override, then normalized, then handler default, then Unknown/Error.
// A normalized Unknown category yields to the handler default.
func (h *Handler) merge(e *apperr.Error, o Overrides) *apperr.Error {
	out := e.WithContext(o.Context)

	switch {
	case o.Category != "":
		out.Category = o.Category
	case out.Category == apperr.CategoryUnknown && h.opts.DefaultCategory != "":
		out.Category = h.opts.DefaultCategory
	}
	if o.Severity != "" {
		out.Severity = o.Severity
	} else if out.Severity == "" {
		out.Severity = h.opts.DefaultSeverity
	}
	if o.Subcategory != "" {
		out.Subcategory = o.Subcategory
	}

	// Overrides and defaults are caller input; re-check them.
	return apperr.New(out.Category, out.Severity, out.Message, out.Subcategory, out.Context)
}

// prenormalize maps validation failures and provider misuse onto canonical errors.
func prenormalize(raw any) any {
	err, ok := raw.(error)
	if !ok {
		if s, isString := raw.(string); isString && isProviderMisuse(s) {
			return hookUsage(s)
		}
		return raw
	}

	var fv FieldViolation
	if errors.As(err, &fv) {
		path, message := fv.FirstViolation()
		return apperr.New(apperr.CategoryValidation, apperr.SeverityError, message, path, nil)
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		first := ve[0]
		return apperr.New(apperr.CategoryValidation, apperr.SeverityError, form.Message(first), form.FieldPath(first), nil)
	}

	if errors.Is(err, ErrOutsideProvider) || isProviderMisuse(err.Error()) {
		return hookUsage(err.Error())
	}
	return raw
}

func isProviderMisuse(s string) bool {
	return strings.Contains(s, "must be used within")
}

func hookUsage(message string) *apperr.Error {
	return apperr.New(apperr.CategoryValidation, apperr.SeverityError, message, apperr.SubHookUsage, nil)
}
