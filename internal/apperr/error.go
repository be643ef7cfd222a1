package apperr

import (
	"maps"
)

// DefaultMessage replaces an empty or unrecoverable message
const DefaultMessage = "An unknown error occurred"

// StatusCustomError marks a backend rejection whose error field carries a JSON-encoded canonical error
const StatusCustomError = "CUSTOM_ERROR"

// Error is the canonical, fully formed error record shown to the user.
type Error struct {
	Category    Category       `json:"category"`
	Severity    Severity       `json:"severity"`
	Message     string         `json:"message"`
	Subcategory string         `json:"subcategory,omitempty"`
	Context     map[string]any `json:"context,omitempty"`
}

// New creates a canonical error. Invalid category or severity values fall
// back to Unknown and Error; an empty message falls back to DefaultMessage.
func New(category Category, severity Severity, message, subcategory string, context map[string]any) *Error {
	e := &Error{
		Category:    category,
		Severity:    severity,
		Message:     message,
		Subcategory: subcategory,
		Context:     maps.Clone(context),
	}
	e.fill()
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithContext returns a copy whose context is the union of the existing
// context and extra. Keys in extra win.
func (e *Error) WithContext(extra map[string]any) *Error {
	c := e.Clone()
	if len(extra) == 0 {
		return c
	}
	if c.Context == nil {
		c.Context = make(map[string]any, len(extra))
	}
	maps.Copy(c.Context, extra)
	return c
}

// Clone returns a deep-enough copy: the context map is copied, its values are shared.
func (e *Error) Clone() *Error {
	c := *e
	c.Context = maps.Clone(e.Context)
	return &c
}

// IsKeyError reports whether the error concerns the encryption key stored in the OS keyring.
func (e *Error) IsKeyError() bool {
	return e.Category == CategoryKeyring || e.Category == CategoryKeyGeneration
}

// wellFormed reports whether e already satisfies every invariant of the canonical shape.
func (e *Error) wellFormed() bool {
	return e.Category.Valid() && e.Severity.Valid() && e.Message != ""
}

func (e *Error) fill() {
	if !e.Category.Valid() {
		if c, ok := ParseCategory(string(e.Category)); ok {
			e.Category = c
		} else {
			e.Category = CategoryUnknown
		}
	}
	if !e.Severity.Valid() {
		if s, ok := ParseSeverity(string(e.Severity)); ok {
			e.Severity = s
		} else {
			e.Severity = SeverityError
		}
	}
	if e.Message == "" {
		e.Message = DefaultMessage
	}
}

// CommandError is the wrapper the native backend rejects with for custom errors.
type CommandError struct {
	Status string `json:"status"`
	Err    string `json:"error"`
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return e.Err
}
