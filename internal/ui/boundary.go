package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/deweydb/dewey/internal/apperr"
)

// Boundary renders a page and replaces it with a fallback screen when
// building it panics
type Boundary struct {
	loc        *Localization
	navigate   func(path string)
	onboarding string
	logger     *slog.Logger

	// OnReset runs before a retry
	OnReset func()
}

// NewBoundary creates a boundary. navigate receives the key-setup path.
func NewBoundary(loc *Localization, onboardingPath string, navigate func(path string), logger *slog.Logger) *Boundary {
	if logger == nil {
		logger = slog.Default()
	}
	return &Boundary{loc: loc, navigate: navigate, onboarding: onboardingPath, logger: logger}
}

// Render builds the page. On panic the fallback is returned instead; its
// Try Again button calls retry.
func (b *Boundary) Render(build func() fyne.CanvasObject, retry func()) (obj fyne.CanvasObject) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e := apperr.Normalize(panicValue(r))
		b.logger.Error("page render failed",
			"category", e.Category,
			"severity", e.Severity,
			"subcategory", e.Subcategory,
			"error", e.Message)
		obj = b.Fallback(e, retry)
	}()
	return build()
}

// Fallback is the screen shown in place of a failed page
func (b *Boundary) Fallback(e *apperr.Error, retry func()) fyne.CanvasObject {
	title := widget.NewLabel(b.loc.GetText(KeyBoundaryTitle))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	message := widget.NewLabel(e.Message)
	message.Wrapping = fyne.TextWrapWord
	message.Alignment = fyne.TextAlignCenter

	actions := container.NewHBox()
	if recoverable(e) && retry != nil {
		tryAgain := widget.NewButtonWithIcon(b.loc.GetText(KeyTryAgain), theme.ViewRefreshIcon(), func() {
			if b.OnReset != nil {
				b.OnReset()
			}
			retry()
		})
		tryAgain.Importance = widget.HighImportance
		actions.Add(tryAgain)
	}
	if e.IsKeyError() && b.navigate != nil {
		actions.Add(widget.NewButton(IconKey+" "+b.loc.GetText(KeySetUpKey), func() {
			b.navigate(b.onboarding)
		}))
	}

	return container.NewCenter(container.NewVBox(
		widget.NewIcon(theme.ErrorIcon()),
		title,
		message,
		container.NewCenter(actions),
	))
}

// recoverable reports whether retrying the page can help
func recoverable(e *apperr.Error) bool {
	return e.Severity != apperr.SeverityCritical
}

func panicValue(r any) any {
	switch v := r.(type) {
	case error, string:
		return v
	}
	return fmt.Sprint(r)
}
