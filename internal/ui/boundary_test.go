package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/logging"
)

// findButton walks obj and returns the first button with text
func findButton(obj fyne.CanvasObject, text string) *widget.Button {
	switch o := obj.(type) {
	case *widget.Button:
		if o.Text == text {
			return o
		}
	case *fyne.Container:
		for _, child := range o.Objects {
			if b := findButton(child, text); b != nil {
				return b
			}
		}
	}
	return nil
}

func newTestBoundary(navigated *string) *Boundary {
	return NewBoundary(NewLocalization(), "/onboarding", func(p string) { *navigated = p }, logging.Discard())
}

func TestBoundary_RendersPageWhenNoPanic(t *testing.T) {
	test.NewApp()
	var nav string
	b := newTestBoundary(&nav)

	page := widget.NewLabel("fine")
	got := b.Render(func() fyne.CanvasObject { return page }, nil)
	assert.Same(t, page, got)
}

func TestBoundary_PanicShowsTryAgain(t *testing.T) {
	test.NewApp()
	var nav string
	b := newTestBoundary(&nav)
	resets, retries := 0, 0
	b.OnReset = func() { resets++ }

	got := b.Render(func() fyne.CanvasObject { panic(errors.New("render exploded")) }, func() { retries++ })

	tryAgain := findButton(got, "Try Again")
	require.NotNil(t, tryAgain)
	assert.Nil(t, findButton(got, IconKey+" Set Up Encryption Key"))

	test.Tap(tryAgain)
	assert.Equal(t, 1, resets)
	assert.Equal(t, 1, retries)
}

func TestBoundary_KeyErrorLinksToSetup(t *testing.T) {
	test.NewApp()
	var nav string
	b := newTestBoundary(&nav)

	got := b.Render(func() fyne.CanvasObject {
		panic(apperr.New(apperr.CategoryKeyring, apperr.SeverityCritical, "no key", apperr.SubKeyNotFound, nil))
	}, func() {})

	// critical errors are not retried
	assert.Nil(t, findButton(got, "Try Again"))

	setup := findButton(got, IconKey+" Set Up Encryption Key")
	require.NotNil(t, setup)
	test.Tap(setup)
	assert.Equal(t, "/onboarding", nav)
}

func TestBoundary_NonErrorPanicValue(t *testing.T) {
	test.NewApp()
	var nav string
	b := newTestBoundary(&nav)

	got := b.Render(func() fyne.CanvasObject { panic(42) }, func() {})
	assert.NotNil(t, findButton(got, "Try Again"))
}
