package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/deweydb/dewey/internal/toast"
)

// ToastPresenter shows notifications stacked in the top-right corner of the
// window. Cards live on a layer above the page that has no input handling of
// its own, so taps outside a card reach the page.
type ToastPresenter struct {
	window fyne.Window
	layer  *fyne.Container

	mu      sync.Mutex
	visible []*toastCard
}

type toastCard struct {
	id    uuid.UUID
	box   fyne.CanvasObject
	timer *time.Timer
}

// NewToastPresenter creates a presenter drawing on window. Window content must
// be passed through Wrap for cards to be seen.
func NewToastPresenter(window fyne.Window) *ToastPresenter {
	return &ToastPresenter{window: window, layer: container.NewWithoutLayout()}
}

// Wrap stacks the notification layer over content
func (p *ToastPresenter) Wrap(content fyne.CanvasObject) fyne.CanvasObject {
	return container.NewStack(content, p.layer)
}

// Show displays n and schedules its removal after n.Duration
func (p *ToastPresenter) Show(n toast.Notification) {
	fyne.Do(func() {
		tc := &toastCard{id: n.ID}
		bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
		bg.CornerRadius = theme.InputRadiusSize()
		bg.StrokeColor = theme.Color(theme.ColorNameShadow)
		bg.StrokeWidth = 1
		tc.box = container.NewStack(bg, container.NewPadded(p.content(n, tc)))

		p.mu.Lock()
		p.visible = append(p.visible, tc)
		p.mu.Unlock()

		p.layer.Add(tc.box)
		p.layout()

		if n.Duration > 0 {
			tc.timer = time.AfterFunc(n.Duration, func() {
				fyne.Do(func() { p.hide(tc) })
			})
		}
	})
}

// Dismiss hides every visible notification
func (p *ToastPresenter) Dismiss() {
	fyne.Do(func() {
		p.mu.Lock()
		visible := p.visible
		p.visible = nil
		p.mu.Unlock()

		for _, tc := range visible {
			if tc.timer != nil {
				tc.timer.Stop()
			}
		}
		p.layer.RemoveAll()
		p.layer.Refresh()
	})
}

// Visible returns the number of notifications on screen
func (p *ToastPresenter) Visible() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.visible)
}

func (p *ToastPresenter) content(n toast.Notification, tc *toastCard) fyne.CanvasObject {
	titleLabel := widget.NewLabel(n.Title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	messageLabel := widget.NewLabel(n.Description)
	messageLabel.Wrapping = fyne.TextWrapWord

	closeBtn := widget.NewButton(IconClose, func() { p.hide(tc) })
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, widget.NewIcon(variantIcon(n.Variant)), closeBtn, titleLabel)
	body := container.NewVBox(header, messageLabel)

	if n.Action != nil {
		action := n.Action
		actionBtn := widget.NewButton(action.Label, func() {
			p.hide(tc)
			if action.OnClick != nil {
				action.OnClick()
			}
		})
		actionBtn.Importance = widget.HighImportance
		body.Add(container.NewHBox(actionBtn))
	}
	return body
}

// layout positions the visible notifications top to bottom
func (p *ToastPresenter) layout() {
	p.mu.Lock()
	visible := append([]*toastCard(nil), p.visible...)
	p.mu.Unlock()

	width := p.layer.Size().Width
	if width == 0 {
		width = p.window.Canvas().Size().Width
	}
	y := ToastMargin
	for _, tc := range visible {
		size := fyne.NewSize(ToastWidth, fyne.Max(ToastHeight, tc.box.MinSize().Height))
		tc.box.Resize(size)
		tc.box.Move(fyne.NewPos(width-size.Width-ToastMargin, y))
		y += size.Height + ToastGap
	}
	p.layer.Refresh()
}

func (p *ToastPresenter) hide(tc *toastCard) {
	p.mu.Lock()
	found := false
	for i, v := range p.visible {
		if v == tc {
			p.visible = append(p.visible[:i], p.visible[i+1:]...)
			found = true
			break
		}
	}
	p.mu.Unlock()

	if !found {
		return
	}
	if tc.timer != nil {
		tc.timer.Stop()
	}
	p.layer.Remove(tc.box)
	p.layout()
}

func variantIcon(v toast.Variant) fyne.Resource {
	switch v {
	case toast.VariantSuccess:
		return theme.ConfirmIcon()
	case toast.VariantWarning:
		return theme.WarningIcon()
	case toast.VariantError:
		return theme.ErrorIcon()
	}
	return theme.InfoIcon()
}
