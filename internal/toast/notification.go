// Package toast turns canonical errors into user-visible notifications and
// delivers them one at a time, in arrival order, to a presentation surface.
package toast

import (
	"time"

	"github.com/google/uuid"
)

// Variant is the display channel of a notification
type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

// DefaultNoticeDuration applies to notifications built with Success and Warning
const DefaultNoticeDuration = 3 * time.Second

// Action is an optional button rendered inside a notification
type Action struct {
	Label   string
	OnClick func()
}

// Notification is one display request for the presentation surface
type Notification struct {
	ID          uuid.UUID
	Title       string
	Description string
	Variant     Variant
	Duration    time.Duration
	Action      *Action
}

// Presenter is the external toast surface.
type Presenter interface {
	// Show displays n. It must not block for the notification's duration.
	Show(n Notification)
	// Dismiss removes every visible notification.
	Dismiss()
}

// Navigator performs the navigation requested by a notification action
type Navigator interface {
	Navigate(path string, replace bool)
}

// Success builds a success notice
func Success(title, description string) Notification {
	return Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Variant:     VariantSuccess,
		Duration:    DefaultNoticeDuration,
	}
}

// Warning builds a warning notice that does not originate from an error record
func Warning(title, description string) Notification {
	return Notification{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Variant:     VariantWarning,
		Duration:    DefaultNoticeDuration,
	}
}
