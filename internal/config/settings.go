package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// ThemeVariant selects the colour scheme of the window
type ThemeVariant string

const (
	ThemeLight  ThemeVariant = "light"
	ThemeDark   ThemeVariant = "dark"
	ThemeSystem ThemeVariant = "system"
)

// Settings keys for Fyne preferences
const (
	KeyTheme        = "theme"
	KeyLanguage     = "app_language"
	KeyToastDelayMS = "toast_delay_ms"
	KeyLastProject  = "last_project_id"
)

// Default values
const (
	DefaultTheme        = ThemeSystem
	DefaultLanguage     = "system"
	DefaultToastDelayMS = 1000
	MaxToastDelayMS     = 10000
)

// Settings manages user preferences persisted by Fyne
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTheme returns the configured theme variant
func (s *Settings) GetTheme() ThemeVariant {
	switch v := ThemeVariant(s.app.Preferences().String(KeyTheme)); v {
	case ThemeLight, ThemeDark, ThemeSystem:
		return v
	}
	return DefaultTheme
}

// SetTheme sets the theme variant; unknown values reset to system
func (s *Settings) SetTheme(v ThemeVariant) {
	switch v {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		v = DefaultTheme
	}
	s.app.Preferences().SetString(KeyTheme, string(v))
}

// GetThemeOptions returns available theme options
func (s *Settings) GetThemeOptions() []ThemeVariant {
	return []ThemeVariant{ThemeSystem, ThemeLight, ThemeDark}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetToastDelay returns the pause between two queued notifications
func (s *Settings) GetToastDelay() time.Duration {
	ms := s.app.Preferences().IntWithFallback(KeyToastDelayMS, DefaultToastDelayMS)
	if ms < 0 {
		ms = DefaultToastDelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

// SetToastDelay sets the pause between notifications, clamped to [0, MaxToastDelayMS]
func (s *Settings) SetToastDelay(d time.Duration) {
	ms := int(d / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	if ms > MaxToastDelayMS {
		ms = MaxToastDelayMS
	}
	s.app.Preferences().SetInt(KeyToastDelayMS, ms)
}

// GetLastProject returns the id of the project opened last, or 0
func (s *Settings) GetLastProject() int64 {
	return int64(s.app.Preferences().Int(KeyLastProject))
}

// SetLastProject records the project opened last
func (s *Settings) SetLastProject(id int64) {
	s.app.Preferences().SetInt(KeyLastProject, int(id))
}
