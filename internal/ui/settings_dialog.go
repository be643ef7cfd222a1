package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/deweydb/dewey/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	themeSelect    *widget.Select
	languageSelect *widget.Select
	delayEntry     *widget.Entry

	// languageCodes maps a display label back to its code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		loc:      loc,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, loc, window, onSaved)
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	themeOptions := []string{}
	for _, v := range sd.settings.GetThemeOptions() {
		themeOptions = append(themeOptions, string(v))
	}
	sd.themeSelect = widget.NewSelect(themeOptions, nil)

	// Language selection shows display names, sorted for a stable order
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, label := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[label] = code
		languageOptions = append(languageOptions, label)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.delayEntry = widget.NewEntry()
	sd.delayEntry.SetPlaceHolder(strconv.Itoa(config.DefaultToastDelayMS))

	form := container.NewVBox(
		widget.NewLabel(sd.loc.GetText(KeyTheme)+":"),
		sd.themeSelect,

		widget.NewLabel(sd.loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,

		widget.NewLabel(sd.loc.GetText(KeyToastDelay)+":"),
		sd.delayEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(KeySettings),
		sd.loc.GetText(KeySave),
		sd.loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 320))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.themeSelect.SetSelected(string(sd.settings.GetTheme()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.delayEntry.SetText(strconv.Itoa(int(sd.settings.GetToastDelay() / time.Millisecond)))
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}
}

func (sd *SettingsDialog) save() {
	if sd.themeSelect.Selected != "" {
		sd.settings.SetTheme(config.ThemeVariant(sd.themeSelect.Selected))
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if ms, err := strconv.Atoi(sd.delayEntry.Text); err == nil {
		sd.settings.SetToastDelay(time.Duration(ms) * time.Millisecond)
	}
}
