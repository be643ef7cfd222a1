package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/deweydb/dewey/internal/model"
	"github.com/deweydb/dewey/internal/route"
)

// isMobileDevice checks if the app is running on a mobile device
func isMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// layoutFor wraps the page for path in the layout the decision names
func (ui *RootUI) layoutFor(d route.Decision, path string) fyne.CanvasObject {
	switch d.Kind {
	case route.ShowLoading:
		return ui.loadingLayout()
	case route.RenderPublic:
		return ui.publicLayout(ui.renderPage(path))
	default:
		return ui.appLayout(path, ui.renderPage(path))
	}
}

// renderPage builds the page inside the error boundary
func (ui *RootUI) renderPage(path string) fyne.CanvasObject {
	return ui.boundary.Render(func() fyne.CanvasObject {
		return ui.buildPage(path)
	}, ui.rerender)
}

func (ui *RootUI) buildPage(path string) fyne.CanvasObject {
	switch {
	case path == ui.paths.AuthCallback:
		return ui.callbackPage()
	case path == ui.paths.Auth || ui.paths.IsPublic(path):
		return ui.authPage()
	case ui.paths.IsOnboarding(path):
		return ui.onboardingPage()
	case ui.paths.IsRoot(path):
		return ui.homePage()
	}
	if id, ok := ui.paths.ProjectID(path); ok {
		return ui.projectPage(id)
	}
	return ui.notFoundPage()
}

func (ui *RootUI) loadingLayout() fyne.CanvasObject {
	spinner := widget.NewProgressBarInfinite()
	label := widget.NewLabel(ui.localization.GetText(KeyLoading))
	label.Alignment = fyne.TextAlignCenter
	return container.NewCenter(container.NewVBox(label, spinner))
}

// publicLayout centres the page in a fixed-width column
func (ui *RootUI) publicLayout(page fyne.CanvasObject) fyne.CanvasObject {
	width := AuthCardWidth
	if isMobileDevice() {
		return container.NewPadded(container.NewVScroll(page))
	}
	column := container.NewGridWrap(fyne.NewSize(width, page.MinSize().Height), page)
	return container.NewCenter(column)
}

// appLayout is the signed-in frame: project sidebar and the page
func (ui *RootUI) appLayout(path string, page fyne.CanvasObject) fyne.CanvasObject {
	if isMobileDevice() {
		return container.NewBorder(ui.projectPicker(path), nil, nil, nil, page)
	}
	sidebar := ui.sidebar(path)
	split := container.NewHSplit(sidebar, container.NewPadded(page))
	split.SetOffset(0.22)
	return split
}

func (ui *RootUI) sidebar(path string) fyne.CanvasObject {
	header := widget.NewLabel(ui.localization.GetText(KeyProjects))
	header.TextStyle = fyne.TextStyle{Bold: true}

	addBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), ui.onCreateProject)
	addBtn.Importance = widget.LowImportance
	top := container.NewBorder(nil, nil, nil, addBtn, header)

	current, _ := ui.paths.ProjectID(path)
	items := container.NewVBox()
	for _, p := range ui.projectList() {
		items.Add(ui.projectButton(p, p.ID == current))
	}

	user, _ := ui.session.Current()
	userLabel := widget.NewLabel(user.GetDisplayName())
	userLabel.Truncation = fyne.TextTruncateEllipsis

	settingsBtn := widget.NewButtonWithIcon(ui.shortcutHint(), theme.SettingsIcon(), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	signOutBtn := widget.NewButtonWithIcon(ui.localization.GetText(KeySignOut), theme.LogoutIcon(), ui.onSignOut)
	signOutBtn.Importance = widget.LowImportance

	footer := container.NewVBox(
		widget.NewSeparator(),
		userLabel,
		container.NewHBox(settingsBtn, signOutBtn),
	)
	return container.NewBorder(top, footer, nil, nil, container.NewVScroll(items))
}

func (ui *RootUI) projectButton(p model.Project, selected bool) fyne.CanvasObject {
	btn := widget.NewButton(p.Initials()+MiddleDotSeparator+p.GetDisplayName(), func() {
		ui.router.Navigate(p.Route(), false)
	})
	btn.Alignment = widget.ButtonAlignLeading
	if selected {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.LowImportance
	}
	return btn
}

// projectPicker replaces the sidebar on small screens
func (ui *RootUI) projectPicker(path string) fyne.CanvasObject {
	projects := ui.projectList()
	names := make([]string, 0, len(projects))
	routes := make(map[string]string, len(projects))
	selected := ""
	current, _ := ui.paths.ProjectID(path)
	for _, p := range projects {
		name := p.GetDisplayName()
		names = append(names, name)
		routes[name] = p.Route()
		if p.ID == current {
			selected = name
		}
	}

	picker := widget.NewSelect(names, nil)
	picker.PlaceHolder = ui.localization.GetText(KeyProjects)
	if selected != "" {
		picker.SetSelected(selected)
	}
	picker.OnChanged = func(name string) {
		if r, ok := routes[name]; ok {
			ui.router.Navigate(r, false)
		}
	}

	addBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), ui.onCreateProject)
	signOutBtn := widget.NewButtonWithIcon("", theme.LogoutIcon(), ui.onSignOut)
	return container.NewPadded(container.NewBorder(nil, nil, nil, container.NewHBox(addBtn, signOutBtn), picker))
}
