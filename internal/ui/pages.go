package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/deweydb/dewey/internal/apperr"
	"github.com/deweydb/dewey/internal/backend"
	"github.com/deweydb/dewey/internal/errhandler"
	"github.com/deweydb/dewey/internal/model"
)

func heading(text string) fyne.CanvasObject {
	return widget.NewRichTextFromMarkdown("## " + text)
}

func paragraph(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.Wrapping = fyne.TextWrapWord
	return l
}

// authPage offers the OAuth providers and the password form
func (ui *RootUI) authPage() fyne.CanvasObject {
	ui.mu.Lock()
	signUp := ui.signUp
	ui.mu.Unlock()

	title := KeySignIn
	if signUp {
		title = KeySignUp
	}
	page := container.NewVBox(heading(ui.localization.GetText(title)))

	if ui.signIn != nil && len(ui.signIn.Providers()) > 0 {
		loading, isLoading := ui.signIn.Loading()
		for _, p := range ui.signIn.Providers() {
			provider := p
			btn := widget.NewButton(fmt.Sprintf(ui.localization.GetText(KeyContinueWith), provider.DisplayName()), func() {
				if _, err := ui.signIn.Begin(provider); err != nil {
					ui.errors.Report(err)
				}
				ui.rerender()
			})
			if isLoading {
				btn.Disable()
			}
			page.Add(btn)
		}
		if isLoading {
			page.Add(widget.NewProgressBarInfinite())
			page.Add(paragraph(fmt.Sprintf(ui.localization.GetText(KeyWaitingBrowser), loading.DisplayName())))
		}
		or := widget.NewLabel(ui.localization.GetText(KeyOr))
		or.Alignment = fyne.TextAlignCenter
		page.Add(or)
	}

	email := widget.NewEntry()
	email.SetPlaceHolder(ui.localization.GetText(KeyEmail))
	password := widget.NewPasswordEntry()
	password.SetPlaceHolder(ui.localization.GetText(KeyPassword))

	inlineErr := widget.NewLabel("")
	inlineErr.Importance = widget.DangerImportance
	inlineErr.Wrapping = fyne.TextWrapWord
	inlineErr.Hide()

	var submit *widget.Button
	submit = widget.NewButton(ui.localization.GetText(title), func() {
		cred := backend.Credentials{Email: strings.TrimSpace(email.Text), Password: password.Text}
		if cred.Email == "" || cred.Password == "" {
			inlineErr.SetText(ui.localization.GetText(KeyEmail) + " / " + ui.localization.GetText(KeyPassword))
			inlineErr.Show()
			return
		}
		submit.Disable()
		inlineErr.Hide()
		go ui.passwordSignIn(cred, signUp, func(message string) {
			fyne.Do(func() {
				submit.Enable()
				inlineErr.SetText(message)
				inlineErr.Show()
			})
		})
	})
	submit.Importance = widget.HighImportance
	password.OnSubmitted = func(string) { submit.OnTapped() }

	toggleKey := KeyNoAccount
	if signUp {
		toggleKey = KeyHaveAccount
	}
	toggle := widget.NewButton(ui.localization.GetText(toggleKey), func() {
		ui.mu.Lock()
		ui.signUp = !ui.signUp
		ui.mu.Unlock()
		ui.rerender()
	})
	toggle.Importance = widget.LowImportance

	page.Add(email)
	page.Add(password)
	page.Add(inlineErr)
	page.Add(submit)
	page.Add(toggle)
	return page
}

// passwordSignIn signs in or up; failures are shown inline instead of as a toast
func (ui *RootUI) passwordSignIn(cred backend.Credentials, signUp bool, onFail func(message string)) {
	call := ui.backend.Login
	if signUp {
		call = ui.backend.Register
	}

	u, err := call(ui.context(), cred)
	if err != nil {
		onFail(ui.errors.Silently(err).Message)
		return
	}
	if u.ID == "" {
		onFail(apperr.DefaultMessage)
		return
	}
	ui.session.Set(u)
}

// callbackPage is shown while the provider redirect is exchanged for a session
func (ui *RootUI) callbackPage() fyne.CanvasObject {
	return container.NewCenter(container.NewVBox(
		widget.NewLabel(ui.localization.GetText(KeyCompletingLogin)),
		widget.NewProgressBarInfinite(),
	))
}

// onboardingPage walks through the encryption key setup
func (ui *RootUI) onboardingPage() fyne.CanvasObject {
	ui.mu.Lock()
	key := ui.key
	required := ui.onboardingRequired
	ui.mu.Unlock()

	page := container.NewVBox(
		heading(ui.localization.GetText(KeyOnboardingTitle)),
		paragraph(ui.localization.GetText(KeyOnboardingIntro)),
		widget.NewSeparator(),
		widget.NewLabel(IconKey+" "+ui.localization.GetText(KeyEncryptionKey)),
	)

	if required != nil && !*required {
		page.Add(paragraph(ui.localization.GetText(KeyOnboardingSkipped)))
	}

	finish := widget.NewButton(ui.localization.GetText(KeyFinishOnboarding), ui.finishOnboarding)
	finish.Importance = widget.HighImportance
	finish.Disable()

	switch key {
	case keyUnknown:
		ui.checkEncryptionKey()
		page.Add(paragraph(ui.localization.GetText(KeyCheckingKeyring)))
		page.Add(widget.NewProgressBarInfinite())
	case keyChecking:
		page.Add(paragraph(ui.localization.GetText(KeyCheckingKeyring)))
		page.Add(widget.NewProgressBarInfinite())
	case keyMissing:
		page.Add(paragraph(ui.localization.GetText(KeyKeyMissing)))
		var generate *widget.Button
		generate = widget.NewButton(ui.localization.GetText(KeyGenerateKey), func() {
			generate.Disable()
			go ui.generateEncryptionKey()
		})
		page.Add(generate)
	case keyPresent:
		page.Add(paragraph(ui.localization.GetText(KeyKeyReady)))
		finish.Enable()
	}

	page.Add(finish)
	return page
}

func (ui *RootUI) setKey(k keyState) {
	ui.mu.Lock()
	ui.key = k
	ui.mu.Unlock()
}

func (ui *RootUI) checkEncryptionKey() {
	ui.setKey(keyChecking)
	ctx := ui.context()

	go func() {
		has, e := errhandler.RunCommand(ctx, ui.backend.HasEncryptionKey)
		switch {
		case e != nil:
			ui.setKey(keyMissing)
		case has:
			ui.setKey(keyPresent)
		default:
			ui.setKey(keyMissing)
		}
		ui.rerender()
	}()
}

func (ui *RootUI) generateEncryptionKey() {
	_, e := errhandler.RunCommand(ui.context(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, ui.backend.InitializeEncryptionKey(ctx)
	})
	if e == nil {
		ui.setKey(keyPresent)
	}
	ui.rerender()
}

// finishOnboarding stores completion and leaves for the app root
func (ui *RootUI) finishOnboarding() {
	go func() {
		_, e := errhandler.RunCommand(ui.context(), func(ctx context.Context) (struct{}, error) {
			return struct{}{}, ui.backend.StoreOnboarding(ctx, true)
		})
		if e != nil {
			return
		}

		done := false
		ui.mu.Lock()
		ui.onboardingRequired = &done
		ui.mu.Unlock()
		ui.router.Navigate(ui.paths.Root, true)
	}()
}

// homePage is the app root of a user without projects
func (ui *RootUI) homePage() fyne.CanvasObject {
	create := widget.NewButtonWithIcon(ui.localization.GetText(KeyCreateProject), theme.ContentAddIcon(), ui.onCreateProject)
	create.Importance = widget.HighImportance

	return container.NewCenter(container.NewVBox(
		widget.NewIcon(theme.StorageIcon()),
		paragraph(ui.localization.GetText(KeyNoProjects)),
		create,
	))
}

func (ui *RootUI) projectPage(id int64) fyne.CanvasObject {
	p, ok := ui.projectByID(id)
	if !ok {
		return ui.notFoundPage()
	}
	ui.settings.SetLastProject(p.ID)

	return container.NewVBox(
		container.NewHBox(avatar(p), heading(p.GetDisplayName())),
		widget.NewSeparator(),
		widget.NewLabel(ui.localization.GetText(KeyCreatedAt)+": "+createdText(p)),
	)
}

func avatar(p model.Project) fyne.CanvasObject {
	l := widget.NewLabel(p.Initials())
	l.TextStyle = fyne.TextStyle{Monospace: true}
	return widget.NewCard("", "", l)
}

func (ui *RootUI) notFoundPage() fyne.CanvasObject {
	back := widget.NewButton(ui.localization.GetText(KeyProjects), func() {
		ui.router.Navigate(ui.paths.Root, false)
	})
	return container.NewCenter(container.NewVBox(
		widget.NewIcon(theme.QuestionIcon()),
		widget.NewLabel(ui.localization.GetText(KeyPageNotFound)),
		back,
	))
}

func createdText(p model.Project) string {
	if p.CreatedAt == 0 {
		return DashPlaceholder
	}
	return p.Created().Format("2006-01-02 15:04")
}
