package cli

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/client/pages"
)

// settingsForm opens screen on the settings page, lets fill edit the forms
// and submits. Success leaves the page on main with its message.
func (a *App) settingsForm(ctx context.Context, screen nav.Screen, title string,
	fill func(p *pages.SettingsPage) error, submit func(p *pages.SettingsPage, ctx context.Context) error) error {

	p, err := pageAs[*pages.SettingsPage](a)
	if err != nil {
		return err
	}
	if err := p.Show(screen); err != nil {
		return err
	}
	if err := fill(p); err != nil {
		return err
	}
	if err := submit(p, ctx); err != nil {
		return fail(title+" failed", err)
	}
	a.follow(ctx)
	printlnFn(p.Success())
	return nil
}

func (a *App) ChangeUserName(ctx context.Context) error {
	return a.settingsForm(ctx, pages.ScreenChangeUserName, "Change user name",
		func(p *pages.SettingsPage) error {
			name, err := a.prompt("New user name")
			if err != nil {
				return err
			}
			password, err := a.password()
			if err != nil {
				return err
			}
			p.Update(func(f *pages.SettingsForms) {
				f.UserName.UserName, f.UserName.Password = name, password
			})
			return nil
		}, (*pages.SettingsPage).SubmitUserName)
}

func (a *App) ChangeEmail(ctx context.Context) error {
	return a.settingsForm(ctx, pages.ScreenChangeEmail, "Change email",
		func(p *pages.SettingsPage) error {
			email, err := a.prompt("New email")
			if err != nil {
				return err
			}
			password, err := a.password()
			if err != nil {
				return err
			}
			p.Update(func(f *pages.SettingsForms) {
				f.Email.Email, f.Email.Password = email, password
			})
			return nil
		}, (*pages.SettingsPage).SubmitEmail)
}

func (a *App) ChangePassword(ctx context.Context) error {
	return a.settingsForm(ctx, pages.ScreenChangePassword, "Change password",
		func(p *pages.SettingsPage) error {
			printlnFn("Current password")
			password, err := a.password()
			if err != nil {
				return err
			}
			printlnFn("New password")
			next, err := a.password()
			if err != nil {
				return err
			}
			p.Update(func(f *pages.SettingsForms) {
				f.Password.Password, f.Password.NewPassword = password, next
			})
			return nil
		}, (*pages.SettingsPage).SubmitPassword)
}

// ChangeImage loads path as the picture of the create-home form, or as the
// new profile picture on the settings page.
func (a *App) ChangeImage(ctx context.Context, path string) error {
	if p, ok := a.router.Current().(*pages.CreateHomePage); ok {
		if !a.pickHomeImage(p, path) {
			return errImageRejected
		}
		printlnFn("Home picture set")
		return nil
	}

	return a.settingsForm(ctx, pages.ScreenChangeImage, "Change image",
		func(p *pages.SettingsPage) error {
			if err := p.Show(pages.ScreenCamera); err != nil {
				return err
			}
			if !p.PickImage(path) {
				printlnFn("Picture rejected:", p.Errors().Camera)
				p.Back()
				return errImageRejected
			}
			password, err := a.password()
			if err != nil {
				return err
			}
			p.Update(func(f *pages.SettingsForms) { f.Image.Password = password })
			return nil
		}, (*pages.SettingsPage).SubmitImage)
}

// DeleteAccount asks for the password and deletes the account.
func (a *App) DeleteAccount(ctx context.Context) error {
	p, err := pageAs[*pages.SettingsPage](a)
	if err != nil {
		return err
	}
	if err := p.Show(pages.ScreenDeleteAccount); err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	p.Update(func(f *pages.SettingsForms) { f.Delete.Password = password })

	if err := p.SubmitDeleteAccount(ctx); err != nil {
		return fail("Delete account failed", err)
	}
	printlnFn(p.Success())
	a.follow(ctx)
	return nil
}

// Vibrate clicks the vibrate toggle, or drags it and releases at
// release[0] with velocity release[1].
func (a *App) Vibrate(ctx context.Context, release []float64) error {
	p, err := pageAs[*pages.SettingsPage](a)
	if err != nil {
		return err
	}
	tg := p.Vibrate()
	before := tg.On()

	if len(release) == 2 {
		tg.BeginDrag()
		tg.UpdateDrag(release[0])
		err = p.ReleaseVibrate(ctx, release[0], release[1])
	} else {
		err = p.ClickVibrate(ctx)
	}
	if err != nil {
		return fail("Unable to save settings", err)
	}
	if tg.On() == before {
		printlnFn("Vibrate unchanged:", before)
		return nil
	}
	printlnFn(p.Success()+", vibrate:", tg.On())
	return nil
}

// LeaveHome leaves the current home from settings or plants.
func (a *App) LeaveHome(ctx context.Context) error {
	switch p := a.router.Current().(type) {
	case *pages.SettingsPage:
		if err := p.LeaveHome(ctx); err != nil {
			return fail("Unable to leave home", err)
		}
		printlnFn(p.Success())
	case *pages.PlantsPage:
		if err := p.LeaveHome(ctx); err != nil {
			return fail("Unable to leave home", err)
		}
		printlnFn(pages.MsgHomeLeft)
		a.follow(ctx)
	default:
		printlnFn("Not available here. Type 'help' for commands.")
		return errNotHere
	}
	return nil
}
