package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/planplant/internal/client/pages"
)

var errImageRejected = errors.New("image rejected")

func (a *App) Welcome(context.Context) error {
	p, err := pageAs[*pages.AuthPage](a)
	if err != nil {
		return err
	}
	p.ShowWelcome()
	return nil
}

// Login prompts for the login form and submits it.
func (a *App) Login(ctx context.Context) error {
	p, err := pageAs[*pages.AuthPage](a)
	if err != nil {
		return err
	}
	p.ShowLogin()

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	p.SetLoginForm(pages.LoginForm{Email: email, Password: password})

	if err := p.SubmitLogin(ctx); err != nil {
		return fail("Login failed", err)
	}
	a.follow(ctx)
	printlnFn("Welcome back,", a.session.UserName())
	return nil
}

// SignUp prompts for the sign-up form, loads the profile picture from a
// file and submits.
func (a *App) SignUp(ctx context.Context) error {
	p, err := pageAs[*pages.AuthPage](a)
	if err != nil {
		return err
	}
	p.ShowSignUp()

	userName, err := a.prompt("User name")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	path, err := a.prompt("Profile picture (png or jpg file)")
	if err != nil {
		return err
	}
	if path != "" {
		p.ShowCamera()
		if !p.PickImage(path) {
			printlnFn("Picture rejected:", p.Errors().Camera)
			p.ShowSignUp()
			return errImageRejected
		}
	}

	f := p.SignUpForm()
	f.UserName, f.Email, f.Password = userName, email, password
	p.SetSignUpForm(f)

	if err := p.SubmitSignUp(ctx); err != nil {
		return fail("Sign up failed", err)
	}
	a.follow(ctx)
	printlnFn("Welcome,", a.session.UserName())
	return nil
}
