package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/planplant/internal/client/pages"
	"github.com/dmitrijs2005/planplant/internal/common"
)

func (a *App) Settings(ctx context.Context) error {
	p, err := pageAs[*pages.HomePage](a)
	if err != nil {
		return err
	}
	p.OpenSettings()
	a.follow(ctx)
	return nil
}

func (a *App) Plants(ctx context.Context) error {
	p, err := pageAs[*pages.HomePage](a)
	if err != nil {
		return err
	}
	if err := p.OpenPlants(); err != nil {
		if errors.Is(err, common.ErrNoHome) {
			printlnFn("Create or join a home first")
		}
		return err
	}
	a.follow(ctx)
	if pp, ok := a.router.Current().(*pages.PlantsPage); ok {
		printlnFn("Plants of", pp.HomeName())
	}
	return nil
}

// CreateHome opens the create-home page from home, then prompts for the
// form and submits it. On the create-home page it only prompts.
func (a *App) CreateHome(ctx context.Context) error {
	if h, ok := a.router.Current().(*pages.HomePage); ok {
		h.OpenCreateHome()
		a.follow(ctx)
	}
	p, err := pageAs[*pages.CreateHomePage](a)
	if err != nil {
		return err
	}

	name, err := a.prompt("Home name")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	f := p.Form()
	if f.Image == "" {
		path, err := a.prompt("Home picture (png or jpg file)")
		if err != nil {
			return err
		}
		if path != "" && !a.pickHomeImage(p, path) {
			return errImageRejected
		}
		f = p.Form()
	}
	f.HomeName, f.Password = name, password
	p.SetForm(f)

	if err := p.Submit(ctx); err != nil {
		return fail("Unable to create home", err)
	}
	a.follow(ctx)
	printlnFn("Home created:", a.session.HomeName())
	return nil
}

func (a *App) pickHomeImage(p *pages.CreateHomePage, path string) bool {
	p.ShowCamera()
	if !p.PickImage(path) {
		printlnFn("Picture rejected:", p.Errors().Camera)
		p.Nav().Back()
		return false
	}
	return true
}

// JoinHome opens the join-home page from home, then prompts for the form
// and submits it.
func (a *App) JoinHome(ctx context.Context) error {
	if h, ok := a.router.Current().(*pages.HomePage); ok {
		h.OpenJoinHome()
		a.follow(ctx)
	}
	p, err := pageAs[*pages.JoinHomePage](a)
	if err != nil {
		return err
	}

	name, err := a.prompt("Home name")
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}
	p.SetForm(pages.JoinHomeForm{HomeName: name, Password: password})

	if err := p.Submit(ctx); err != nil {
		return fail("Unable to join home", err)
	}
	a.follow(ctx)
	printlnFn("Joined home:", a.session.HomeName())
	return nil
}
