package services

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
)

// AccountService changes the logged-in user's profile. Every call sends
// the session token and user name; the backend decides whether they
// are still valid.
type AccountService interface {
	ChangeUserName(ctx context.Context, password, newUserName string) error
	ChangeEmail(ctx context.Context, password, email string) error
	ChangePassword(ctx context.Context, password, newPassword string) error
	ChangeImage(ctx context.Context, password, image string) error
	ChangeSettings(ctx context.Context, settings session.Settings) error
	DeleteAccount(ctx context.Context, password string) error
}

type accountService struct {
	client  client.Client
	session *session.Manager
	opts    options
}

func NewAccountService(c client.Client, s *session.Manager, opts ...Option) AccountService {
	return &accountService{client: c, session: s, opts: buildOptions(opts)}
}

func (a *accountService) commit(ctx context.Context, f session.Fields) {
	if err := a.session.Commit(ctx, f); err != nil {
		a.opts.logger.Warn(ctx, "account: session not persisted", "error", err)
	}
}

func (a *accountService) ChangeUserName(ctx context.Context, password, newUserName string) error {
	s := a.session.Snapshot()
	if err := a.client.ChangeUserName(ctx, s.Token, s.UserName, password, newUserName); err != nil {
		return err
	}
	a.commit(ctx, session.Fields{UserName: &newUserName})
	return nil
}

func (a *accountService) ChangeEmail(ctx context.Context, password, email string) error {
	s := a.session.Snapshot()
	return a.client.ChangeEmail(ctx, s.Token, s.UserName, password, email)
}

func (a *accountService) ChangePassword(ctx context.Context, password, newPassword string) error {
	s := a.session.Snapshot()
	return a.client.ChangePassword(ctx, s.Token, s.UserName, password, newPassword)
}

// ChangeImage uploads image and points the profile at it. An uploaded
// image is not removed if the last step fails.
func (a *accountService) ChangeImage(ctx context.Context, password, image string) error {
	if image == "" {
		return client.ValidationError(client.OpChangeImage, MsgProfilePictureMissing)
	}

	s := a.session.Snapshot()
	msg := client.OpMessage(client.OpChangeImage)
	fileName := imageFileName(a.opts.now(), s.UserName)

	url, err := uploadImage(ctx, a.client, client.OpChangeImage, msg, fileName, image)
	if err != nil {
		a.opts.logger.Warn(ctx, "change image: upload failed", "error", err)
		return err
	}

	if err := a.client.ChangeImage(ctx, s.Token, s.UserName, password, url); err != nil {
		return err
	}
	a.commit(ctx, session.Fields{Image: &url})
	return nil
}

func (a *accountService) ChangeSettings(ctx context.Context, settings session.Settings) error {
	s := a.session.Snapshot()
	if err := a.client.ChangeSettings(ctx, s.Token, s.UserName, settings); err != nil {
		return err
	}
	a.commit(ctx, session.Fields{Settings: settings})
	return nil
}

// DeleteAccount removes the account and, on success, resets the session.
func (a *accountService) DeleteAccount(ctx context.Context, password string) error {
	s := a.session.Snapshot()
	if err := a.client.DeleteAccount(ctx, s.Token, s.UserName, password); err != nil {
		return err
	}
	if err := a.session.Reset(ctx); err != nil {
		a.opts.logger.Warn(ctx, "delete account: session reset incomplete", "error", err)
	}
	a.opts.logger.Info(ctx, "account deleted", "user", s.UserName)
	return nil
}
