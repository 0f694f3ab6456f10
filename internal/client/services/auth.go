package services

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
)

// AuthService defines authentication operations for the pages.
//
// Contract:
//   - Register: upload the profile picture and create the account.
//   - Login: authenticate and commit the returned identity to the session.
//   - SignUp: Register then Login; a failed link stops the chain.
//   - Logout: reset the session.
//   - IsLoggedIn: hydrate the session from the store.
type AuthService interface {
	Register(ctx context.Context, userName, email, password, image string) error
	Login(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, userName, email, password, image string) error
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
}

type authService struct {
	client  client.Client
	session *session.Manager
	opts    options
}

func NewAuthService(c client.Client, s *session.Manager, opts ...Option) AuthService {
	return &authService{client: c, session: s, opts: buildOptions(opts)}
}

// Register runs the image chain: upload target, PUT, /user/register.
// A missing image fails before any request. Upload steps fail with
// "Sign Up Error"; a backend error from the last step is passed through.
func (a *authService) Register(ctx context.Context, userName, email, password, image string) error {
	if image == "" {
		return client.ValidationError(client.OpRegister, MsgProfilePictureMissing)
	}

	msg := client.OpMessage(client.OpRegister)
	fileName := imageFileName(a.opts.now(), userName)

	url, err := uploadImage(ctx, a.client, client.OpRegister, msg, fileName, image)
	if err != nil {
		a.opts.logger.Warn(ctx, "register: image upload failed", "error", err)
		return err
	}

	err = a.client.Register(ctx, client.RegisterRequest{
		UserName: userName,
		Email:    email,
		Password: password,
		Image:    url,
	})
	if err != nil {
		return err
	}
	a.opts.logger.Info(ctx, "user registered", "user", userName)
	return nil
}

// Login authenticates and commits token, identity, settings and home.
// A missing home is committed as the empty sentinel.
func (a *authService) Login(ctx context.Context, email, password string) error {
	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	settings := session.Settings(resp.Settings)
	if settings == nil {
		settings = session.DefaultSettings()
	}
	home := ""
	if resp.HomeName != nil {
		home = *resp.HomeName
	}

	err = a.session.Commit(ctx, session.Fields{
		Token:    &resp.Token,
		UserName: &resp.UserName,
		UserID:   &resp.ID,
		Image:    &resp.Image,
		Settings: settings,
		HomeName: &home,
	})
	if err != nil {
		a.opts.logger.Warn(ctx, "login: session not persisted", "error", err)
	}
	a.opts.logger.Info(ctx, "user logged in", "user", resp.UserName)
	return nil
}

func (a *authService) SignUp(ctx context.Context, userName, email, password, image string) error {
	if err := a.Register(ctx, userName, email, password, image); err != nil {
		return err
	}
	return a.Login(ctx, email, password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Reset(ctx)
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.session.Hydrate(ctx)
}
