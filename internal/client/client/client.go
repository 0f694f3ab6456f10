package client

import (
	"context"
)

// UploadTarget is a one-time signed destination plus the public URL the
// object will have once uploaded.
type UploadTarget struct {
	SignedRequest string `json:"signedRequest"`
	URL           string `json:"url"`
}

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

// LoginResponse is the identity returned by /user/login. HomeName is nil
// when the user has no home.
type LoginResponse struct {
	Token    string
	UserName string
	ID       string
	Image    string
	Settings map[string]bool
	HomeName *string
}

type Client interface {
	GetUploadURL(ctx context.Context, fileName, fileType string) (UploadTarget, error)
	Upload(ctx context.Context, signedRequest string, data []byte) error
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	ChangeUserName(ctx context.Context, token, userName, password, newUserName string) error
	ChangeEmail(ctx context.Context, token, userName, password, email string) error
	ChangePassword(ctx context.Context, token, userName, password, newPassword string) error
	ChangeImage(ctx context.Context, token, userName, password, imageURL string) error
	ChangeSettings(ctx context.Context, token, userName string, settings map[string]bool) error
	DeleteAccount(ctx context.Context, token, userName, password string) error
	CreateHome(ctx context.Context, token, homeName, password, imageURL string) error
	JoinHome(ctx context.Context, token, homeName, userName, password string) error
	LeaveHome(ctx context.Context, token, userName string) error
}
