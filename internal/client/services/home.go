package services

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
)

// HomeService manages membership of a home.
type HomeService interface {
	CreateHome(ctx context.Context, homeName, password, image string) error
	JoinHome(ctx context.Context, homeName, password string) error
	CreateAndJoin(ctx context.Context, homeName, password, image string) error
	LeaveHome(ctx context.Context) error
}

type homeService struct {
	client  client.Client
	session *session.Manager
	opts    options
}

func NewHomeService(c client.Client, s *session.Manager, opts ...Option) HomeService {
	return &homeService{client: c, session: s, opts: buildOptions(opts)}
}

// CreateHome uploads the home picture and creates the home. Creating does
// not make the user a member; see CreateAndJoin.
func (h *homeService) CreateHome(ctx context.Context, homeName, password, image string) error {
	if image == "" {
		return client.ValidationError(client.OpCreateHome, MsgHomePictureMissing)
	}

	s := h.session.Snapshot()
	msg := client.OpMessage(client.OpCreateHome)
	fileName := imageFileName(h.opts.now(), "home_"+homeName)

	url, err := uploadImage(ctx, h.client, client.OpCreateHome, msg, fileName, image)
	if err != nil {
		h.opts.logger.Warn(ctx, "create home: upload failed", "error", err)
		return err
	}

	if err := h.client.CreateHome(ctx, s.Token, homeName, password, url); err != nil {
		return err
	}
	h.opts.logger.Info(ctx, "home created", "home", homeName)
	return nil
}

func (h *homeService) JoinHome(ctx context.Context, homeName, password string) error {
	s := h.session.Snapshot()
	if err := h.client.JoinHome(ctx, s.Token, homeName, s.UserName, password); err != nil {
		return err
	}
	if err := h.session.Commit(ctx, session.Fields{HomeName: &homeName}); err != nil {
		h.opts.logger.Warn(ctx, "join home: session not persisted", "error", err)
	}
	h.opts.logger.Info(ctx, "home joined", "home", homeName)
	return nil
}

func (h *homeService) CreateAndJoin(ctx context.Context, homeName, password, image string) error {
	if err := h.CreateHome(ctx, homeName, password, image); err != nil {
		return err
	}
	return h.JoinHome(ctx, homeName, password)
}

func (h *homeService) LeaveHome(ctx context.Context) error {
	s := h.session.Snapshot()
	if err := h.client.LeaveHome(ctx, s.Token, s.UserName); err != nil {
		return err
	}
	if err := h.session.Commit(ctx, session.Fields{HomeName: session.Ptr("")}); err != nil {
		h.opts.logger.Warn(ctx, "leave home: session not persisted", "error", err)
	}
	return nil
}
