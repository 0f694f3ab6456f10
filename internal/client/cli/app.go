package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/config"
	"github.com/dmitrijs2005/planplant/internal/client/haptics"
	"github.com/dmitrijs2005/planplant/internal/client/pages"
	"github.com/dmitrijs2005/planplant/internal/client/services"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/store"
	"github.com/dmitrijs2005/planplant/internal/logging"
)

// App owns the session, the services and the router of one CLI process.
type App struct {
	config  *config.Config
	logger  logging.Logger
	session *session.Manager
	auth    services.AuthService
	router  *pages.Router
	reader  *bufio.Reader
	out     io.Writer
	closeFn func() error
}

// NewApp opens the cookie jar at c.StorePath and wires the backend client,
// services and pages around it. Haptic pulses ring the terminal bell.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	st, err := store.Open(ctx, c.StorePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar: %w", err)
	}

	sess := session.NewManager(st, session.WithLogger(logger))
	api := client.NewHTTPClient(c.APIURL, c.APIVersion,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(logger),
	)

	a := assemble(c, logger, sess, api, haptics.NewTerminalVibrator(os.Stdout), os.Stdin, os.Stdout)
	a.closeFn = st.Close
	return a, nil
}

// assemble builds an App over an existing session and backend client.
func assemble(c *config.Config, logger logging.Logger, sess *session.Manager, api client.Client,
	v haptics.Vibrator, in io.Reader, out io.Writer) *App {

	auth := services.NewAuthService(api, sess, services.WithLogger(logger))
	deps := pages.Deps{
		Session: sess,
		Auth:    auth,
		Account: services.NewAccountService(api, sess, services.WithLogger(logger)),
		Home:    services.NewHomeService(api, sess, services.WithLogger(logger)),
		Haptics: haptics.New(v, sess.Vibrate),
		Logger:  logger,
		Width:   c.ScreenWidth,
	}

	return &App{
		config:  c,
		logger:  logger,
		session: sess,
		auth:    auth,
		router:  pages.NewRouter(deps, pages.WithVibrator(v)),
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run lands on the first page and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// follow applies the redirect a command left on the current page.
func (a *App) follow(ctx context.Context) {
	prev := a.router.Route()
	if _, err := a.router.Follow(ctx); err != nil {
		a.logger.Error(ctx, "navigation failed", "error", err)
		return
	}
	if r := a.router.Route(); r != prev {
		a.logger.Debug(ctx, "page changed", "from", string(prev), "to", string(r))
	}
}
