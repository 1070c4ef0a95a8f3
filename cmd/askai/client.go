package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"askai/client/internal/app"
	"askai/client/internal/backend"
	"askai/client/internal/config"
	"askai/client/internal/controller"
	"askai/client/internal/navigation"
	"askai/client/internal/session"
)

// sessionKey is the credential key shared by every terminal command.
const sessionKey = "cli"

const (
	exitFailed     = 1
	exitSignedOut  = 2
	signedOutHint  = "Not signed in. Run `askai login` first."
	sessionEndHint = "Your session has ended. Run `askai login` to sign in again."
)

// exitError ends the process with code after printing msg to stderr.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// client is the terminal side of the core: one stored credential and the
// controllers built on top of it.
type client struct {
	stores  *app.Stores
	backend backend.Client
	session *session.Session
	out     io.Writer

	mu       sync.Mutex
	redirect *navigation.Route
}

func newClient(ctx context.Context, cfg *config.Config, out io.Writer) (*client, error) {
	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &client{
		stores:  stores,
		backend: backend.NewClient(cfg.BackendURL, cfg.RequestTimeout),
		session: session.New(stores.Credentials, sessionKey),
		out:     out,
	}, nil
}

func (c *client) Close() error {
	return c.stores.Close()
}

// navigate records redirects issued by the guard. The terminal has no pages;
// a redirect to login ends the command.
func (c *client) navigate(route navigation.Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redirect = &route
}

func (c *client) redirectedToLogin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redirect != nil && c.redirect.Path == navigation.LoginPath
}

func (c *client) newController() *controller.Controller {
	c.mu.Lock()
	c.redirect = nil
	c.mu.Unlock()

	guard := session.NewGuard(c.session, navigation.Func(c.navigate), nil)
	return controller.New(c.backend, guard,
		controller.WithLogger(slog.Default().With("client", "cli")),
	)
}

func (c *client) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
