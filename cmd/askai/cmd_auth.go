package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	app_errors "askai/client/internal/errors"
	"askai/client/internal/model"
	"askai/client/internal/navigation"
	"askai/client/internal/service"
)

func runLoginCommand(cmd *cobra.Command, args []string) error {
	creds, err := credentialsFromFlags("Sign in")
	if err != nil {
		return err
	}
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.login(cmd.Context(), creds)
}

func runSignupCommand(cmd *cobra.Command, args []string) error {
	creds, err := credentialsFromFlags("Create an account")
	if err != nil {
		return err
	}
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.signup(cmd.Context(), creds)
}

func runLogoutCommand(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.logout(cmd.Context())
}

func (c *client) login(ctx context.Context, creds model.Credentials) error {
	auth := service.NewAuthService(c.backend)
	res, err := auth.Login(ctx, c.session, navigation.Func(func(navigation.Route) {}), creds)
	if err != nil {
		return authError(err)
	}
	if !res.Success {
		return &exitError{code: exitFailed, msg: res.Message}
	}
	c.printf("%s\n", res.Message)
	return nil
}

func (c *client) signup(ctx context.Context, creds model.Credentials) error {
	res, err := service.NewAuthService(c.backend).Signup(ctx, creds)
	if err != nil {
		return authError(err)
	}
	if !res.Success {
		return &exitError{code: exitFailed, msg: res.Message}
	}
	c.printf("%s Run `askai login` to sign in.\n", res.Message)
	return nil
}

func (c *client) logout(ctx context.Context) error {
	if err := c.session.Clear(ctx); err != nil {
		return fmt.Errorf("could not clear the stored credential: %w", err)
	}
	c.printf("Logged out.\n")
	return nil
}

func authError(err error) error {
	if errors.Is(err, app_errors.ErrValidation) {
		return &exitError{code: exitFailed, msg: "Email and password are required."}
	}
	return err
}

// credentialsFromFlags fills in missing flags with an interactive form. Off a
// terminal both flags are required.
func credentialsFromFlags(title string) (model.Credentials, error) {
	creds := model.Credentials{Email: strings.TrimSpace(email), Password: password}
	if creds.Email != "" && creds.Password != "" {
		return creds, nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return creds, &exitError{code: exitFailed, msg: "--email and --password are required when stdin is not a terminal."}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&creds.Email).
				Validate(requireValue("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(requireValue("password")),
		).Title(title),
	)
	if err := form.Run(); err != nil {
		return creds, err
	}
	creds.Email = strings.TrimSpace(creds.Email)
	return creds, nil
}

func requireValue(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
