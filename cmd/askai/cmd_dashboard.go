package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"askai/client/internal/controller"
	"askai/client/internal/tui"
)

func runAskCommand(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.ask(cmd.Context(), strings.Join(args, " "))
}

func runHistoryCommand(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.history(cmd.Context())
}

func runChatCommand(cmd *cobra.Command, args []string) error {
	c, err := newClient(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer c.Close()
	return c.chat(cmd.Context(), strings.Join(args, " "))
}

// ask opens a dashboard with question as its external query and prints the
// outcome once the round trip settles.
func (c *client) ask(ctx context.Context, question string) error {
	ctrl := c.newController()
	defer ctrl.Close()

	if !ctrl.Mount(ctx) {
		return &exitError{code: exitSignedOut, msg: signedOutHint}
	}
	if !ctrl.ObserveExternal(ctx, question) {
		if c.redirectedToLogin() {
			return &exitError{code: exitSignedOut, msg: sessionEndHint}
		}
		return &exitError{code: exitFailed, msg: "Nothing to ask."}
	}
	ctrl.Wait()

	if c.redirectedToLogin() {
		return &exitError{code: exitSignedOut, msg: sessionEndHint}
	}
	snap := ctrl.Snapshot()
	switch snap.State {
	case controller.StateSuccess:
		c.printf("%s\n", snap.Exchange.Response)
		return nil
	case controller.StateError:
		return &exitError{code: exitFailed, msg: snap.Error}
	default:
		return fmt.Errorf("query ended in state %s", snap.State)
	}
}

func (c *client) history(ctx context.Context) error {
	ctrl := c.newController()
	defer ctrl.Close()

	if !ctrl.Mount(ctx) {
		return &exitError{code: exitSignedOut, msg: signedOutHint}
	}
	ctrl.Wait()
	if c.redirectedToLogin() {
		return &exitError{code: exitSignedOut, msg: sessionEndHint}
	}

	items := ctrl.Snapshot().History
	if len(items) == 0 {
		c.printf("No history yet.\n")
		return nil
	}
	width := 0
	for _, item := range items {
		width = max(width, len(item.ID))
	}
	for _, item := range items {
		c.printf("%-*s  %s\n", width, item.ID, item.Label)
	}
	return nil
}

func (c *client) chat(ctx context.Context, query string) error {
	ctrl := c.newController()
	defer ctrl.Close()

	if !ctrl.Mount(ctx) {
		return &exitError{code: exitSignedOut, msg: signedOutHint}
	}
	ctrl.ObserveExternal(ctx, query)

	dashboard := tui.NewDashboard(ctx, ctrl)
	p := tea.NewProgram(dashboard, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	switch dashboard.Exit() {
	case tui.ExitLoggedOut:
		c.printf("Logged out.\n")
	case tui.ExitSignedOut:
		return &exitError{code: exitSignedOut, msg: sessionEndHint}
	}
	return nil
}
