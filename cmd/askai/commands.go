package main

import (
	"os"

	"github.com/spf13/cobra"

	"askai/client/internal/app"
	"askai/client/internal/config"
)

// cfg is loaded once by the root command before any subcommand runs.
var cfg *config.Config

var (
	email    string
	password string

	rootCmd = &cobra.Command{
		Use:           "askai",
		Short:         "Terminal client for the Ask AI service",
		Long:          `askai signs in to an Ask AI service, asks questions and browses the answer history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			level := cfg.LogLevel
			if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
				level = "WARN"
			}
			app.SetupLogger(os.Stderr, level)
			return nil
		},
	}

	// --- Account ---
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session credential",
		Args:  cobra.NoArgs,
		RunE:  runLoginCommand, // Defined in cmd_auth.go
	}
	signupCmd = &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the AI service",
		Args:  cobra.NoArgs,
		RunE:  runSignupCommand,
	}
	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session credential",
		Args:  cobra.NoArgs,
		RunE:  runLogoutCommand,
	}

	// --- Dashboard ---
	askCmd = &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAskCommand, // Defined in cmd_dashboard.go
	}
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List previous questions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCommand,
	}
	chatCmd = &cobra.Command{
		Use:   "chat [query]",
		Short: "Open the interactive dashboard",
		RunE:  runChatCommand,
	}

	// --- Web client ---
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the web client",
		Args:  cobra.NoArgs,
		RunE:  runServeCommand, // Defined in cmd_serve.go
	}
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	loginCmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	signupCmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
}
