package main

import (
	"context"
	"fmt"
	"time"

	"github.com/metalagman/chatprobe"
	"github.com/spf13/cobra"
)

// endpoint is replaced in tests.
var endpoint = chatprobe.DefaultEndpoint

type rootOptions struct {
	logLevel string
	envFile  string
	timeout  time.Duration
	cfg      chatprobe.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "chatprobe <message> [user_id]",
		Short: "Send one message to the local chat service and print the agent and response",
		Long: fmt.Sprintf(`Send one message to %s and print the answering agent and the
first %d characters of its response.

The user id defaults to %s.`, chatprobe.DefaultEndpoint, chatprobe.ResponsePreviewLimit, chatprobe.DefaultUserID),
		Args:          messageArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts, args)
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default CHATPROBE_LOG_LEVEL or warn)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "timeout for the chat request (default CHATPROBE_TIMEOUT, 0 means none)")

	root.AddCommand(newScenarioCmd(opts))
	root.AddCommand(newFixtureCmd())

	return root
}

func messageArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf(`usage: chatprobe "<message>" [user_id]`)
	}

	return nil
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	envErr := chatprobe.LoadEnvFile(o.envFile)

	o.cfg = chatprobe.LoadConfig()

	level := o.logLevel
	if level == "" {
		level = o.cfg.LogLevel
	}

	logger, err := newLogger(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	switch {
	case envErr == nil:
		logger.Debug().Str("path", o.envFile).Msg("env file loaded")
	case chatprobe.IsMissingEnvFile(envErr):
		logger.Debug().Str("path", o.envFile).Msg("env file not found, using process environment")
	default:
		logger.Warn().Err(envErr).Msg("env file ignored")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(logger.WithContext(ctx))

	return nil
}

func resolveTimeout(cmd *cobra.Command, flagValue, fallback time.Duration) time.Duration {
	if cmd.Flags().Changed("timeout") {
		return flagValue
	}

	return fallback
}
