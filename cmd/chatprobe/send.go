package main

import (
	"fmt"

	"github.com/metalagman/chatprobe"
	"github.com/spf13/cobra"
)

func runSend(cmd *cobra.Command, opts *rootOptions, args []string) error {
	message := args[0]

	userID := chatprobe.DefaultUserID
	if len(args) > 1 && args[1] != "" {
		userID = args[1]
	}

	d, err := chatprobe.NewHTTPDispatcher(
		endpoint,
		chatprobe.WithTimeout(resolveTimeout(cmd, opts.timeout, opts.cfg.Timeout)),
	)
	if err != nil {
		return err
	}

	p, err := chatprobe.NewProbe(d)
	if err != nil {
		return err
	}

	res := p.Send(cmd.Context(), userID, message)

	if _, err := res.WriteTo(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	return nil
}
