package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/metalagman/chatprobe"
	"github.com/spf13/cobra"
)

func newFixtureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixture <message> [user_id]",
		Short: "Print the request payload that would be sent, without sending it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := chatprobe.DefaultUserID
			if len(args) > 1 && args[1] != "" {
				userID = args[1]
			}

			doc, err := chatprobe.BuildPayload(userID, args[0])
			if err != nil {
				return err
			}

			var b bytes.Buffer
			if err := json.Indent(&b, doc, "", "  "); err != nil {
				return fmt.Errorf("indent payload: %w", err)
			}

			b.WriteByte('\n')

			_, err = cmd.OutOrStdout().Write(b.Bytes())

			return err
		},
	}
}
