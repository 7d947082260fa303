package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dm",
		Short: "Direct message commands",
	}

	cmd.AddCommand(newDMSendCmd())
	cmd.AddCommand(newDMInboxCmd())
	cmd.AddCommand(newDMReadCmd())

	return cmd
}

func newDMSendCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "send <content>",
		Short: "Send a direct message to a player (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"recipient": to,
				"content":   args[0],
			}
			var result DirectMessage

			if err := client.Post("/api/dm", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient username (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newDMInboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "Show your direct messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DirectMessageList

			if err := client.Get("/api/dm", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDMReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a direct message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/dm/%s/read", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(map[string]string{"status": "read"})
			return nil
		},
	}
}
