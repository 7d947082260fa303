package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Room message commands",
	}

	cmd.AddCommand(newMsgSendCmd())
	cmd.AddCommand(newMsgHistoryCmd())
	cmd.AddCommand(newMsgWatchCmd())

	return cmd
}

func newMsgSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <code> <content>",
		Short: "Send a message to a room",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"content": args[1]}
			var result Message

			if err := client.Post(fmt.Sprintf("/api/rooms/%s/messages", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMsgHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <code>",
		Short: "Show the latest messages in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageList

			if err := client.Get(fmt.Sprintf("/api/rooms/%s/messages", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMsgWatchCmd() *cobra.Command {
	var after int64

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Follow a room's messages",
		Long: `Print the room's new messages as they arrive.

Starts from the latest history page unless --after is given, then polls the
stream endpoint on an interval. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], after)
		},
	}

	cmd.Flags().Int64Var(&after, "after", -1, "Start after this message ID (default: latest history)")

	return cmd
}

// watchPollInterval paces the watch loop; the stream endpoint answers
// immediately whether or not anything is new.
const watchPollInterval = 2 * time.Second

func watchRoom(code string, after int64) error {
	out := NewOutput(cfg.Output)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	cursor := after
	if cursor < 0 {
		var history MessageList
		if err := client.Get(fmt.Sprintf("/api/rooms/%s/messages", code), &history); err != nil {
			return err
		}
		out.Print(history)
		cursor = history.LastID
	}

	for {
		var page MessageList
		err := client.Get(fmt.Sprintf("/api/rooms/%s/stream?after=%d", code, cursor), &page)
		if err != nil {
			// Transient failures should not kill the watch
			out.PrintError(err)
		} else if len(page.Messages) > 0 {
			out.Print(page)
			cursor = page.LastID
		}

		select {
		case <-sigCh:
			return nil
		case <-time.After(watchPollInterval):
		}
	}
}
