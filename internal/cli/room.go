package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomListCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var playerA, playerB string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room for two players (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_a": playerA,
				"player_b": playerB,
			}
			var result Room

			if err := client.Post("/api/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerA, "player-a", "", "First player username (required)")
	cmd.Flags().StringVar(&playerB, "player-b", "", "Second player username (required)")
	_ = cmd.MarkFlagRequired("player-a")
	_ = cmd.MarkFlagRequired("player-b")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Get(fmt.Sprintf("/api/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rooms (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList

			if err := client.Get("/api/rooms", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
