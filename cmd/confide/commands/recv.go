package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/domain"
)

// recv: fetch and decrypt queued messages.
func recvCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recv",
		Short: "Fetch and decrypt your queued messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}

			msgs, err := wire.Messages.Receive(cmd.Context(), passphrase, domain.UserID(user), limit)
			if err != nil {
				return err
			}
			for _, m := range msgs {
				printMessage(m)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "max messages to fetch (0 = all)")
	return cmd
}

func printMessage(m domain.Message) {
	if m.Unreadable {
		fmt.Printf("[%s] ⚠ %s\n", m.From, m.Body)
		return
	}
	fmt.Printf("[%s] %s\n", m.From, m.Body)
}
