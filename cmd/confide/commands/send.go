package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/domain"
)

// send <peer> <message>: encrypt and send a message to <peer>.
func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <peer> <message>",
		Short: "Encrypt and send a message to a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}
			peer := domain.UserID(args[0])
			msg := []byte(args[1])

			if err := wire.Messages.Send(cmd.Context(), passphrase, domain.UserID(user), peer, msg); err != nil {
				return err
			}
			fmt.Println("sent")
			return nil
		},
	}
}
