package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/domain"
)

// resync <peer>: re-download and decrypt our own sent messages for one
// conversation. Works only on a device that still holds the key material
// the messages were encrypted with.
func resyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resync <peer>",
		Short: "Rebuild local history of messages you sent to a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}
			peer := domain.UserID(args[0])

			msgs, err := wire.Messages.ResyncSent(cmd.Context(), passphrase, domain.UserID(user), peer)
			if err != nil {
				return err
			}
			fmt.Printf("resynced %d messages\n", len(msgs))
			for _, m := range msgs {
				printMessage(m)
			}
			return nil
		},
	}
}
