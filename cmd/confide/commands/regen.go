package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/domain"
)

// regen: rotate the key pair. Messages encrypted for the old key become
// permanently unreadable; the command says so before anything else.
func regenCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "regen",
		Short: "Regenerate your encryption keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("regenerating keys makes all existing message history unreadable; re-run with --yes to confirm")
			}
			_, fp, err := wire.Identity.Regenerate(cmd.Context(), passphrase, domain.UserID(user))
			if err != nil {
				return err
			}
			fmt.Printf("Keys regenerated.\nNew fingerprint: %s\n", fp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm that old history becomes unreadable")
	return cmd
}
