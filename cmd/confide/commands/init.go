package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/domain"
)

// init <display name>: create the account, publish the public key and seal
// the private key locally.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <display name>",
		Short: "Create your account and generate encryption keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}
			_, fp, err := wire.Identity.Register(
				cmd.Context(), passphrase, domain.UserID(user), args[0],
			)
			if err != nil {
				return err
			}
			fmt.Printf("Account created.\nFingerprint: %s\n", fp)
			return nil
		},
	}
}
