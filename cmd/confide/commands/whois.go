package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/crypto"
	"confide/internal/domain"
)

// whois <peer>: resolve a peer in the directory and print their fingerprint
// for out-of-band verification.
func whoisCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "whois <peer>",
		Short: "Look up a peer's public key fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.UserID(args[0])

			resolve := wire.Directory.Resolve
			if refresh {
				resolve = wire.Directory.Refresh
			}
			profile, err := resolve(cmd.Context(), peer)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\nFingerprint: %s\n",
				profile.UserID, profile.DisplayName,
				crypto.Fingerprint(profile.PublicKey.Slice()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the local cache")
	return cmd
}
