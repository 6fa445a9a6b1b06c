package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"confide/internal/crypto"
	"confide/internal/domain"
	messagesvc "confide/internal/services/message"
)

// watch: tail live messages over the relay's WebSocket stream, decrypting
// as they arrive. Queued backlog is flushed down the same stream first.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream and decrypt messages as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePassphrase(); err != nil {
				return err
			}
			if err := requireUser(); err != nil {
				return err
			}
			ctx := cmd.Context()

			pair, err := wire.Keys.LoadKeyPair(passphrase)
			if err != nil {
				return err
			}

			envs, err := wire.Stream.Subscribe(ctx, domain.UserID(user))
			if err != nil {
				return err
			}
			fmt.Println("watching... (ctrl-c to stop)")

			for env := range envs {
				sender, err := wire.Directory.Resolve(ctx, env.From)
				if err != nil {
					fmt.Printf("[%s] could not resolve sender: %v\n", env.From, err)
					continue
				}
				msg := domain.Message{
					ID: env.ID, From: env.From, To: env.To, Timestamp: env.Timestamp,
				}
				plain, err := crypto.DecryptMessage(pair, sender.PublicKey, env.EncryptedEnvelope, false)
				switch {
				case err == nil:
					msg.Body = string(plain)
				case errors.Is(err, crypto.ErrDecryptionFailed):
					msg.Body = messagesvc.UnreadablePlaceholder
					msg.Unreadable = true
				default:
					return err
				}
				printMessage(msg)
			}
			return nil
		},
	}
}
