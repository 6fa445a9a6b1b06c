package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"confide/internal/app"
)

var (
	home       string
	passphrase string
	relayURL   string
	user       string

	wire *app.Wire
)

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:   "confide",
		Short: "End-to-end encrypted private messenger CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config{Home: home, RelayURL: relayURL}.FromEnv()
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".confide")
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			var err error
			wire, err = app.NewWire(cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.confide)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the local keys")
	root.PersistentFlags().StringVar(&relayURL, "relay", "", "relay base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&user, "user", "", "your user id on the relay")

	root.AddCommand(
		initCmd(),
		regenCmd(),
		fingerprintCmd(),
		whoisCmd(),
		sendCmd(),
		recvCmd(),
		resyncCmd(),
		watchCmd(),
	)
	return root.Execute()
}

// requirePassphrase guards commands that touch the sealed key store.
func requirePassphrase() error {
	if passphrase == "" {
		return errMissingFlag("passphrase (-p)")
	}
	return nil
}

func requireUser() error {
	if user == "" {
		return errMissingFlag("--user")
	}
	return nil
}

type errMissingFlag string

func (e errMissingFlag) Error() string { return string(e) + " required" }
