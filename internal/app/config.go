package app

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string       // config directory, e.g. $HOME/.confide
	RelayURL string       // relay base URL, e.g. http://127.0.0.1:8080
	HTTP     *http.Client // optional; defaults to http.DefaultClient
}

// FromEnv fills unset fields from the environment, loading a .env file from
// the working directory when present. Flags win over the environment.
func (c Config) FromEnv() Config {
	_ = godotenv.Load()
	if c.RelayURL == "" {
		c.RelayURL = os.Getenv("CONFIDE_RELAY_URL")
	}
	if c.Home == "" {
		c.Home = os.Getenv("CONFIDE_HOME")
	}
	return c
}
