package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"confide/internal/domain"
	"confide/internal/relay"
	directorysvc "confide/internal/services/directory"
	identitysvc "confide/internal/services/identity"
	messagesvc "confide/internal/services/message"
	"confide/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Keys      domain.KeyStore
	Identity  domain.IdentityService
	Directory domain.DirectoryService
	Messages  domain.MessageService
	Relay     domain.RelayClient
	Stream    domain.RelayStream
	HTTP      *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// File-based stores
	keyStore := store.NewKeyFileStore(cfg.Home)
	directoryStore := store.NewDirectoryFileStore(cfg.Home)
	messageStore := store.NewMessageFileStore(cfg.Home)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// Relay clients (HTTP for request/response, WebSocket for live tail)
	rc := relay.NewHTTP(cfg.RelayURL, httpClient)
	stream := relay.NewWS(cfg.RelayURL, logrus.StandardLogger())

	// High-level services
	identitySvc := identitysvc.New(keyStore, rc)
	directorySvc := directorysvc.New(directoryStore, rc)
	messageSvc := messagesvc.New(keyStore, directorySvc, messageStore, rc)

	return &Wire{
		Keys:      keyStore,
		Identity:  identitySvc,
		Directory: directorySvc,
		Messages:  messageSvc,
		Relay:     rc,
		Stream:    stream,
		HTTP:      httpClient,
	}, nil
}
