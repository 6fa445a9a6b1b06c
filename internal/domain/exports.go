package domain

import (
	interfaces "confide/internal/domain/interfaces"
	types "confide/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID            = types.UserID
	Fingerprint       = types.Fingerprint
	PublicKey         = types.PublicKey
	PrivateKey        = types.PrivateKey
	KeyPair           = types.KeyPair
	Role              = types.Role
	SessionKeys       = types.SessionKeys
	EncryptedEnvelope = types.EncryptedEnvelope
	Envelope          = types.Envelope
	AccountProfile    = types.AccountProfile
	Message           = types.Message
)

// Role constants re-exported alongside the alias.
const (
	RoleInitiator = types.RoleInitiator
	RoleResponder = types.RoleResponder
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService  = interfaces.IdentityService
	DirectoryService = interfaces.DirectoryService
	MessageService   = interfaces.MessageService
	RelayClient      = interfaces.RelayClient
	RelayStream      = interfaces.RelayStream
	KeyStore         = interfaces.KeyStore
	DirectoryStore   = interfaces.DirectoryStore
	MessageStore     = interfaces.MessageStore
)
