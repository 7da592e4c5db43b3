package handler

import (
	"chatapp/backend/internal/auth"
	"chatapp/backend/internal/chathub"
	"chatapp/backend/internal/notify"
	"chatapp/backend/internal/storage"
)

// Handler carries the dependencies of the HTTP layer.
type Handler struct {
	Hub           *chathub.ManagerService
	Relay         *chathub.RelayService
	Storage       storage.Storage
	Authenticator *auth.ConnectionAuthenticator
	Notifier      *notify.Service
}

func NewHandler(hub *chathub.ManagerService, relay *chathub.RelayService, s storage.Storage, a *auth.ConnectionAuthenticator, n *notify.Service) *Handler {
	return &Handler{
		Hub:           hub,
		Relay:         relay,
		Storage:       s,
		Authenticator: a,
		Notifier:      n,
	}
}
