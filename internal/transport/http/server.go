package http

import (
	"CryptoVault/internal/auth"
	"CryptoVault/internal/config/serverConfig"
	"CryptoVault/internal/service"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type Server struct {
	config        serverConfig.ServerConfig
	service       *service.Service
	authenticator *auth.Authenticator
	upgrader      websocket.Upgrader
}

func NewServer(config serverConfig.ServerConfig, svc *service.Service, authenticator *auth.Authenticator) *Server {
	return &Server{
		config:        config,
		service:       svc,
		authenticator: authenticator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 13,
			WriteBufferSize: 1 << 13,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Run() error {
	router := mux.NewRouter()

	router.HandleFunc("/api/auth/register", s.handleRegister).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", s.handleLogin).Methods("POST", "OPTIONS")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(s.authMiddleware))

	api.HandleFunc("/entries", s.handleCreateEntry).Methods("POST", "OPTIONS")
	api.HandleFunc("/entries", s.handleListEntries).Methods("GET", "OPTIONS")
	api.HandleFunc("/entries/{entryID}", s.handleGetEntry).Methods("GET", "OPTIONS")
	api.HandleFunc("/entries/{entryID}", s.handleDeleteEntry).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/entries/{entryID}/seal", s.handleSeal).Methods("POST", "OPTIONS")
	api.HandleFunc("/entries/{entryID}/objects", s.handleListObjects).Methods("GET", "OPTIONS")
	api.HandleFunc("/objects/{objectID}", s.handleOpen).Methods("GET", "OPTIONS")
	api.HandleFunc("/objects/{objectID}", s.handleDeleteObject).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/notifications", s.handleReceiveNotification).Methods("GET", "OPTIONS")
	api.HandleFunc("/notifications/{messageID}/ack", s.handleAckNotification).Methods("POST", "OPTIONS")

	// Websocket streaming runs through the same auth middleware; the token
	// arrives as a query parameter there.
	ws := router.PathPrefix("/ws").Subrouter()
	ws.Use(mux.MiddlewareFunc(s.authMiddleware))
	ws.HandleFunc("/entries/{entryID}/{direction}", s.handleStream)

	slog.Info("gateway listening", "address", s.config.Address)
	return http.ListenAndServe(s.config.Address, corsMiddleware(router))
}
