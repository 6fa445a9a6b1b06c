package relayserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"confide/internal/domain"
)

// Server exposes the relay over HTTP and WebSocket.
type Server struct {
	storage  Storage
	log      *logrus.Logger
	upgrader *websocket.Upgrader

	mu        sync.Mutex
	connected map[domain.UserID]*websocket.Conn
}

// New returns a relay server over the given storage.
func New(storage Storage, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		storage:   storage,
		log:       log,
		connected: make(map[domain.UserID]*websocket.Conn),
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router wires all relay routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/key/{user}", s.handleUpdateKey).Methods(http.MethodPost)
	r.HandleFunc("/key/{user}", s.handleGetProfile).Methods(http.MethodGet)
	r.HandleFunc("/msg/{user}", s.handleSendEnvelope).Methods(http.MethodPost)
	r.HandleFunc("/msg/{user}", s.handleGetEnvelopes).Methods(http.MethodGet)
	r.HandleFunc("/msg/{user}/ack", s.handleAck).Methods(http.MethodPost)
	r.HandleFunc("/sent/{user}/{peer}", s.handleGetSent).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket)
	return r
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var profile domain.AccountProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if profile.UserID == "" || profile.PublicKey.IsZero() {
		http.Error(w, "user_id and public_key are required", http.StatusBadRequest)
		return
	}
	if err := s.storage.SaveProfile(r.Context(), profile); err != nil {
		s.log.WithError(err).Error("save profile")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	s.log.WithField("user", profile.UserID).Info("account registered")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateKey(w http.ResponseWriter, r *http.Request) {
	user := domain.UserID(mux.Vars(r)["user"])

	var body struct {
		PublicKey domain.PublicKey `json:"public_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.PublicKey.IsZero() {
		http.Error(w, "public_key is required", http.StatusBadRequest)
		return
	}

	profile, ok, err := s.storage.LoadProfile(r.Context(), user)
	if err != nil {
		s.log.WithError(err).Error("load profile")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}

	profile.PublicKey = body.PublicKey
	if err := s.storage.SaveProfile(r.Context(), profile); err != nil {
		s.log.WithError(err).Error("save rotated key")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	s.log.WithField("user", user).Info("public key rotated")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user := domain.UserID(mux.Vars(r)["user"])

	profile, ok, err := s.storage.LoadProfile(r.Context(), user)
	if err != nil {
		s.log.WithError(err).Error("load profile")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}

func (s *Server) handleSendEnvelope(w http.ResponseWriter, r *http.Request) {
	to := domain.UserID(mux.Vars(r)["user"])

	var env domain.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env.To = to
	if env.From == "" || env.Ciphertext == "" || env.Nonce == "" {
		http.Error(w, "from, ciphertext and nonce are required", http.StatusBadRequest)
		return
	}
	if env.From == env.To {
		http.Error(w, "cannot message yourself", http.StatusUnprocessableEntity)
		return
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	if env.Timestamp == 0 {
		env.Timestamp = time.Now().Unix()
	}

	if _, ok, err := s.storage.LoadProfile(r.Context(), to); err != nil {
		s.log.WithError(err).Error("load receiver profile")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	} else if !ok {
		http.Error(w, "unknown receiver", http.StatusNotFound)
		return
	}

	// Sender copy first, so re-sync sees the message even if delivery below
	// fails and the client retries.
	if err := s.storage.AppendSent(r.Context(), env); err != nil {
		s.log.WithError(err).Error("append sent log")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	if s.deliverLive(env) {
		s.log.WithFields(logrus.Fields{"from": env.From, "to": env.To}).Debug("delivered live")
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := s.storage.EnqueueEnvelope(r.Context(), env); err != nil {
		s.log.WithError(err).Error("enqueue envelope")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	s.log.WithFields(logrus.Fields{"from": env.From, "to": env.To}).Debug("queued for offline receiver")
	w.WriteHeader(http.StatusOK)
}

// deliverLive pushes env to a connected receiver. A write failure drops the
// connection; the caller then queues the envelope instead.
func (s *Server) deliverLive(env domain.Envelope) bool {
	s.mu.Lock()
	conn, online := s.connected[env.To]
	s.mu.Unlock()
	if !online {
		return false
	}

	data, err := json.Marshal(env)
	if err != nil {
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.log.WithError(err).WithField("user", env.To).Warn("live delivery failed")
		s.dropConnection(env.To, conn)
		return false
	}
	return true
}

func (s *Server) handleGetEnvelopes(w http.ResponseWriter, r *http.Request) {
	user := domain.UserID(mux.Vars(r)["user"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	envs, err := s.storage.PeekEnvelopes(r.Context(), user, limit)
	if err != nil {
		s.log.WithError(err).Error("peek envelopes")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envs)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	user := domain.UserID(mux.Vars(r)["user"])

	var body struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Count < 0 {
		http.Error(w, "count must be non-negative", http.StatusBadRequest)
		return
	}
	if err := s.storage.DropEnvelopes(r.Context(), user, body.Count); err != nil {
		s.log.WithError(err).Error("drop envelopes")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetSent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	user := domain.UserID(vars["user"])
	peer := domain.UserID(vars["peer"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	envs, err := s.storage.ListSent(r.Context(), user, peer, limit)
	if err != nil {
		s.log.WithError(err).Error("list sent envelopes")
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envs)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := domain.UserID(r.URL.Query().Get("user"))
	if user == "" {
		http.Error(w, "user query parameter is required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("websocket upgrade")
		return
	}

	s.mu.Lock()
	if old, ok := s.connected[user]; ok {
		_ = old.Close()
	}
	s.connected[user] = conn
	s.mu.Unlock()
	s.log.WithField("user", user).Info("user connected")

	// Flush the queued backlog down the fresh connection. Queue entries stay
	// until the client acks over HTTP, same as a plain fetch.
	if backlog, err := s.storage.PeekEnvelopes(r.Context(), user, 0); err == nil {
		for _, env := range backlog {
			data, err := json.Marshal(env)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				break
			}
		}
	}

	// The read loop only watches for the peer closing; clients send nothing
	// over this channel.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.dropConnection(user, conn)
	s.log.WithField("user", user).Info("user disconnected")
}

func (s *Server) dropConnection(user domain.UserID, conn *websocket.Conn) {
	s.mu.Lock()
	if s.connected[user] == conn {
		delete(s.connected, user)
	}
	s.mu.Unlock()
	_ = conn.Close()
}
