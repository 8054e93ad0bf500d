package http

import (
	"CryptoVault/internal/domain"
	myErrors "CryptoVault/internal/errors"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.service.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Algorithm   string `json:"algorithm"`
		Mode        string `json:"mode"`
		Padding     string `json:"padding"`
		KeyHex      string `json:"key_hex"`
		IvHex       string `json:"iv_hex"`
		SegmentSize int    `json:"segment_size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entryID, err := s.service.CreateEntry(r.Context(), domain.VaultEntry{
		OwnerID:     clientID,
		Name:        req.Name,
		Algorithm:   req.Algorithm,
		Mode:        req.Mode,
		Padding:     req.Padding,
		KeyHex:      req.KeyHex,
		IvHex:       req.IvHex,
		SegmentSize: req.SegmentSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"entry_id": entryID})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := s.service.ListEntries(r.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse(e))
	}
	writeJSON(w, out)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entry, err := s.service.GetEntry(r.Context(), clientID, mux.Vars(r)["entryID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, entryResponse(entry))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.service.DeleteEntry(r.Context(), clientID, mux.Vars(r)["entryID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSeal(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Label   string `json:"label"`
		Payload string `json:"payload"` // base64
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	payload, err := base64.StdEncoding.DecodeString(req.Payload)
	if err != nil {
		http.Error(w, "payload must be base64", http.StatusBadRequest)
		return
	}

	objectID, err := s.service.Seal(r.Context(), clientID, mux.Vars(r)["entryID"], req.Label, payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{"object_id": objectID})
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	payload, err := s.service.Open(r.Context(), clientID, mux.Vars(r)["objectID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]string{
		"payload": base64.StdEncoding.EncodeToString(payload),
	})
}

func (s *Server) handleDeleteObject(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.service.DeleteObject(r.Context(), clientID, mux.Vars(r)["objectID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListObjects(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	objects, err := s.service.ListObjects(r.Context(), clientID, mux.Vars(r)["entryID"])
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]map[string]interface{}, 0, len(objects))
	for _, o := range objects {
		out = append(out, map[string]interface{}{
			"object_id":  o.ObjectID,
			"entry_id":   o.EntryID,
			"label":      o.Label,
			"size":       o.Size,
			"created_at": o.CreatedAt,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleReceiveNotification(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := s.service.ReceiveNotification(r.Context(), clientID)
	if errors.Is(err, nats.ErrMsgNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, note)
}

func (s *Server) handleAckNotification(w http.ResponseWriter, r *http.Request) {
	if _, err := getClientID(r.Context()); err != nil {
		writeError(w, err)
		return
	}

	if err := s.service.AckNotification(mux.Vars(r)["messageID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStream pipes binary websocket messages through a single feeder.
// Every received chunk is transformed and echoed back; an empty final
// message flushes the tail and closes the stream.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	clientID, err := getClientID(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	vars := mux.Vars(r)
	direction := vars["direction"]
	if direction != "encrypt" && direction != "decrypt" {
		http.Error(w, "direction must be encrypt or decrypt", http.StatusBadRequest)
		return
	}

	feeder, err := s.service.NewStream(r.Context(), clientID, vars["entryID"], direction == "encrypt")
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		if len(data) == 0 {
			out, err := feeder.Final()
			if err != nil {
				writeStreamError(conn, err)
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
				return
			}
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}

		out, err := feeder.Feed(data)
		if err != nil {
			writeStreamError(conn, err)
			return
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, out); err != nil {
			return
		}
	}
}

func writeStreamError(conn *websocket.Conn, err error) {
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
}

func entryResponse(e domain.VaultEntry) map[string]interface{} {
	return map[string]interface{}{
		"entry_id":     e.EntryID,
		"name":         e.Name,
		"algorithm":    e.Algorithm,
		"mode":         e.Mode,
		"padding":      e.Padding,
		"segment_size": e.SegmentSize,
		"created_at":   e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, myErrors.ErrUserExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, myErrors.ErrUserNotFound), errors.Is(err, myErrors.ErrInvalidPassword):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, myErrors.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, myErrors.ErrEntryNotFound), errors.Is(err, myErrors.ErrObjectNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
