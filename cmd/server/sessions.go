package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Simplici0/configurador/internal/catalog"
	"github.com/Simplici0/configurador/internal/configurator"
	"github.com/Simplici0/configurador/internal/measure"
)

// sessionRegistry holds the in-flight configuration sessions. A session has
// exactly one logical editor; the registry mutex only serializes the HTTP
// surface, it is not a multi-editor feature.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*configurator.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: map[string]*configurator.Session{}}
}

func (r *sessionRegistry) create(p *catalog.Product) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.sessions[id] = configurator.NewSession(p)
	return id
}

// with runs fn while holding the registry lock. Returns false when the
// session id is unknown.
func (r *sessionRegistry) with(id string, fn func(*configurator.Session)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

type sessionView struct {
	SessionID string              `json:"sessionId"`
	State     configurator.State  `json:"state"`
	Result    configurator.Result `json:"result"`
	Area      measure.Result      `json:"area"`
}

func newSessionView(id string, sess *configurator.Session) sessionView {
	return sessionView{
		SessionID: id,
		State:     sess.State(),
		Result:    sess.Evaluate(),
		Area:      sess.Area(),
	}
}

func (s *server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId es requerido")
		return
	}

	product, err := s.catalog.Get(body.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("load product for session")
		writeError(w, http.StatusInternalServerError, "no se pudo cargar el producto")
		return
	}

	id := s.sessions.create(product)
	var view sessionView
	s.sessions.with(id, func(sess *configurator.Session) {
		view = newSessionView(id, sess)
	})
	writeJSON(w, http.StatusCreated, view)
}

func (s *server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, r, func(sess *configurator.Session) {})
}

func (s *server) handleSessionSelection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Key == "" {
		writeError(w, http.StatusBadRequest, "key es requerido")
		return
	}
	s.respondSession(w, r, func(sess *configurator.Session) {
		sess.SetSelection(body.Key, body.Value)
	})
}

func (s *server) handleSessionMeasurement(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Key == "" {
		writeError(w, http.StatusBadRequest, "key es requerido")
		return
	}
	s.respondSession(w, r, func(sess *configurator.Session) {
		sess.SetMeasurement(body.Key, body.Value)
	})
}

func (s *server) handleSessionFiles(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Files []configurator.UploadedFile `json:"files"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.respondSession(w, r, func(sess *configurator.Session) {
		sess.SetFiles(body.Files)
	})
}

func (s *server) handleSessionSpecialRequests(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}
	s.respondSession(w, r, func(sess *configurator.Session) {
		sess.SetSpecialRequests(body.Text)
	})
}

// respondSession applies the mutation and answers with the fresh session
// view, or a 404 for unknown session ids.
func (s *server) respondSession(w http.ResponseWriter, r *http.Request, mutate func(*configurator.Session)) {
	id := chi.URLParam(r, "id")
	var view sessionView
	found := s.sessions.with(id, func(sess *configurator.Session) {
		mutate(sess)
		view = newSessionView(id, sess)
	})
	if !found {
		writeError(w, http.StatusNotFound, "sesión no encontrada")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
