package main

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Simplici0/configurador/internal/catalog"
	"github.com/Simplici0/configurador/internal/config"
	"github.com/Simplici0/configurador/internal/db"
	"github.com/Simplici0/configurador/internal/migrations"
	"github.com/Simplici0/configurador/internal/seed"
)

type server struct {
	auth     *authService
	db       *sql.DB
	catalog  *catalog.Store
	sessions *sessionRegistry
	log      zerolog.Logger
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			logger.Fatal().Err(err).Msg("failed to run database migrations")
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to run startup seed")
	}
	logger.Info().Int("inserts", stats.Inserts).Msg("startup seed done")

	srv := &server{
		auth:     newAuthService(database, cfg.SessionSecret),
		db:       database,
		catalog:  catalog.NewStore(database),
		sessions: newSessionRegistry(),
		log:      logger,
	}

	r := chi.NewRouter()
	r.Post("/login", srv.handleLogin)
	r.Post("/logout", srv.handleLogout)

	r.Get("/api/products", srv.handleProductList)
	r.Get("/api/products/{id}", srv.handleProductGet)
	r.With(srv.requireAdmin).Put("/api/products/{id}", srv.handleProductPut)

	r.Post("/api/sessions", srv.handleSessionCreate)
	r.Get("/api/sessions/{id}", srv.handleSessionGet)
	r.Post("/api/sessions/{id}/selection", srv.handleSessionSelection)
	r.Post("/api/sessions/{id}/measurement", srv.handleSessionMeasurement)
	r.Put("/api/sessions/{id}/files", srv.handleSessionFiles)
	r.Put("/api/sessions/{id}/special-requests", srv.handleSessionSpecialRequests)
	r.Post("/api/sessions/{id}/quote", srv.handleSessionQuote)

	r.Get("/api/quotes", srv.handleQuotesList)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	valid, err := s.auth.validateCredentials(body.Email, body.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("validate credentials")
		writeError(w, http.StatusInternalServerError, "error de autenticación")
		return
	}
	if !valid {
		writeError(w, http.StatusUnauthorized, "credenciales inválidas")
		return
	}

	s.auth.setSessionCookie(w, body.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
