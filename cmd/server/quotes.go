package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/configurador/internal/configurator"
)

type quoteListItem struct {
	ID        int64   `json:"id"`
	CreatedAt string  `json:"createdAt"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Total     float64 `json:"total"`
}

// handleSessionQuote freezes a valid configuration as a saved quote. The
// breakdown is snapshotted as stored JSON; it is never recalculated when the
// quote is read back.
func (s *server) handleSessionQuote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	id := chi.URLParam(r, "id")
	var (
		quoteID int64
		result  configurator.Result
		saveErr error
	)
	found := s.sessions.with(id, func(sess *configurator.Session) {
		result = sess.Evaluate()
		if !result.IsValid {
			return
		}
		quoteID, saveErr = s.insertQuote(sess, body.Title, body.Notes, result)
	})
	if !found {
		writeError(w, http.StatusNotFound, "sesión no encontrada")
		return
	}
	if !result.IsValid {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "la configuración no está completa",
			"errors": result.Errors,
		})
		return
	}
	if saveErr != nil {
		s.log.Error().Err(saveErr).Msg("save quote")
		writeError(w, http.StatusInternalServerError, "no se pudo guardar la cotización")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": quoteID, "total": result.Breakdown.Total})
}

func (s *server) insertQuote(sess *configurator.Session, title, notes string, result configurator.Result) (int64, error) {
	state := sess.State()

	configJSON, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("marshal configuration: %w", err)
	}
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return 0, fmt.Errorf("marshal breakdown: %w", err)
	}
	totalsJSON, err := json.Marshal(map[string]float64{"total": result.Breakdown.Total})
	if err != nil {
		return 0, fmt.Errorf("marshal totals: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO quotes (product_id, title, notes, config_json, breakdown_json, totals_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, state.ProductID, title, notes, string(configJSON), string(breakdownJSON), string(totalsJSON))
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	return res.LastInsertId()
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(query)
	if err != nil {
		s.log.Error().Err(err).Msg("list quotes")
		writeError(w, http.StatusInternalServerError, "no se pudieron cargar las cotizaciones")
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) listQuotes(query string) ([]quoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			id,
			created_at,
			product_id,
			COALESCE(title, ''),
			totals_json
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]quoteListItem, 0)
	for rows.Next() {
		var item quoteListItem
		var totalsJSON string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.ProductID, &item.Title, &totalsJSON); err != nil {
			return nil, err
		}
		item.Total = extractTotalFromJSON(totalsJSON)
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

func extractTotalFromJSON(totalsJSON string) float64 {
	var values map[string]float64
	if err := json.Unmarshal([]byte(totalsJSON), &values); err != nil {
		return 0
	}

	for _, key := range []string{"total", "grand_total", "final_total"} {
		if total, ok := values[key]; ok {
			return total
		}
	}

	return 0
}
