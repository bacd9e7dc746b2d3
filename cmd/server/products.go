package main

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/configurador/internal/catalog"
)

func (s *server) handleProductList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.catalog.List()
	if err != nil {
		s.log.Error().Err(err).Msg("list products")
		writeError(w, http.StatusInternalServerError, "no se pudieron cargar los productos")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *server) handleProductGet(w http.ResponseWriter, r *http.Request) {
	product, err := s.catalog.Get(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "producto no encontrado")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("get product")
		writeError(w, http.StatusInternalServerError, "no se pudo cargar el producto")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleProductPut upserts a catalog definition document. The body is the
// raw catalog JSON; the id in the URL wins over any id inside the document.
func (s *server) handleProductPut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo inválido")
		return
	}

	product, err := catalog.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "definición de producto inválida")
		return
	}
	product.ID = chi.URLParam(r, "id")
	if product.Name == "" {
		writeError(w, http.StatusBadRequest, "name es requerido")
		return
	}

	if err := s.catalog.Put(product); err != nil {
		s.log.Error().Err(err).Msg("upsert product")
		writeError(w, http.StatusInternalServerError, "no se pudo guardar el producto")
		return
	}

	writeJSON(w, http.StatusOK, product)
}
