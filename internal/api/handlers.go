package api

import (
	"context"
	"net/http"
	"time"

	"ancine-api/internal/catalog"

	"github.com/go-chi/chi/v5"
)

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, res *catalog.Resource) {
	envelope, err := s.runPagedQuery(r.Context(), res, r.URL.Query())
	if err != nil {
		writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

// handleGenericTable serves flat access to the exhibition tables. The table
// name is resolved against the family allow-list, never interpolated.
func (s *Server) handleGenericTable(w http.ResponseWriter, r *http.Request) {
	res, err := s.exhibition.Resolve(chi.URLParam(r, "table"))
	if err != nil {
		writeError(r, w, err)
		return
	}
	s.servePage(w, r, res)
}

func (s *Server) handleSalaSearch(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, s.salas)
}

func (s *Server) handleObraSearch(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, s.obras)
}

func (s *Server) handleLancamentoSearch(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, s.lancamentos)
}

func (s *Server) handleFilmagem(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, s.filmagem)
}

// handleFilmagemByPais lists productions from one country, taken from the
// path instead of a query filter. The response keeps the historical shape of
// this endpoint: a plain list with its total, no cursor envelope.
func (s *Server) handleFilmagemByPais(w http.ResponseWriter, r *http.Request) {
	pais := chi.URLParam(r, "pais")
	params := r.URL.Query()
	params.Set("pais_origem", pais)

	envelope, err := s.runPagedQuery(r.Context(), s.filmagem, params)
	if err != nil {
		writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":        envelope.Data,
		"total":       len(envelope.Data),
		"pais_origem": pais,
	})
}

// handleFilmagemStats describes the filterable fields of the foreign-filming
// resource.
func (s *Server) handleFilmagemStats(w http.ResponseWriter, r *http.Request) {
	filters := make([]string, 0, len(s.filmagem.Columns))
	for _, col := range s.filmagem.Columns {
		if col.PrimaryKey {
			continue
		}
		filters = append(filters, col.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "estatísticas agregadas ainda não disponíveis",
		"available_filters": filters,
	})
}

func (s *Server) handleSalasPorUF(w http.ResponseWriter, r *http.Request) {
	records, err := s.runStatsFunction(r.Context(), "salas", "contar_salas_por_uf")
	if err != nil {
		writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleObrasPorTipo(w http.ResponseWriter, r *http.Request) {
	records, err := s.runStatsFunction(r.Context(), "obras", "contar_obras_por_tipo")
	if err != nil {
		writeError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.exec.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
