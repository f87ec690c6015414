package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := s.uc.GetMemory(ctx, userIDFrom(ctx))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, doc)
}

func (s *Server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.ClearMemory(ctx, userIDFrom(ctx)); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bundle, err := s.uc.ExportData(ctx, userIDFrom(ctx))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, bundle)
}
