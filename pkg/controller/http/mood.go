package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

type moodRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleMoodCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req moodRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	entry, err := s.uc.MoodCheck(ctx, userIDFrom(ctx), req.Text)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, entry)
}

type reflectionRequest struct {
	Text string   `json:"text"`
	Kind string   `json:"kind"`
	Tags []string `json:"tags"`
}

func (s *Server) handleAddReflection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reflectionRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	kind := types.ReflectionKind(req.Kind).Normalize()
	reflection, err := s.uc.AddReflection(ctx, userIDFrom(ctx), req.Text, kind, req.Tags)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, reflection)
}
