package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

type addHabitRequest struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
}

func (s *Server) handleAddHabit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addHabitRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	habit, err := s.uc.AddHabit(ctx, userIDFrom(ctx), req.Name, types.HabitFrequency(req.Frequency).Normalize())
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, habit)
}

func (s *Server) handleHabitCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	habit, err := s.uc.CheckInHabit(ctx, userIDFrom(ctx), id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, habit)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	if err := s.uc.DeleteHabit(ctx, userIDFrom(ctx), id); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
