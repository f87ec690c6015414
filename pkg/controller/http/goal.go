package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

type addGoalRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	goal, err := s.uc.AddGoal(ctx, userIDFrom(ctx), req.Text, req.Category)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, goal)
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	goal, err := s.uc.CompleteGoal(ctx, userIDFrom(ctx), id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, goal)
}

type goalProgressRequest struct {
	Progress int `json:"progress"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	var req goalProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	goal, err := s.uc.UpdateGoalProgress(ctx, userIDFrom(ctx), id, req.Progress)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	if err := s.uc.DeleteGoal(ctx, userIDFrom(ctx), id); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
