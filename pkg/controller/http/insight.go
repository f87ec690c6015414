package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

type actionItemsResponse struct {
	ActionItems []model.ActionItem `json:"action_items"`
}

func (s *Server) handleActionItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.uc.ActionItems(ctx, userIDFrom(ctx))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	if items == nil {
		items = []model.ActionItem{}
	}
	respondJSON(ctx, w, http.StatusOK, actionItemsResponse{ActionItems: items})
}

type insightsResponse struct {
	Insights []model.Insight `json:"insights"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	insights, err := s.uc.Insights(ctx, userIDFrom(ctx))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	if insights == nil {
		insights = []model.Insight{}
	}
	respondJSON(ctx, w, http.StatusOK, insightsResponse{Insights: insights})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := s.uc.ProgressReport(ctx, userIDFrom(ctx))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, report)
}
