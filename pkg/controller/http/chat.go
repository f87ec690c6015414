package http

import (
	"net/http"

	"github.com/secmon-lab/mnemosyne/pkg/utils/errutil"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	reply, err := s.uc.Chat(ctx, userIDFrom(ctx), req.Message)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, chatResponse{Response: reply})
}
