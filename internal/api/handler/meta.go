package handler

import (
	"net/http"

	"github.com/dancojocaru2000/ttt-server/internal/api/response"
	"github.com/dancojocaru2000/ttt-server/internal/services/account"
)

// MetaHandler handles metadata endpoints
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// NickRegex handles GET /api/meta/nickRegex
func (h *MetaHandler) NickRegex(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.NickRegexResponse{
		Regex: account.NickPattern,
	})
}
