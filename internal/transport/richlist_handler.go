// Package transport exposes the HTTP API of the rich list.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/model"
	"github.com/goodnatureofminers/richlist7000-backend/internal/richlist/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type RichListService interface {
	Get(ctx context.Context, assetID string) ([]model.AddressBalance, error)
}

// RichListHandler serves rich list queries.
type RichListHandler struct {
	richList RichListService
	logger   *zap.Logger
}

// NewRichListHandler returns a RichListHandler instance.
func NewRichListHandler(richList RichListService, logger *zap.Logger) *RichListHandler {
	return &RichListHandler{richList: richList, logger: logger.Named("http")}
}

// Register adds the handler routes to r.
func (h *RichListHandler) Register(r *mux.Router) {
	r.HandleFunc("/v1/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/v1/richlist/{assetId}", h.Get).Methods(http.MethodGet)
}

// Health reports server health.
func (h *RichListHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Get writes the rich list of the asset named in the path.
func (h *RichListHandler) Get(w http.ResponseWriter, r *http.Request) {
	assetID := mux.Vars(r)["assetId"]
	balances, err := h.richList.Get(r.Context(), assetID)
	switch {
	case errors.Is(err, service.ErrUnknownAsset):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error("get rich list", zap.String("asset_id", assetID), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if balances == nil {
		balances = []model.AddressBalance{}
	}
	h.writeJSON(w, http.StatusOK, balances)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *RichListHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
