package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type FastSaleHandler struct {
	service usecase.FastSaleService
	log     *zap.Logger
}

func NewFastSaleHandler(service usecase.FastSaleService, log *zap.Logger) *FastSaleHandler {
	return &FastSaleHandler{
		service: service,
		log:     log.With(zap.String("handler", "fast_sale")),
	}
}

// SellTickets handles POST /api/sales/fast
func (h *FastSaleHandler) SellTickets(w http.ResponseWriter, r *http.Request) {
	var req request.FastSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	sale, err := h.service.SellTickets(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "sell tickets")
		return
	}

	utils.ResponseCreated(w, "Tickets sold successfully", sale)
}
