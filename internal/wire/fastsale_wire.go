package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/pkg/middleware"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFastSale(
	r chi.Router,
	fastSaleHandler *adaptor.FastSaleHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Counter sales are an operator feature, gated like admin routes.
	r.Route("/api/sales", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.APIKey, log))

		r.Post("/fast", fastSaleHandler.SellTickets)
	})
}
