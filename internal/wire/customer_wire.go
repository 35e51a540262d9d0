package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/pkg/middleware"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCustomer(
	r chi.Router,
	customerHandler *adaptor.CustomerHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Post("/", customerHandler.CreateCustomer)
		r.Get("/{id}", customerHandler.GetCustomerByID)
		r.Put("/{id}", customerHandler.UpdateCustomer)
		r.Get("/{id}/reservations", customerHandler.GetCustomerReservations)
	})

	r.Route("/api/admin/customers", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.APIKey, log))

		r.Get("/", customerHandler.GetCustomers)
		r.Delete("/{id}", customerHandler.DeleteCustomer)
	})
}
