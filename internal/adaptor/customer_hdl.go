package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service     usecase.CustomerService
	reservation usecase.ReservationService
	log         *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, reservation usecase.ReservationService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:     service,
		reservation: reservation,
		log:         log.With(zap.String("handler", "customer")),
	}
}

// GetCustomers handles GET /api/customers
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	customers, err := h.service.GetCustomers(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "Customers retrieved successfully", customers)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	customer, err := h.service.GetCustomerByID(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get customer by ID")
		return
	}

	utils.ResponseSuccess(w, "Customer retrieved successfully", customer)
}

// GetCustomerReservations handles GET /api/customers/{id}/reservations
func (h *CustomerHandler) GetCustomerReservations(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reservations, err := h.reservation.GetCustomerReservations(r.Context(), customerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get customer reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "Customer created successfully", customer)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	var req request.CustomerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Customer updated successfully", customer)
}

// DeleteCustomer handles DELETE /api/admin/customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		utils.ResponseBadRequest(w, "Customer ID is required", nil)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		handleServiceError(w, h.log, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "Customer deleted successfully", nil)
}
