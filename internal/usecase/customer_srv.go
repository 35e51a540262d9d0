package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerUpdateRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	customers, err := s.repo.Customer.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customers", zap.Error(err))
		return nil, fmt.Errorf("get customers: %w", err)
	}

	total, err := s.repo.Customer.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count customers", zap.Error(err))
		return nil, fmt.Errorf("count customers: %w", err)
	}

	customerResponses := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		customerResponses[i] = response.CustomerToResponse(customer)
	}

	return response.NewPaginatedResponse(customerResponses, req.Page, req.PerPage, total), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create customer validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		LoyaltyPoints: 0,
		MemberLevel:   entity.MemberLevelStandard,
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		s.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("name", customer.Name),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerUpdateRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update customer validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		s.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("update customer: %w", err)
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}

	if err := s.repo.Customer.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return fmt.Errorf("delete customer: %w", err)
	}

	return nil
}

func (s *customerService) findCustomer(ctx context.Context, customerID string) (*entity.Customer, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get customer by ID",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer not found")
	}

	return customer, nil
}
