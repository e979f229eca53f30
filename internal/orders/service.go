package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macroplate/macroplate-backend/pkg/db/models"
	"github.com/macroplate/macroplate-backend/pkg/enums"
	pkgerrors "github.com/macroplate/macroplate-backend/pkg/errors"
)

// Service defines the behavior needed by the order controllers.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, status *enums.OrderStatus, limit int) ([]OrderDTO, error)
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	ListAll(ctx context.Context, status *enums.OrderStatus, limit int) ([]OrderDTO, error)
	Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*OrderDTO, error)
}

type orderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type service struct {
	repo orderRepository
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo orderRepository
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, status *enums.OrderStatus, limit int) ([]OrderDTO, error) {
	orders, err := s.repo.List(ctx, ListFilters{Status: status, UserID: &userID, Limit: limit})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return FromModels(orders), nil
}

func (s *service) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Cross-user access reads as absence, not as a permissions hint.
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}

func (s *service) ListAll(ctx context.Context, status *enums.OrderStatus, limit int) ([]OrderDTO, error) {
	orders, err := s.repo.List(ctx, ListFilters{Status: status, Limit: limit, WithUser: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return FromModels(orders), nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]any{"reason": "invalid order status", "status": rawStatus})
	}

	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "illegal status transition").
			WithDetails(map[string]any{
				"reason": "illegal status transition",
				"from":   order.Status,
				"to":     target,
			})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = target
	return FromModel(order), nil
}

func (s *service) load(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
