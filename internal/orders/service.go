package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// UnassignedSentinel is the florist id the dashboard sends to clear an
// assignment.
const UnassignedSentinel = "unassigned"

type labelReader interface {
	ListAll(ctx context.Context) ([]models.ProductLabel, error)
}

// ServiceParams configure the orders service.
type ServiceParams struct {
	Repo   Repository
	Labels labelReader
	Logger *logger.Logger
	Now    func() time.Time
}

// Service owns the florist-facing order lifecycle and the display listing.
type Service struct {
	repo   Repository
	labels labelReader
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds an orders service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.Labels == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "labels reader required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   params.Repo,
		labels: params.Labels,
		logg:   params.Logger,
		now:    now,
	}, nil
}

// ListParams describe one dashboard listing request.
type ListParams struct {
	Date            string
	ViewerFloristID *uuid.UUID
	Filters         Filters
}

// List returns the orders for a day in display order: filters first, then
// the five-level comparator.
func (s *Service) List(ctx context.Context, params ListParams) ([]models.Order, error) {
	if params.Date == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	orders, err := s.repo.ListByDate(ctx, params.Date, params.Filters.StoreID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	labels, err := s.labels.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load labels")
	}
	filtered := Filter(orders, params.Filters)
	Sort(filtered, params.ViewerFloristID, labels)
	return filtered, nil
}

// Assign moves an order to a florist, or clears the assignment when the
// sentinel "unassigned" is sent. Reassigning a completed order changes only
// the assignment; completion stands.
func (s *Service) Assign(ctx context.Context, storeID uuid.UUID, orderID, floristID string) (*models.Order, error) {
	order, err := s.find(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	if floristID == UnassignedSentinel {
		order.AssignedFloristID = nil
		order.AssignedAt = nil
		order.Status = enums.OrderStatusPending
		order.CompletedAt = nil
	} else {
		parsed, parseErr := uuid.Parse(floristID)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid florist id")
		}
		assignedAt := s.now()
		order.AssignedFloristID = &parsed
		order.AssignedAt = &assignedAt
		if order.Status != enums.OrderStatusCompleted {
			order.Status = enums.OrderStatusAssigned
		}
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}
	return order, nil
}

// Complete toggles completion. Completing sets the timestamp and leaves the
// assignment alone; completing an already-completed order reverts it to
// assigned or pending.
func (s *Service) Complete(ctx context.Context, storeID uuid.UUID, orderID string) (*models.Order, error) {
	order, err := s.find(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == enums.OrderStatusCompleted {
		order.CompletedAt = nil
		if order.AssignedFloristID != nil {
			order.Status = enums.OrderStatusAssigned
		} else {
			order.Status = enums.OrderStatusPending
		}
	} else {
		completedAt := s.now()
		order.Status = enums.OrderStatusCompleted
		order.CompletedAt = &completedAt
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}
	return order, nil
}

// UpdateRemarks replaces the remarks text. No status side effects.
func (s *Service) UpdateRemarks(ctx context.Context, storeID uuid.UUID, orderID, remarks string) (*models.Order, error) {
	order, err := s.find(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	order.Remarks = remarks
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}
	return order, nil
}

// UpdateCustomizations replaces the customization text. No status side
// effects.
func (s *Service) UpdateCustomizations(ctx context.Context, storeID uuid.UUID, orderID, customizations string) (*models.Order, error) {
	order, err := s.find(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	order.ProductCustomizations = customizations
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}
	return order, nil
}

func (s *Service) find(ctx context.Context, storeID uuid.UUID, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.Find(ctx, storeID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
