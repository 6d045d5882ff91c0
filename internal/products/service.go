package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

type labelReader interface {
	ListAll(ctx context.Context) ([]models.ProductLabel, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams configure a products service.
type ServiceParams struct {
	DB     txRunner
	Repo   Repository
	Orders orders.Repository
	Labels labelReader
	Logger *logger.Logger
}

// Service owns catalog reads and the label assignment flow.
type Service struct {
	tx     txRunner
	repo   Repository
	orders orders.Repository
	labels labelReader
	logg   *logger.Logger
}

// NewService builds a products service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products service requires a transaction runner")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products service requires a repository")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products service requires an orders repository")
	}
	if params.Labels == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products service requires a label reader")
	}
	return &Service{
		tx:     params.DB,
		repo:   params.Repo,
		orders: params.Orders,
		labels: params.Labels,
		logg:   params.Logger,
	}, nil
}

// List returns a store's catalog ordered by title.
func (s *Service) List(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	products, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

// UpdateLabelsParams carry the label changes for one product. Nil means
// leave that category alone.
type UpdateLabelsParams struct {
	DifficultyLabel  *string
	ProductTypeLabel *string
}

// UpdateLabels assigns labels to a product and pushes them onto the orders
// that reference it, atomically.
func (s *Service) UpdateLabels(ctx context.Context, productID uuid.UUID, params UpdateLabelsParams) (*models.Product, error) {
	product, err := s.find(ctx, productID)
	if err != nil {
		return nil, err
	}

	labels, err := s.labels.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load labels")
	}

	if params.DifficultyLabel != nil {
		if !labelExists(labels, enums.LabelCategoryDifficulty, *params.DifficultyLabel) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown difficulty label").
				WithDetails(map[string]string{"name": *params.DifficultyLabel})
		}
		product.DifficultyLabel = *params.DifficultyLabel
	}
	if params.ProductTypeLabel != nil {
		if !labelExists(labels, enums.LabelCategoryProductType, *params.ProductTypeLabel) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product type label").
				WithDetails(map[string]string{"name": *params.ProductTypeLabel})
		}
		product.ProductTypeLabel = *params.ProductTypeLabel
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, product); err != nil {
			return err
		}
		return s.orders.WithTx(tx).SetLabelsForProduct(
			ctx, product.StoreID, product.Title, product.Variant,
			product.DifficultyLabel, product.ProductTypeLabel,
		)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product labels")
	}
	return product, nil
}

func (s *Service) find(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product")
	}
	return product, nil
}

func labelExists(labels []models.ProductLabel, category enums.LabelCategory, name string) bool {
	for _, label := range labels {
		if label.Category == category && label.Name == name {
			return true
		}
	}
	return false
}
