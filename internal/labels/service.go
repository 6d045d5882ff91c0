package labels

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams configure a labels service.
type ServiceParams struct {
	DB       txRunner
	Repo     Repository
	Orders   orders.Repository
	Products products.Repository
	Logger   *logger.Logger
}

// Service owns the label catalog. Renames and deletions fan out to every
// product and order carrying the label, in one transaction.
type Service struct {
	tx       txRunner
	repo     Repository
	orders   orders.Repository
	products products.Repository
	logg     *logger.Logger
}

// NewService builds a labels service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "labels service requires a transaction runner")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "labels service requires a repository")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "labels service requires an orders repository")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "labels service requires a products repository")
	}
	return &Service{
		tx:       params.DB,
		repo:     params.Repo,
		orders:   params.Orders,
		products: params.Products,
		logg:     params.Logger,
	}, nil
}

// List returns labels, optionally narrowed to one category.
func (s *Service) List(ctx context.Context, category *enums.LabelCategory) ([]models.ProductLabel, error) {
	var (
		labels []models.ProductLabel
		err    error
	)
	if category != nil {
		labels, err = s.repo.ListByCategory(ctx, *category)
	} else {
		labels, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list labels")
	}
	return labels, nil
}

// CreateParams carry a new label definition.
type CreateParams struct {
	Name     string
	Category enums.LabelCategory
	Color    string
	Priority int
}

// Create adds a label. Names are unique per category.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.ProductLabel, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "label name is required")
	}
	if !params.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid label category").
			WithDetails(map[string]string{"category": params.Category.String()})
	}

	if _, err := s.repo.FindByName(ctx, params.Category, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "label already exists").
			WithDetails(map[string]string{"name": name, "category": params.Category.String()})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check label name")
	}

	label := &models.ProductLabel{
		ID:       uuid.New(),
		Name:     name,
		Category: params.Category,
		Color:    params.Color,
		Priority: params.Priority,
	}
	if label.Priority < 1 {
		label.Priority = 1
	}
	if err := s.repo.Create(ctx, label); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create label")
	}
	return label, nil
}

// UpdateParams carry a partial label edit. Nil fields stay untouched.
type UpdateParams struct {
	Name     *string
	Color    *string
	Priority *int
}

// Update edits a label. A rename rewrites the name on every product and
// order carrying it, so the denormalized copies never go stale.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.ProductLabel, error) {
	label, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := label.Name
	if params.Name != nil {
		newName := strings.TrimSpace(*params.Name)
		if newName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "label name is required")
		}
		if newName != oldName {
			if _, err := s.repo.FindByName(ctx, label.Category, newName); err == nil {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "label already exists").
					WithDetails(map[string]string{"name": newName})
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check label name")
			}
		}
		label.Name = newName
	}
	if params.Color != nil {
		label.Color = *params.Color
	}
	if params.Priority != nil {
		if *params.Priority < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "priority must be positive")
		}
		label.Priority = *params.Priority
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Save(ctx, label); err != nil {
			return err
		}
		if label.Name == oldName {
			return nil
		}
		if err := s.products.WithTx(tx).ReplaceLabel(ctx, label.Category, oldName, label.Name); err != nil {
			return err
		}
		return s.orders.WithTx(tx).ReplaceLabel(ctx, label.Category, oldName, label.Name)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update label")
	}
	return label, nil
}

// Delete removes a label and rewrites every product and order carrying it
// to the category's fixed default. The default label itself cannot be
// deleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	label, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	fallback := label.Category.DefaultLabelName()
	if label.Name == fallback {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete the default label").
			WithDetails(map[string]string{"name": label.Name})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.products.WithTx(tx).ReplaceLabel(ctx, label.Category, label.Name, fallback); err != nil {
			return err
		}
		if err := s.orders.WithTx(tx).ReplaceLabel(ctx, label.Category, label.Name, fallback); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, label.ID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete label")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "label deleted, references moved to "+fallback)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.ProductLabel, error) {
	label, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "label not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find label")
	}
	return label, nil
}
