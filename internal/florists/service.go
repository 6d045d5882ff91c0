package florists

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams configure a florists service.
type ServiceParams struct {
	DB     txRunner
	Repo   Repository
	Orders orders.Repository
}

// Service owns the florist roster. Removing a florist also hands their
// orders back, in one transaction.
type Service struct {
	tx     txRunner
	repo   Repository
	orders orders.Repository
}

// NewService builds a florists service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "florists service requires a transaction runner")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "florists service requires a repository")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "florists service requires an orders repository")
	}
	return &Service{tx: params.DB, repo: params.Repo, orders: params.Orders}, nil
}

// List returns every florist, alphabetically.
func (s *Service) List(ctx context.Context) ([]models.Florist, error) {
	florists, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list florists")
	}
	return florists, nil
}

// CreateParams carry a new roster entry.
type CreateParams struct {
	Name  string
	Email string
}

// Create adds a florist. Emails are normalized to lowercase and unique.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Florist, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "florist name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "florist email is required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "florist email already registered").
			WithDetails(map[string]string{"email": email})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check florist email")
	}

	florist := &models.Florist{ID: uuid.New(), Name: name, Email: email}
	if err := s.repo.Create(ctx, florist); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create florist")
	}
	return florist, nil
}

// Delete removes a florist from the roster. Their open orders go back to
// pending with the assignment cleared; completed orders keep their
// completion but drop the florist reference and assigned_at.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Find(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "florist not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find florist")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).ReleaseFlorist(ctx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete florist")
	}
	return nil
}
