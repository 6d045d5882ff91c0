package stores

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/logger"
)

// ServiceParams configure a stores service.
type ServiceParams struct {
	Repo              Repository
	DefaultAPIVersion string
	Logger            *logger.Logger
}

// Service owns store configuration CRUD.
type Service struct {
	repo              Repository
	defaultAPIVersion string
	logg              *logger.Logger
}

// NewService builds a stores service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stores service requires a repository")
	}
	if params.DefaultAPIVersion == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stores service requires a default api version")
	}
	return &Service{
		repo:              params.Repo,
		defaultAPIVersion: params.DefaultAPIVersion,
		logg:              params.Logger,
	}, nil
}

// List returns every configured store.
func (s *Service) List(ctx context.Context) ([]models.Store, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return stores, nil
}

// Get returns one store by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	return s.find(ctx, id)
}

// CreateParams carry a new store configuration.
type CreateParams struct {
	Name          string
	Domain        string
	Color         string
	AccessToken   string
	APIVersion    string
	WebhookSecret string
}

// Create registers a Shopify shop. The domain is normalized to lowercase
// and must be unique.
func (s *Service) Create(ctx context.Context, params CreateParams) (*models.Store, error) {
	name := strings.TrimSpace(params.Name)
	domain := strings.ToLower(strings.TrimSpace(params.Domain))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store domain is required")
	}
	if params.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
	}

	if _, err := s.repo.FindByDomain(ctx, domain); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "store domain already registered").
			WithDetails(map[string]string{"domain": domain})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check store domain")
	}

	store := &models.Store{
		ID:            uuid.New(),
		Name:          name,
		Domain:        domain,
		Color:         params.Color,
		AccessToken:   params.AccessToken,
		APIVersion:    params.APIVersion,
		WebhookSecret: params.WebhookSecret,
	}
	if store.Color == "" {
		store.Color = "#2563eb"
	}
	if store.APIVersion == "" {
		store.APIVersion = s.defaultAPIVersion
	}
	if store.DateSource == "" {
		store.DateSource = "tags"
	}
	if store.TimeslotSource == "" {
		store.TimeslotSource = "tags"
	}

	if err := s.repo.Create(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return store, nil
}

// UpdateParams carry a partial store edit. Nil fields stay untouched.
type UpdateParams struct {
	Name               *string
	Color              *string
	AccessToken        *string
	APIVersion         *string
	WebhookSecret      *string
	DateSource         *string
	DateTagPattern     *string
	TimeslotSource     *string
	TimeslotTagPattern *string
}

var validExtractionSources = map[string]bool{"tags": true, "note": true}

// Update edits a store configuration. The domain is immutable; register a
// new store instead.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*models.Store, error) {
	store, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		store.Name = name
	}
	if params.Color != nil {
		store.Color = *params.Color
	}
	if params.AccessToken != nil {
		if *params.AccessToken == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "access token is required")
		}
		store.AccessToken = *params.AccessToken
	}
	if params.APIVersion != nil {
		store.APIVersion = *params.APIVersion
	}
	if params.WebhookSecret != nil {
		store.WebhookSecret = *params.WebhookSecret
	}
	if params.DateSource != nil {
		if !validExtractionSources[*params.DateSource] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid date source")
		}
		store.DateSource = *params.DateSource
	}
	if params.DateTagPattern != nil {
		store.DateTagPattern = *params.DateTagPattern
	}
	if params.TimeslotSource != nil {
		if !validExtractionSources[*params.TimeslotSource] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid timeslot source")
		}
		store.TimeslotSource = *params.TimeslotSource
	}
	if params.TimeslotTagPattern != nil {
		store.TimeslotTagPattern = *params.TimeslotTagPattern
	}

	if err := s.repo.Save(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save store")
	}
	return store, nil
}

// Delete removes a store and, through the schema's cascade rules, its
// orders and products.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	store, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, store.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	if s.logg != nil {
		s.logg.Info(ctx, "store removed: "+store.Domain)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	store, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find store")
	}
	return store, nil
}
