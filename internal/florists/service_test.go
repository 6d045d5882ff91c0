package florists

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubFloristRepo struct {
	florists map[uuid.UUID]*models.Florist
	deleted  []uuid.UUID
}

func newStubFloristRepo(florists ...*models.Florist) *stubFloristRepo {
	repo := &stubFloristRepo{florists: map[uuid.UUID]*models.Florist{}}
	for _, florist := range florists {
		repo.florists[florist.ID] = florist
	}
	return repo
}

func (r *stubFloristRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubFloristRepo) List(ctx context.Context) ([]models.Florist, error) {
	var out []models.Florist
	for _, florist := range r.florists {
		out = append(out, *florist)
	}
	return out, nil
}

func (r *stubFloristRepo) Find(ctx context.Context, id uuid.UUID) (*models.Florist, error) {
	florist, ok := r.florists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return florist, nil
}

func (r *stubFloristRepo) FindByEmail(ctx context.Context, email string) (*models.Florist, error) {
	for _, florist := range r.florists {
		if florist.Email == email {
			return florist, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubFloristRepo) Create(ctx context.Context, florist *models.Florist) error {
	r.florists[florist.ID] = florist
	return nil
}

func (r *stubFloristRepo) Save(ctx context.Context, florist *models.Florist) error {
	r.florists[florist.ID] = florist
	return nil
}

func (r *stubFloristRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.florists, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// releasingOrders records ReleaseFlorist calls; everything else is inert.
type releasingOrders struct {
	released []uuid.UUID
}

func (o *releasingOrders) WithTx(tx *gorm.DB) orders.Repository { return o }
func (o *releasingOrders) Upsert(ctx context.Context, order *models.Order) error {
	return nil
}
func (o *releasingOrders) Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (o *releasingOrders) ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (o *releasingOrders) Save(ctx context.Context, order *models.Order) error { return nil }
func (o *releasingOrders) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	return nil
}
func (o *releasingOrders) ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error {
	o.released = append(o.released, floristID)
	return nil
}
func (o *releasingOrders) SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error {
	return nil
}

func newFloristTestService(t *testing.T, repo Repository, ordersRepo *releasingOrders) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{DB: stubTxRunner{}, Repo: repo, Orders: ordersRepo})
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	_, err := NewService(ServiceParams{Repo: newStubFloristRepo(), Orders: &releasingOrders{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{DB: stubTxRunner{}, Orders: &releasingOrders{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{DB: stubTxRunner{}, Repo: newStubFloristRepo()})
	assert.Error(t, err)
}

func TestCreateNormalizesEmail(t *testing.T) {
	repo := newStubFloristRepo()
	svc := newFloristTestService(t, repo, &releasingOrders{})

	florist, err := svc.Create(context.Background(), CreateParams{Name: "Maya", Email: "  Maya@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "maya@example.com", florist.Email)
}

func TestCreateDuplicateEmail(t *testing.T) {
	existing := &models.Florist{ID: uuid.New(), Name: "Maya", Email: "maya@example.com"}
	svc := newFloristTestService(t, newStubFloristRepo(existing), &releasingOrders{})

	_, err := svc.Create(context.Background(), CreateParams{Name: "Other", Email: "maya@example.com"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

// Removing a florist hands their orders back before the row goes away, so
// no order is left marked assigned with nobody on it.
func TestDeleteReleasesOrdersFirst(t *testing.T) {
	florist := &models.Florist{ID: uuid.New(), Name: "Maya", Email: "maya@example.com"}
	repo := newStubFloristRepo(florist)
	ordersRepo := &releasingOrders{}
	svc := newFloristTestService(t, repo, ordersRepo)

	require.NoError(t, svc.Delete(context.Background(), florist.ID))

	require.Len(t, ordersRepo.released, 1)
	assert.Equal(t, florist.ID, ordersRepo.released[0])
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, florist.ID, repo.deleted[0])
}

func TestDeleteUnknownFlorist(t *testing.T) {
	ordersRepo := &releasingOrders{}
	svc := newFloristTestService(t, newStubFloristRepo(), ordersRepo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Empty(t, ordersRepo.released)
}
