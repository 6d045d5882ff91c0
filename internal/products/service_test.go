package products

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

type stubProductRepo struct {
	products map[uuid.UUID]*models.Product
	saved    []*models.Product
}

func newStubProductRepo(products ...*models.Product) *stubProductRepo {
	repo := &stubProductRepo{products: map[uuid.UUID]*models.Product{}}
	for _, product := range products {
		repo.products[product.ID] = product
	}
	return repo
}

func (r *stubProductRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubProductRepo) Upsert(ctx context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) Find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (r *stubProductRepo) FindByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyID string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByIdentity(ctx context.Context, storeID uuid.UUID, title, variant string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, product := range r.products {
		if product.StoreID == storeID {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Save(ctx context.Context, product *models.Product) error {
	r.products[product.ID] = product
	r.saved = append(r.saved, product)
	return nil
}

func (r *stubProductRepo) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	return nil
}

type labelPush struct {
	storeID     uuid.UUID
	productName string
	variant     string
	difficulty  string
	productType string
}

// pushingOrders records SetLabelsForProduct pushes; everything else is inert.
type pushingOrders struct {
	pushes []labelPush
}

func (o *pushingOrders) WithTx(tx *gorm.DB) orders.Repository { return o }
func (o *pushingOrders) Upsert(ctx context.Context, order *models.Order) error {
	return nil
}
func (o *pushingOrders) Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (o *pushingOrders) ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (o *pushingOrders) Save(ctx context.Context, order *models.Order) error { return nil }
func (o *pushingOrders) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	return nil
}
func (o *pushingOrders) ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error {
	return nil
}
func (o *pushingOrders) SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error {
	o.pushes = append(o.pushes, labelPush{
		storeID:     storeID,
		productName: productName,
		variant:     variant,
		difficulty:  difficulty,
		productType: productType,
	})
	return nil
}

type stubLabelLister struct{}

func (stubLabelLister) ListAll(ctx context.Context) ([]models.ProductLabel, error) {
	return configuredLabels(), nil
}

func newProductTestService(t *testing.T, repo *stubProductRepo, ordersRepo *pushingOrders) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		DB:     stubTxRunner{},
		Repo:   repo,
		Orders: ordersRepo,
		Labels: stubLabelLister{},
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresTxRunner(t *testing.T) {
	_, err := NewService(ServiceParams{
		Repo:   newStubProductRepo(),
		Orders: &pushingOrders{},
		Labels: stubLabelLister{},
	})
	assert.Error(t, err)
}

// Assigning labels saves the product and pushes the new labels onto the
// orders referencing it, in the same transaction.
func TestUpdateLabelsPushesToOrders(t *testing.T) {
	storeID := uuid.New()
	product := &models.Product{
		ID:               uuid.New(),
		StoreID:          storeID,
		Title:            "Spring Bouquet",
		Variant:          "Large",
		DifficultyLabel:  "Easy",
		ProductTypeLabel: "Bouquet",
	}
	repo := newStubProductRepo(product)
	ordersRepo := &pushingOrders{}
	svc := newProductTestService(t, repo, ordersRepo)

	difficulty := "Hard"
	updated, err := svc.UpdateLabels(context.Background(), product.ID, UpdateLabelsParams{
		DifficultyLabel: &difficulty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hard", updated.DifficultyLabel)
	assert.Equal(t, "Bouquet", updated.ProductTypeLabel)

	require.Len(t, repo.saved, 1)
	require.Len(t, ordersRepo.pushes, 1)
	push := ordersRepo.pushes[0]
	assert.Equal(t, storeID, push.storeID)
	assert.Equal(t, "Spring Bouquet", push.productName)
	assert.Equal(t, "Large", push.variant)
	assert.Equal(t, "Hard", push.difficulty)
	assert.Equal(t, "Bouquet", push.productType)
}

func TestUpdateLabelsUnknownLabelRejected(t *testing.T) {
	product := &models.Product{
		ID:               uuid.New(),
		StoreID:          uuid.New(),
		Title:            "Spring Bouquet",
		DifficultyLabel:  "Easy",
		ProductTypeLabel: "Bouquet",
	}
	repo := newStubProductRepo(product)
	ordersRepo := &pushingOrders{}
	svc := newProductTestService(t, repo, ordersRepo)

	difficulty := "Impossible"
	_, err := svc.UpdateLabels(context.Background(), product.ID, UpdateLabelsParams{
		DifficultyLabel: &difficulty,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Empty(t, repo.saved)
	assert.Empty(t, ordersRepo.pushes)
}

func TestUpdateLabelsMissingProduct(t *testing.T) {
	svc := newProductTestService(t, newStubProductRepo(), &pushingOrders{})

	difficulty := "Hard"
	_, err := svc.UpdateLabels(context.Background(), uuid.New(), UpdateLabelsParams{
		DifficultyLabel: &difficulty,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
