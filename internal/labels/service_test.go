package labels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stanleymf/order-to-do-app-sub000/internal/orders"
	"github.com/stanleymf/order-to-do-app-sub000/internal/products"
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

type stubLabelRepo struct {
	labels  map[uuid.UUID]*models.ProductLabel
	deleted []uuid.UUID
}

func newStubLabelRepo(labels ...*models.ProductLabel) *stubLabelRepo {
	repo := &stubLabelRepo{labels: map[uuid.UUID]*models.ProductLabel{}}
	for _, label := range labels {
		repo.labels[label.ID] = label
	}
	return repo
}

func (r *stubLabelRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubLabelRepo) ListAll(ctx context.Context) ([]models.ProductLabel, error) {
	var out []models.ProductLabel
	for _, label := range r.labels {
		out = append(out, *label)
	}
	return out, nil
}

func (r *stubLabelRepo) ListByCategory(ctx context.Context, category enums.LabelCategory) ([]models.ProductLabel, error) {
	var out []models.ProductLabel
	for _, label := range r.labels {
		if label.Category == category {
			out = append(out, *label)
		}
	}
	return out, nil
}

func (r *stubLabelRepo) Find(ctx context.Context, id uuid.UUID) (*models.ProductLabel, error) {
	label, ok := r.labels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return label, nil
}

func (r *stubLabelRepo) FindByName(ctx context.Context, category enums.LabelCategory, name string) (*models.ProductLabel, error) {
	for _, label := range r.labels {
		if label.Category == category && label.Name == name {
			return label, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLabelRepo) Create(ctx context.Context, label *models.ProductLabel) error {
	r.labels[label.ID] = label
	return nil
}

func (r *stubLabelRepo) Save(ctx context.Context, label *models.ProductLabel) error {
	r.labels[label.ID] = label
	return nil
}

func (r *stubLabelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.labels, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type replaceCall struct {
	category enums.LabelCategory
	oldName  string
	newName  string
}

// recordingOrders captures ReplaceLabel rewrites; everything else is inert.
type recordingOrders struct {
	replaced []replaceCall
}

func (o *recordingOrders) WithTx(tx *gorm.DB) orders.Repository { return o }
func (o *recordingOrders) Upsert(ctx context.Context, order *models.Order) error {
	return nil
}
func (o *recordingOrders) Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (o *recordingOrders) ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error) {
	return nil, nil
}
func (o *recordingOrders) Save(ctx context.Context, order *models.Order) error { return nil }
func (o *recordingOrders) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	o.replaced = append(o.replaced, replaceCall{category: category, oldName: oldName, newName: newName})
	return nil
}
func (o *recordingOrders) ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error {
	return nil
}
func (o *recordingOrders) SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error {
	return nil
}

// recordingProducts captures ReplaceLabel rewrites on the catalog side.
type recordingProducts struct {
	replaced []replaceCall
}

func (p *recordingProducts) WithTx(tx *gorm.DB) products.Repository { return p }
func (p *recordingProducts) Upsert(ctx context.Context, product *models.Product) error {
	return nil
}
func (p *recordingProducts) Find(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (p *recordingProducts) FindByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyID string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (p *recordingProducts) FindByIdentity(ctx context.Context, storeID uuid.UUID, title, variant string) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (p *recordingProducts) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	return nil, nil
}
func (p *recordingProducts) Save(ctx context.Context, product *models.Product) error { return nil }
func (p *recordingProducts) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	p.replaced = append(p.replaced, replaceCall{category: category, oldName: oldName, newName: newName})
	return nil
}

type labelServiceFixture struct {
	svc      *Service
	repo     *stubLabelRepo
	orders   *recordingOrders
	products *recordingProducts
}

func newLabelTestService(t *testing.T, labels ...*models.ProductLabel) labelServiceFixture {
	t.Helper()
	fixture := labelServiceFixture{
		repo:     newStubLabelRepo(labels...),
		orders:   &recordingOrders{},
		products: &recordingProducts{},
	}
	svc, err := NewService(ServiceParams{
		DB:       stubTxRunner{},
		Repo:     fixture.repo,
		Orders:   fixture.orders,
		Products: fixture.products,
	})
	require.NoError(t, err)
	fixture.svc = svc
	return fixture
}

func difficultyLabel(name string) *models.ProductLabel {
	return &models.ProductLabel{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.LabelCategoryDifficulty,
		Color:    "#ef4444",
		Priority: 3,
	}
}

func TestNewServiceRequiresTxRunner(t *testing.T) {
	_, err := NewService(ServiceParams{
		Repo:     newStubLabelRepo(),
		Orders:   &recordingOrders{},
		Products: &recordingProducts{},
	})
	assert.Error(t, err)
}

// Deleting a difficulty label rewrites every product and order carrying it
// to the category default before the label row goes away.
func TestDeleteRewritesReferencesToDefault(t *testing.T) {
	hard := difficultyLabel("Hard")
	fixture := newLabelTestService(t, hard)

	require.NoError(t, fixture.svc.Delete(context.Background(), hard.ID))

	want := replaceCall{category: enums.LabelCategoryDifficulty, oldName: "Hard", newName: "Easy"}
	require.Len(t, fixture.products.replaced, 1)
	assert.Equal(t, want, fixture.products.replaced[0])
	require.Len(t, fixture.orders.replaced, 1)
	assert.Equal(t, want, fixture.orders.replaced[0])
	require.Len(t, fixture.repo.deleted, 1)
	assert.Equal(t, hard.ID, fixture.repo.deleted[0])
}

func TestDeleteDefaultLabelRefused(t *testing.T) {
	easy := difficultyLabel("Easy")
	fixture := newLabelTestService(t, easy)

	err := fixture.svc.Delete(context.Background(), easy.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
	assert.Empty(t, fixture.products.replaced)
	assert.Empty(t, fixture.orders.replaced)
	assert.Empty(t, fixture.repo.deleted)
}

func TestDeleteProductTypeDefaultRefused(t *testing.T) {
	bouquet := &models.ProductLabel{
		ID:       uuid.New(),
		Name:     "Bouquet",
		Category: enums.LabelCategoryProductType,
		Color:    "#22c55e",
		Priority: 1,
	}
	fixture := newLabelTestService(t, bouquet)

	err := fixture.svc.Delete(context.Background(), bouquet.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

// Renaming a label rewrites the denormalized copies on products and orders.
func TestUpdateRenamePropagates(t *testing.T) {
	hard := difficultyLabel("Hard")
	fixture := newLabelTestService(t, hard)

	newName := "Advanced"
	label, err := fixture.svc.Update(context.Background(), hard.ID, UpdateParams{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Advanced", label.Name)

	want := replaceCall{category: enums.LabelCategoryDifficulty, oldName: "Hard", newName: "Advanced"}
	require.Len(t, fixture.products.replaced, 1)
	assert.Equal(t, want, fixture.products.replaced[0])
	require.Len(t, fixture.orders.replaced, 1)
	assert.Equal(t, want, fixture.orders.replaced[0])
}

func TestUpdateWithoutRenameSkipsPropagation(t *testing.T) {
	hard := difficultyLabel("Hard")
	fixture := newLabelTestService(t, hard)

	color := "#f97316"
	label, err := fixture.svc.Update(context.Background(), hard.ID, UpdateParams{Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "#f97316", label.Color)
	assert.Empty(t, fixture.products.replaced)
	assert.Empty(t, fixture.orders.replaced)
}

func TestUpdateRenameToExistingNameRefused(t *testing.T) {
	hard := difficultyLabel("Hard")
	medium := difficultyLabel("Medium")
	fixture := newLabelTestService(t, hard, medium)

	newName := "Medium"
	_, err := fixture.svc.Update(context.Background(), hard.ID, UpdateParams{Name: &newName})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	assert.Empty(t, fixture.orders.replaced)
}
