package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	pkgerrors "github.com/stanleymf/order-to-do-app-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	orders map[string]*models.Order
	err    error
}

func newStubRepo(orders ...*models.Order) *stubRepo {
	repo := &stubRepo{orders: map[string]*models.Order{}}
	for _, order := range orders {
		repo.orders[order.ID] = order
	}
	return repo
}

func (r *stubRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubRepo) Upsert(ctx context.Context, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	r.orders[order.ID] = order
	return nil
}

func (r *stubRepo) Find(ctx context.Context, storeID uuid.UUID, id string) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *stubRepo) ListByDate(ctx context.Context, date string, storeID *uuid.UUID) ([]models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Order
	for _, order := range r.orders {
		if order.Date == date {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *stubRepo) ReplaceLabel(ctx context.Context, category enums.LabelCategory, oldName, newName string) error {
	return r.err
}

func (r *stubRepo) SetLabelsForProduct(ctx context.Context, storeID uuid.UUID, productName, variant, difficulty, productType string) error {
	return r.err
}

func (r *stubRepo) ReleaseFlorist(ctx context.Context, floristID uuid.UUID) error {
	return r.err
}

func (r *stubRepo) Save(ctx context.Context, order *models.Order) error {
	if r.err != nil {
		return r.err
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

type stubLabels struct {
	labels []models.ProductLabel
	err    error
}

func (s stubLabels) ListAll(ctx context.Context) ([]models.ProductLabel, error) {
	return s.labels, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Labels: stubLabels{labels: testLabels()},
		Now:    fixedNow,
	})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(ServiceParams{Labels: stubLabels{}})
	assert.Error(t, err)
}

func TestNewServiceRequiresLabels(t *testing.T) {
	_, err := NewService(ServiceParams{Repo: newStubRepo()})
	assert.Error(t, err)
}

func TestAssignSetsFloristAndStatus(t *testing.T) {
	storeID := uuid.New()
	florist := uuid.New()
	repo := newStubRepo(&models.Order{ID: "1001", StoreID: storeID, Status: enums.OrderStatusPending})
	svc := newTestService(t, repo)

	order, err := svc.Assign(context.Background(), storeID, "1001", florist.String())
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusAssigned, order.Status)
	require.NotNil(t, order.AssignedFloristID)
	assert.Equal(t, florist, *order.AssignedFloristID)
	require.NotNil(t, order.AssignedAt)
	assert.Equal(t, fixedNow(), *order.AssignedAt)
}

func TestAssignUnassignedClearsAssignment(t *testing.T) {
	storeID := uuid.New()
	florist := uuid.New()
	assignedAt := fixedNow()
	repo := newStubRepo(&models.Order{
		ID:                "1001",
		StoreID:           storeID,
		Status:            enums.OrderStatusAssigned,
		AssignedFloristID: &florist,
		AssignedAt:        &assignedAt,
	})
	svc := newTestService(t, repo)

	order, err := svc.Assign(context.Background(), storeID, "1001", UnassignedSentinel)
	require.NoError(t, err)

	assert.Nil(t, order.AssignedFloristID)
	assert.Nil(t, order.AssignedAt)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
}

// Reassigning a completed order swaps the florist but completion stands.
func TestAssignCompletedOrderKeepsCompletion(t *testing.T) {
	storeID := uuid.New()
	oldFlorist := uuid.New()
	newFlorist := uuid.New()
	completedAt := fixedNow().Add(-time.Hour)
	repo := newStubRepo(&models.Order{
		ID:                "1001",
		StoreID:           storeID,
		Status:            enums.OrderStatusCompleted,
		AssignedFloristID: &oldFlorist,
		AssignedAt:        &completedAt,
		CompletedAt:       &completedAt,
	})
	svc := newTestService(t, repo)

	order, err := svc.Assign(context.Background(), storeID, "1001", newFlorist.String())
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.AssignedFloristID)
	assert.Equal(t, newFlorist, *order.AssignedFloristID)
	require.NotNil(t, order.CompletedAt)
}

func TestAssignInvalidFloristID(t *testing.T) {
	storeID := uuid.New()
	repo := newStubRepo(&models.Order{ID: "1001", StoreID: storeID})
	svc := newTestService(t, repo)

	_, err := svc.Assign(context.Background(), storeID, "1001", "not-a-uuid")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCompleteSetsTimestampAndKeepsAssignment(t *testing.T) {
	storeID := uuid.New()
	florist := uuid.New()
	assignedAt := fixedNow().Add(-time.Hour)
	repo := newStubRepo(&models.Order{
		ID:                "1001",
		StoreID:           storeID,
		Status:            enums.OrderStatusAssigned,
		AssignedFloristID: &florist,
		AssignedAt:        &assignedAt,
	})
	svc := newTestService(t, repo)

	order, err := svc.Complete(context.Background(), storeID, "1001")
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	assert.Equal(t, fixedNow(), *order.CompletedAt)
	require.NotNil(t, order.AssignedFloristID)
	assert.Equal(t, florist, *order.AssignedFloristID)
}

// Completing twice is an undo: the order returns to its pre-completion
// status and the timestamp is cleared.
func TestCompleteTwiceReverts(t *testing.T) {
	storeID := uuid.New()
	florist := uuid.New()
	assignedAt := fixedNow().Add(-time.Hour)
	repo := newStubRepo(&models.Order{
		ID:                "1001",
		StoreID:           storeID,
		Status:            enums.OrderStatusAssigned,
		AssignedFloristID: &florist,
		AssignedAt:        &assignedAt,
	})
	svc := newTestService(t, repo)

	_, err := svc.Complete(context.Background(), storeID, "1001")
	require.NoError(t, err)
	order, err := svc.Complete(context.Background(), storeID, "1001")
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusAssigned, order.Status)
	assert.Nil(t, order.CompletedAt)
}

func TestCompleteTwiceRevertsToPendingWithoutFlorist(t *testing.T) {
	storeID := uuid.New()
	repo := newStubRepo(&models.Order{ID: "1001", StoreID: storeID, Status: enums.OrderStatusPending})
	svc := newTestService(t, repo)

	_, err := svc.Complete(context.Background(), storeID, "1001")
	require.NoError(t, err)
	order, err := svc.Complete(context.Background(), storeID, "1001")
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Nil(t, order.CompletedAt)
}

func TestUpdateRemarksHasNoStatusSideEffects(t *testing.T) {
	storeID := uuid.New()
	repo := newStubRepo(&models.Order{ID: "1001", StoreID: storeID, Status: enums.OrderStatusAssigned})
	svc := newTestService(t, repo)

	order, err := svc.UpdateRemarks(context.Background(), storeID, "1001", "ring the bell")
	require.NoError(t, err)
	assert.Equal(t, "ring the bell", order.Remarks)
	assert.Equal(t, enums.OrderStatusAssigned, order.Status)
}

func TestOrderNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.Complete(context.Background(), uuid.New(), "ghost")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListFiltersAndSorts(t *testing.T) {
	storeID := uuid.New()
	me := uuid.New()
	repo := newStubRepo(
		&models.Order{ID: "1001", StoreID: storeID, Date: "2025-06-13", Timeslot: "2:00 PM - 6:00 PM", ProductName: "Rose"},
		&models.Order{ID: "1002", StoreID: storeID, Date: "2025-06-13", Timeslot: "9:00 AM - 11:00 AM", ProductName: "Tulip"},
		&models.Order{ID: "1003", StoreID: storeID, Date: "2025-06-14", Timeslot: "9:00 AM - 11:00 AM", ProductName: "Peony"},
	)
	svc := newTestService(t, repo)

	got, err := svc.List(context.Background(), ListParams{Date: "2025-06-13", ViewerFloristID: &me})
	require.NoError(t, err)
	assert.Equal(t, []string{"1002", "1001"}, orderIDs(got))
}

func TestListRequiresDate(t *testing.T) {
	svc := newTestService(t, newStubRepo())
	_, err := svc.List(context.Background(), ListParams{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
