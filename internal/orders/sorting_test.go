package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func testLabels() []models.ProductLabel {
	return []models.ProductLabel{
		{Name: "Easy", Category: enums.LabelCategoryDifficulty, Priority: 1},
		{Name: "Medium", Category: enums.LabelCategoryDifficulty, Priority: 2},
		{Name: "Hard", Category: enums.LabelCategoryDifficulty, Priority: 3},
		{Name: "Bouquet", Category: enums.LabelCategoryProductType, Priority: 1},
		{Name: "Vase", Category: enums.LabelCategoryProductType, Priority: 2},
	}
}

func orderIDs(orders []models.Order) []string {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func TestSortFloristPriority(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	orders := []models.Order{
		{ID: "other", AssignedFloristID: &other, Timeslot: "9:00 AM - 11:00 AM"},
		{ID: "unassigned", Timeslot: "9:00 AM - 11:00 AM"},
		{ID: "mine", AssignedFloristID: &me, Timeslot: "9:00 AM - 11:00 AM"},
	}
	Sort(orders, &me, testLabels())
	assert.Equal(t, []string{"mine", "unassigned", "other"}, orderIDs(orders))
}

func TestSortTimeslot(t *testing.T) {
	orders := []models.Order{
		{ID: "afternoon", Timeslot: "2:00 PM - 6:00 PM"},
		{ID: "garbled", Timeslot: "whenever"},
		{ID: "morning", Timeslot: "9:00 AM - 11:00 AM"},
		{ID: "noon", Timeslot: "12:00 PM - 2:00 PM"},
	}
	Sort(orders, nil, testLabels())
	assert.Equal(t, []string{"morning", "noon", "afternoon", "garbled"}, orderIDs(orders))
}

func TestSortProductNameThenLabels(t *testing.T) {
	orders := []models.Order{
		{ID: "rose-hard", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Hard", ProductTypeLabel: "Bouquet"},
		{ID: "tulip", ProductName: "Tulip", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Bouquet"},
		{ID: "rose-easy-vase", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Vase"},
		{ID: "rose-easy-bouquet", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Bouquet"},
	}
	Sort(orders, nil, testLabels())
	assert.Equal(t, []string{"rose-easy-bouquet", "rose-easy-vase", "rose-hard", "tulip"}, orderIDs(orders))
}

func TestSortUnknownLabelsSortLast(t *testing.T) {
	orders := []models.Order{
		{ID: "mystery", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Impossible", ProductTypeLabel: "Bouquet"},
		{ID: "known", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Hard", ProductTypeLabel: "Bouquet"},
	}
	Sort(orders, nil, testLabels())
	assert.Equal(t, []string{"known", "mystery"}, orderIDs(orders))
}

// Full ties keep their input order: the sort is stable.
func TestSortStability(t *testing.T) {
	orders := []models.Order{
		{ID: "first", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Bouquet"},
		{ID: "second", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Bouquet"},
		{ID: "third", ProductName: "Rose", Timeslot: "9:00 AM - 11:00 AM", DifficultyLabel: "Easy", ProductTypeLabel: "Bouquet"},
	}
	Sort(orders, nil, testLabels())
	assert.Equal(t, []string{"first", "second", "third"}, orderIDs(orders))
}

func TestFilterByStoreAndStatus(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()
	pending := enums.OrderStatusPending

	orders := []models.Order{
		{ID: "a-pending", StoreID: storeA, Status: enums.OrderStatusPending},
		{ID: "a-done", StoreID: storeA, Status: enums.OrderStatusCompleted},
		{ID: "b-pending", StoreID: storeB, Status: enums.OrderStatusPending},
	}

	got := Filter(orders, Filters{StoreID: &storeA, Status: &pending})
	assert.Equal(t, []string{"a-pending"}, orderIDs(got))
}

func TestFilterSearch(t *testing.T) {
	orders := []models.Order{
		{ID: "1001", ProductName: "Sunrise Bouquet", DeliveryType: enums.DeliveryTypeExpress},
		{ID: "1002", ProductName: "Tulip Vase", Remarks: "express wrap please"},
		{ID: "1003", ProductName: "Peony Arrangement"},
	}

	got := Filter(orders, Filters{Search: "express"})
	assert.Equal(t, []string{"1001", "1002"}, orderIDs(got))

	got = Filter(orders, Filters{Search: "SUNRISE"})
	assert.Equal(t, []string{"1001"}, orderIDs(got))

	got = Filter(orders, Filters{Search: "1003"})
	assert.Equal(t, []string{"1003"}, orderIDs(got))
}

func TestFilterEmptyIsIdentity(t *testing.T) {
	orders := []models.Order{{ID: "1001"}, {ID: "1002"}}
	got := Filter(orders, Filters{})
	assert.Equal(t, []string{"1001", "1002"}, orderIDs(got))
}

func TestTimeslotStartMinutes(t *testing.T) {
	assert.Equal(t, 9*60, timeslotStartMinutes("9:00 AM - 11:00 AM"))
	assert.Equal(t, 14*60, timeslotStartMinutes("2:00 PM - 6:00 PM"))
	assert.Equal(t, 10*60, timeslotStartMinutes("10:00 AM - 02:00 PM"))
	assert.Equal(t, unrankedPriority, timeslotStartMinutes("whenever"))
	assert.Equal(t, unrankedPriority, timeslotStartMinutes(""))
}
