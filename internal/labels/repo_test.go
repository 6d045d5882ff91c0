package labels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/db/models"
	"github.com/stanleymf/order-to-do-app-sub000/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLabelsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS product_labels (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  color TEXT NOT NULL,
  priority INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (name, category)
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`DELETE FROM product_labels`).Error)
	return db
}

func seedLabel(t *testing.T, repo Repository, name string, category enums.LabelCategory, priority int) *models.ProductLabel {
	t.Helper()
	label := &models.ProductLabel{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Color:    "#94a3b8",
		Priority: priority,
	}
	require.NoError(t, repo.Create(context.Background(), label))
	return label
}

func TestLabelsListAllOrdering(t *testing.T) {
	db := setupLabelsTestDB(t)
	repo := NewRepository(db)

	seedLabel(t, repo, "Hard", enums.LabelCategoryDifficulty, 3)
	seedLabel(t, repo, "Easy", enums.LabelCategoryDifficulty, 1)
	seedLabel(t, repo, "Bouquet", enums.LabelCategoryProductType, 1)

	labels, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, labels, 3)
	assert.Equal(t, "Easy", labels[0].Name)
	assert.Equal(t, "Hard", labels[1].Name)
	assert.Equal(t, "Bouquet", labels[2].Name)
}

func TestLabelsListByCategory(t *testing.T) {
	db := setupLabelsTestDB(t)
	repo := NewRepository(db)

	seedLabel(t, repo, "Easy", enums.LabelCategoryDifficulty, 1)
	seedLabel(t, repo, "Vase", enums.LabelCategoryProductType, 2)
	seedLabel(t, repo, "Bouquet", enums.LabelCategoryProductType, 1)

	labels, err := repo.ListByCategory(context.Background(), enums.LabelCategoryProductType)
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "Bouquet", labels[0].Name)
	assert.Equal(t, "Vase", labels[1].Name)
}

func TestLabelsFindByName(t *testing.T) {
	db := setupLabelsTestDB(t)
	repo := NewRepository(db)

	seeded := seedLabel(t, repo, "Very Hard", enums.LabelCategoryDifficulty, 4)

	found, err := repo.FindByName(context.Background(), enums.LabelCategoryDifficulty, "Very Hard")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindByName(context.Background(), enums.LabelCategoryProductType, "Very Hard")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLabelsDuplicateNameRejected(t *testing.T) {
	db := setupLabelsTestDB(t)
	repo := NewRepository(db)

	seedLabel(t, repo, "Easy", enums.LabelCategoryDifficulty, 1)

	err := repo.Create(context.Background(), &models.ProductLabel{
		ID:       uuid.New(),
		Name:     "Easy",
		Category: enums.LabelCategoryDifficulty,
		Color:    "#000000",
		Priority: 9,
	})
	assert.Error(t, err)
}

func TestLabelsDelete(t *testing.T) {
	db := setupLabelsTestDB(t)
	repo := NewRepository(db)

	seeded := seedLabel(t, repo, "Bundle", enums.LabelCategoryProductType, 5)
	require.NoError(t, repo.Delete(context.Background(), seeded.ID))

	_, err := repo.Find(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
