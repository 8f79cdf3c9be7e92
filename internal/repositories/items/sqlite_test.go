package items

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
CREATE TABLE items (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  name       TEXT NOT NULL,
  quantity   INTEGER NOT NULL CHECK (quantity >= 0),
  user_email TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestCreateGetList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := &models.Item{Name: "Flour", Quantity: 3, Owner: "a@b.co"}
	b := &models.Item{Name: "Sugar", Quantity: 0, Owner: "a@b.co"}
	c := &models.Item{Name: "Salt", Quantity: 7, Owner: "other@b.co"}
	for _, it := range []*models.Item{a, b, c} {
		require.NoError(t, r.Create(ctx, it))
	}
	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	got, err := r.Get(ctx, "a@b.co", a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	list, err := r.ListByOwner(ctx, "a@b.co")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Flour", list[0].Name)
	assert.Equal(t, "Sugar", list[1].Name)
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	it := &models.Item{Name: "Flour", Quantity: 3, Owner: "a@b.co"}
	require.NoError(t, r.Create(ctx, it))

	_, err := r.Get(ctx, "other@b.co", it.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = r.Delete(ctx, "other@b.co", it.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateSetQuantityDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	it := &models.Item{Name: "Flour", Quantity: 3, Owner: "a@b.co"}
	require.NoError(t, r.Create(ctx, it))

	it.Name = "Rye flour"
	it.Quantity = 5
	require.NoError(t, r.Update(ctx, it))

	require.NoError(t, r.SetQuantity(ctx, "a@b.co", it.ID, 1))
	got, err := r.Get(ctx, "a@b.co", it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rye flour", got.Name)
	assert.Equal(t, 1, got.Quantity)

	require.NoError(t, r.Delete(ctx, "a@b.co", it.ID))
	_, err = r.Get(ctx, "a@b.co", it.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, r.SetQuantity(ctx, "a@b.co", it.ID, 2), common.ErrorNotFound)
}

func TestSetQuantity_NegativeRejectedByStore(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	it := &models.Item{Name: "Flour", Quantity: 0, Owner: "a@b.co"}
	require.NoError(t, r.Create(ctx, it))

	err := r.SetQuantity(ctx, "a@b.co", it.ID, -1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestListByOwner_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, quantity, user_email FROM items")).
		WithArgs("a@b.co").
		WillReturnError(errors.New("boom"))

	_, err = NewSQLiteRepository(db).ListByOwner(context.Background(), "a@b.co")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list items")
	require.NoError(t, mock.ExpectationsWereMet())
}
