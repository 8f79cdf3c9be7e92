package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/dbx"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts item and sets its ID.
func (r *SQLiteRepository) Create(ctx context.Context, item *models.Item) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO items (name, quantity, user_email) VALUES (?, ?, ?)
	`, item.Name, item.Quantity, item.Owner)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, owner string, id int64) (*models.Item, error) {
	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, quantity, user_email FROM items WHERE id = ? AND user_email = ?
	`, id, owner).Scan(&item.ID, &item.Name, &item.Quantity, &item.Owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

// ListByOwner returns the owner's items in insertion order.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, owner string) ([]*models.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, quantity, user_email FROM items WHERE user_email = ? ORDER BY id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Owner); err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, item *models.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET name = ?, quantity = ? WHERE id = ? AND user_email = ?
	`, item.Name, item.Quantity, item.ID, item.Owner)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) SetQuantity(ctx context.Context, owner string, id int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET quantity = ? WHERE id = ? AND user_email = ?
	`, quantity, id, owner)
	if err != nil {
		return fmt.Errorf("failed to set quantity of item %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ? AND user_email = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
