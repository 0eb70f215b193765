package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

// InventoryItemParams carries every writable column. Updates replace all of
// them.
type InventoryItemParams struct {
	Name          string
	Description   string
	Quantity      int
	UnitPrice     decimal.Decimal
	Category      string
	Supplier      string
	MinStockLevel int
	Location      string
	Sku           string
}

// Every method is scoped by owner: rows of other users are never read or
// written.
type InventoryItemRepository interface {
	WithDB(db db.DB) InventoryItemRepository
	ListItems(ctx context.Context, userID int64) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, userID, itemID int64) (model.InventoryItem, error)
	CreateItem(ctx context.Context, userID int64, params InventoryItemParams) (model.InventoryItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, params InventoryItemParams) (model.InventoryItem, error)
	// DeleteItem reports whether a row was removed.
	DeleteItem(ctx context.Context, userID, itemID int64) (bool, error)
}

type inventoryItemRepository struct {
	db db.DB
}

func NewInventoryItemRepository(db db.DB) InventoryItemRepository {
	return &inventoryItemRepository{db: db}
}

func (r inventoryItemRepository) WithDB(db db.DB) InventoryItemRepository {
	return &inventoryItemRepository{db: db}
}

// Nullable columns are coalesced so rows written by older schemas still scan.
const inventoryItemColumns = `
	id,
	name,
	COALESCE(description, '')    AS description,
	COALESCE(quantity, 0)        AS quantity,
	COALESCE(unit_price, 0)      AS unit_price,
	COALESCE(category, '')       AS category,
	COALESCE(supplier, '')       AS supplier,
	COALESCE(min_stock_level, 0) AS min_stock_level,
	COALESCE(location, '')       AS location,
	sku,
	user_id,
	created_at,
	updated_at`

type inventoryItemRow struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	Description   string         `db:"description"`
	Quantity      int            `db:"quantity"`
	UnitPrice     pgtype.Numeric `db:"unit_price"`
	Category      string         `db:"category"`
	Supplier      string         `db:"supplier"`
	MinStockLevel int            `db:"min_stock_level"`
	Location      string         `db:"location"`
	Sku           string         `db:"sku"`
	UserID        int64          `db:"user_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r inventoryItemRepository) ListItems(ctx context.Context, userID int64) ([]model.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryItemColumns+`
		FROM inventory
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC`,
		pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	itemRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[inventoryItemRow])
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]model.InventoryItem, 0, len(itemRows))
	for _, row := range itemRows {
		items = append(items, rowToModelItem(row))
	}
	return items, nil
}

func (r inventoryItemRepository) GetItem(ctx context.Context, userID, itemID int64) (model.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryItemColumns+`
		FROM inventory
		WHERE id = @id AND user_id = @user_id`,
		pgx.NamedArgs{"id": itemID, "user_id": userID})
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("get item: %w", err)
	}

	item, err := collectItem(rows)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r inventoryItemRepository) CreateItem(ctx context.Context, userID int64, params InventoryItemParams) (model.InventoryItem, error) {
	args := paramsToNamedArgs(params)
	args["user_id"] = userID

	rows, err := r.db.Query(ctx, `
		INSERT INTO inventory (
			name, description, quantity, unit_price, category,
			supplier, min_stock_level, location, sku, user_id
		)
		VALUES (
			@name, @description, @quantity, @unit_price, @category,
			@supplier, @min_stock_level, @location, @sku, @user_id
		)
		RETURNING `+inventoryItemColumns,
		args)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("insert item: %w", err)
	}

	item, err := collectItem(rows)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

func (r inventoryItemRepository) UpdateItem(ctx context.Context, userID, itemID int64, params InventoryItemParams) (model.InventoryItem, error) {
	args := paramsToNamedArgs(params)
	args["id"] = itemID
	args["user_id"] = userID

	rows, err := r.db.Query(ctx, `
		UPDATE inventory
		SET
			name            = @name,
			description     = @description,
			quantity        = @quantity,
			unit_price      = @unit_price,
			category        = @category,
			supplier        = @supplier,
			min_stock_level = @min_stock_level,
			location        = @location,
			sku             = @sku,
			updated_at      = NOW()
		WHERE id = @id AND user_id = @user_id
		RETURNING `+inventoryItemColumns,
		args)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("update item: %w", err)
	}

	item, err := collectItem(rows)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (r inventoryItemRepository) DeleteItem(ctx context.Context, userID, itemID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE id = @id AND user_id = @user_id`,
		pgx.NamedArgs{"id": itemID, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func paramsToNamedArgs(params InventoryItemParams) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":            params.Name,
		"description":     params.Description,
		"quantity":        params.Quantity,
		"unit_price":      decimalToNumeric(params.UnitPrice),
		"category":        params.Category,
		"supplier":        params.Supplier,
		"min_stock_level": params.MinStockLevel,
		"location":        params.Location,
		"sku":             params.Sku,
	}
}

func collectItem(rows pgx.Rows) (model.InventoryItem, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[inventoryItemRow])
	if err != nil {
		return model.InventoryItem{}, err
	}
	return rowToModelItem(row), nil
}

func rowToModelItem(row inventoryItemRow) model.InventoryItem {
	return model.InventoryItem{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Quantity:      row.Quantity,
		UnitPrice:     numericToDecimal(row.UnitPrice),
		Category:      row.Category,
		Supplier:      row.Supplier,
		MinStockLevel: row.MinStockLevel,
		Location:      row.Location,
		Sku:           row.Sku,
		UserID:        row.UserID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
