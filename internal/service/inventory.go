package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/repository"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/validator"
)

// maxUnitPrice is the exclusive bound of a NUMERIC(10,2) column.
var maxUnitPrice = decimal.New(1, 8)

// ItemParams is a full inventory payload. Zero values stand for omitted
// fields: updates do not patch, they replace every column.
type ItemParams struct {
	Name          string
	Description   string
	Quantity      int64
	UnitPrice     decimal.Decimal
	Category      string
	Supplier      string
	MinStockLevel int64
	Location      string
	Sku           string
}

// InventoryService manages the items owned by the calling identity. The
// owner always comes from the identity, never from the payload.
type InventoryService interface {
	ListItems(ctx context.Context, id auth.Identity) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id auth.Identity, itemID int64) (model.InventoryItem, error)
	CreateItem(ctx context.Context, id auth.Identity, params ItemParams) (model.InventoryItem, error)
	UpdateItem(ctx context.Context, id auth.Identity, itemID int64, params ItemParams) (model.InventoryItem, error)
	DeleteItem(ctx context.Context, id auth.Identity, itemID int64) error
}

type inventoryService struct {
	itemRepo  repository.InventoryItemRepository
	validator *validator.DefaultValidator
}

func NewInventoryService(
	itemRepo repository.InventoryItemRepository,
	validator *validator.DefaultValidator,
) InventoryService {
	return &inventoryService{
		itemRepo:  itemRepo,
		validator: validator,
	}
}

func (s *inventoryService) ListItems(ctx context.Context, id auth.Identity) ([]model.InventoryItem, error) {
	items, err := s.itemRepo.ListItems(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("inventory item repository list items: %w", err)
	}
	return items, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id auth.Identity, itemID int64) (model.InventoryItem, error) {
	item, err := s.itemRepo.GetItem(ctx, id.UserID, itemID)
	if err != nil {
		if db.IsNoRows(err) {
			return model.InventoryItem{}, apperr.ErrItemNotFound
		}
		return model.InventoryItem{}, fmt.Errorf("inventory item repository get item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, id auth.Identity, params ItemParams) (model.InventoryItem, error) {
	repoParams, err := s.prepare(params)
	if err != nil {
		return model.InventoryItem{}, err
	}

	item, err := s.itemRepo.CreateItem(ctx, id.UserID, repoParams)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return model.InventoryItem{}, apperr.ErrSkuAlreadyExists.WrapParent(err)
		}
		return model.InventoryItem{}, fmt.Errorf("inventory item repository create item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id auth.Identity, itemID int64, params ItemParams) (model.InventoryItem, error) {
	repoParams, err := s.prepare(params)
	if err != nil {
		return model.InventoryItem{}, err
	}

	item, err := s.itemRepo.UpdateItem(ctx, id.UserID, itemID, repoParams)
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return model.InventoryItem{}, apperr.ErrItemNotFound
		case db.IsUniqueViolation(err):
			return model.InventoryItem{}, apperr.ErrSkuAlreadyExists.
				WithMsg("SKU already exists for another item").
				WrapParent(err)
		}
		return model.InventoryItem{}, fmt.Errorf("inventory item repository update item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id auth.Identity, itemID int64) error {
	deleted, err := s.itemRepo.DeleteItem(ctx, id.UserID, itemID)
	if err != nil {
		return fmt.Errorf("inventory item repository delete item: %w", err)
	}
	if !deleted {
		return apperr.ErrItemNotFound
	}
	return nil
}

// prepare validates params before any store call and converts them to
// repository params.
func (s *inventoryService) prepare(params ItemParams) (repository.InventoryItemParams, error) {
	if res := s.validator.ValidateInventoryItem(validator.InventoryItem{
		Name:     params.Name,
		Sku:      params.Sku,
		Category: params.Category,
		Supplier: params.Supplier,
		Location: params.Location,
	}); !res.IsValid {
		return repository.InventoryItemParams{}, validationError(res)
	}

	if !fitsInt32(params.Quantity) {
		return repository.InventoryItemParams{}, apperr.ErrValueOutOfRange.WithMsg("quantity is out of range")
	}
	if !fitsInt32(params.MinStockLevel) {
		return repository.InventoryItemParams{}, apperr.ErrValueOutOfRange.WithMsg("min_stock_level is out of range")
	}

	price := params.UnitPrice.Round(2)
	if price.Abs().GreaterThanOrEqual(maxUnitPrice) {
		return repository.InventoryItemParams{}, apperr.ErrValueOutOfRange.WithMsg("unit_price is out of range")
	}

	return repository.InventoryItemParams{
		Name:          params.Name,
		Description:   params.Description,
		Quantity:      int(params.Quantity),
		UnitPrice:     price,
		Category:      params.Category,
		Supplier:      params.Supplier,
		MinStockLevel: int(params.MinStockLevel),
		Location:      params.Location,
		Sku:           params.Sku,
	}, nil
}

func fitsInt32(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}
