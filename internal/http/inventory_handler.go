package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/service"
	"github.com/tuanvumaihuynh/inventory-tracker/pkg/lenient"
)

// itemRequest is the body of create and update. Numeric fields are lenient.
type itemRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Quantity      lenient.Int     `json:"quantity"`
	UnitPrice     lenient.Decimal `json:"unit_price"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
	MinStockLevel lenient.Int     `json:"min_stock_level"`
	Location      string          `json:"location"`
	Sku           string          `json:"sku"`
}

func (req itemRequest) params() service.ItemParams {
	return service.ItemParams{
		Name:          req.Name,
		Description:   req.Description,
		Quantity:      int64(req.Quantity),
		UnitPrice:     req.UnitPrice.Decimal,
		Category:      req.Category,
		Supplier:      req.Supplier,
		MinStockLevel: int64(req.MinStockLevel),
		Location:      req.Location,
		Sku:           req.Sku,
	}
}

type itemResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Quantity      int       `json:"quantity"`
	UnitPrice     string    `json:"unit_price"`
	Category      string    `json:"category"`
	Supplier      string    `json:"supplier"`
	MinStockLevel int       `json:"min_stock_level"`
	Location      string    `json:"location"`
	Sku           string    `json:"sku"`
	UserID        int64     `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toItemResponse(it model.InventoryItem) itemResponse {
	return itemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Description:   it.Description,
		Quantity:      it.Quantity,
		UnitPrice:     it.UnitPrice.StringFixed(2),
		Category:      it.Category,
		Supplier:      it.Supplier,
		MinStockLevel: it.MinStockLevel,
		Location:      it.Location,
		Sku:           it.Sku,
		UserID:        it.UserID,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
}

type itemEnvelope struct {
	Item itemResponse `json:"item"`
}

type itemMutationResponse struct {
	Message string       `json:"message"`
	Item    itemResponse `json:"item"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type inventoryHandler struct {
	*Service
	inventorySvc service.InventoryService
}

func newInventoryHandler(s *Service, inventorySvc service.InventoryService) *inventoryHandler {
	return &inventoryHandler{
		Service:      s,
		inventorySvc: inventorySvc,
	}
}

func identity(r *http.Request) (auth.Identity, error) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		return auth.Identity{}, apperr.ErrMissingToken
	}
	return id, nil
}

func (h *inventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}

	items, err := h.inventorySvc.ListItems(r.Context(), id)
	if err != nil {
		return fmt.Errorf("inventory service list items: %w", err)
	}

	res := itemListResponse{Items: make([]itemResponse, 0, len(items))}
	for _, it := range items {
		res.Items = append(res.Items, toItemResponse(it))
	}

	h.writeJSON(w, r, http.StatusOK, res)
	return nil
}

func (h *inventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	itemID, err := pathID(r)
	if err != nil {
		return err
	}

	item, err := h.inventorySvc.GetItem(r.Context(), id, itemID)
	if err != nil {
		return fmt.Errorf("inventory service get item: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, itemEnvelope{Item: toItemResponse(item)})
	return nil
}

func (h *inventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, err := h.inventorySvc.CreateItem(r.Context(), id, req.params())
	if err != nil {
		return fmt.Errorf("inventory service create item: %w", err)
	}

	h.writeJSON(w, r, http.StatusCreated, itemMutationResponse{
		Message: "Inventory item created successfully",
		Item:    toItemResponse(item),
	})
	return nil
}

func (h *inventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	itemID, err := pathID(r)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	item, err := h.inventorySvc.UpdateItem(r.Context(), id, itemID, req.params())
	if err != nil {
		return fmt.Errorf("inventory service update item: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, itemMutationResponse{
		Message: "Inventory item updated successfully",
		Item:    toItemResponse(item),
	})
	return nil
}

func (h *inventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	itemID, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.inventorySvc.DeleteItem(r.Context(), id, itemID); err != nil {
		return fmt.Errorf("inventory service delete item: %w", err)
	}

	h.writeJSON(w, r, http.StatusOK, messageResponse{Message: "Inventory item deleted successfully"})
	return nil
}
