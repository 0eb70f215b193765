package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/repository"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

func uniqueViolation(constraint string) error {
	return fmt.Errorf("fake store: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraint})
}

// fakeUserRepo mimics the users table, including its unique constraints.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  []model.User
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (r *fakeUserRepo) WithDB(db.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) CreateUser(_ context.Context, params repository.CreateUserParams) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.User{}, r.err
	}

	for _, u := range r.users {
		if u.Username == params.Username {
			return model.User{}, uniqueViolation("users_username_key")
		}
		if u.Email == params.Email {
			return model.User{}, uniqueViolation("users_email_key")
		}
	}

	now := time.Now()
	u := model.User{
		ID:           r.nextID,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.User{}, r.err
	}

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by id: %w", pgx.ErrNoRows)
}

func (r *fakeUserRepo) GetUserByIdentifier(_ context.Context, identifier string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return model.User{}, r.err
	}

	for _, u := range r.users {
		if u.Username == identifier {
			return u, nil
		}
	}
	for _, u := range r.users {
		if u.Email == identifier {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by identifier: %w", pgx.ErrNoRows)
}

func (r *fakeUserRepo) UserExists(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}

	return slices.ContainsFunc(r.users, func(u model.User) bool {
		return u.Username == username || u.Email == email
	}), nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakeItemRepo mimics the inventory table: sku is unique across owners.
type fakeItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []model.InventoryItem
	calls  int
	err    error
	clock  time.Time
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{nextID: 1, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeItemRepo) WithDB(db.DB) repository.InventoryItemRepository { return r }

func (r *fakeItemRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakeItemRepo) ListItems(_ context.Context, userID int64) ([]model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}

	var out []model.InventoryItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b model.InventoryItem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return out, nil
}

func (r *fakeItemRepo) GetItem(_ context.Context, userID, itemID int64) (model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return model.InventoryItem{}, r.err
	}

	for _, it := range r.items {
		if it.ID == itemID && it.UserID == userID {
			return it, nil
		}
	}
	return model.InventoryItem{}, fmt.Errorf("get item: %w", pgx.ErrNoRows)
}

func (r *fakeItemRepo) CreateItem(_ context.Context, userID int64, p repository.InventoryItemParams) (model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return model.InventoryItem{}, r.err
	}

	for _, it := range r.items {
		if it.Sku == p.Sku {
			return model.InventoryItem{}, uniqueViolation("inventory_sku_key")
		}
	}

	now := r.tick()
	it := paramsToItem(p)
	it.ID = r.nextID
	it.UserID = userID
	it.CreatedAt = now
	it.UpdatedAt = now
	r.nextID++
	r.items = append(r.items, it)
	return it, nil
}

func (r *fakeItemRepo) UpdateItem(_ context.Context, userID, itemID int64, p repository.InventoryItemParams) (model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return model.InventoryItem{}, r.err
	}

	idx := slices.IndexFunc(r.items, func(it model.InventoryItem) bool {
		return it.ID == itemID && it.UserID == userID
	})
	if idx < 0 {
		return model.InventoryItem{}, fmt.Errorf("update item: %w", pgx.ErrNoRows)
	}
	for _, it := range r.items {
		if it.Sku == p.Sku && it.ID != itemID {
			return model.InventoryItem{}, uniqueViolation("inventory_sku_key")
		}
	}

	old := r.items[idx]
	it := paramsToItem(p)
	it.ID = old.ID
	it.UserID = old.UserID
	it.CreatedAt = old.CreatedAt
	it.UpdatedAt = r.tick()
	r.items[idx] = it
	return it, nil
}

func (r *fakeItemRepo) DeleteItem(_ context.Context, userID, itemID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return false, r.err
	}

	before := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(it model.InventoryItem) bool {
		return it.ID == itemID && it.UserID == userID
	})
	return len(r.items) < before, nil
}

func (r *fakeItemRepo) snapshot() []model.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items)
}

func (r *fakeItemRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func paramsToItem(p repository.InventoryItemParams) model.InventoryItem {
	return model.InventoryItem{
		Name:          p.Name,
		Description:   p.Description,
		Quantity:      p.Quantity,
		UnitPrice:     p.UnitPrice,
		Category:      p.Category,
		Supplier:      p.Supplier,
		MinStockLevel: p.MinStockLevel,
		Location:      p.Location,
		Sku:           p.Sku,
	}
}

var errStoreDown = errors.New("connection refused")
