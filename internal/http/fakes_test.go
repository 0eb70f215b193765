package http_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/auth"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/service"
)

var errStoreDown = errors.New("connection refused")

type fakeAuthService struct {
	mu       sync.Mutex
	tokens   service.TokenIssuer
	users    []model.User
	password map[int64]string
	calls    int
}

func newFakeAuthService(tokens service.TokenIssuer) *fakeAuthService {
	return &fakeAuthService{tokens: tokens, password: map[int64]string{}}
}

func (s *fakeAuthService) Register(_ context.Context, p service.RegisterParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if p.Username == "" || p.Email == "" || len(p.Password) < 6 {
		return model.User{}, apperr.ValidationErr.WithDetails("Valid email is required")
	}
	for _, u := range s.users {
		if u.Username == p.Username || u.Email == p.Email {
			return model.User{}, apperr.ErrUserAlreadyExists
		}
	}

	u := model.User{
		ID:           int64(len(s.users) + 1),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: "hashed:" + p.Password,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.users = append(s.users, u)
	s.password[u.ID] = p.Password
	return u, nil
}

func (s *fakeAuthService) Login(_ context.Context, p service.LoginParams) (service.LoginResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for _, u := range s.users {
		if (u.Username == p.Identifier || u.Email == p.Identifier) && s.password[u.ID] == p.Password {
			token, err := s.tokens.Issue(u.ID)
			if err != nil {
				return service.LoginResult{}, err
			}
			return service.LoginResult{Token: token, User: u}, nil
		}
	}
	return service.LoginResult{}, apperr.ErrInvalidCredentials
}

func (s *fakeAuthService) GetProfile(_ context.Context, id auth.Identity) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for _, u := range s.users {
		if u.ID == id.UserID {
			return u, nil
		}
	}
	return model.User{}, apperr.ErrUserNotFound
}

func (s *fakeAuthService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeInventoryService keeps items per owner; sku is unique across owners.
type fakeInventoryService struct {
	mu     sync.Mutex
	nextID int64
	items  []model.InventoryItem
	calls  int
	err    error
	panics bool
}

func newFakeInventoryService() *fakeInventoryService {
	return &fakeInventoryService{nextID: 1}
}

func (s *fakeInventoryService) enter() error {
	s.calls++
	if s.panics {
		panic("inventory exploded")
	}
	return s.err
}

func (s *fakeInventoryService) ListItems(_ context.Context, id auth.Identity) ([]model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return nil, err
	}

	var out []model.InventoryItem
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].UserID == id.UserID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *fakeInventoryService) GetItem(_ context.Context, id auth.Identity, itemID int64) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return model.InventoryItem{}, err
	}

	for _, it := range s.items {
		if it.ID == itemID && it.UserID == id.UserID {
			return it, nil
		}
	}
	return model.InventoryItem{}, apperr.ErrItemNotFound
}

func (s *fakeInventoryService) CreateItem(_ context.Context, id auth.Identity, p service.ItemParams) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return model.InventoryItem{}, err
	}

	if err := validate(p); err != nil {
		return model.InventoryItem{}, err
	}
	for _, it := range s.items {
		if it.Sku == p.Sku {
			return model.InventoryItem{}, apperr.ErrSkuAlreadyExists
		}
	}

	it := toItem(p)
	it.ID = s.nextID
	it.UserID = id.UserID
	it.CreatedAt = time.Date(2025, 1, 1, 0, 0, int(s.nextID), 0, time.UTC)
	it.UpdatedAt = it.CreatedAt
	s.nextID++
	s.items = append(s.items, it)
	return it, nil
}

func (s *fakeInventoryService) UpdateItem(_ context.Context, id auth.Identity, itemID int64, p service.ItemParams) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return model.InventoryItem{}, err
	}

	if err := validate(p); err != nil {
		return model.InventoryItem{}, err
	}
	for i, it := range s.items {
		if it.ID == itemID && it.UserID == id.UserID {
			updated := toItem(p)
			updated.ID = it.ID
			updated.UserID = it.UserID
			updated.CreatedAt = it.CreatedAt
			updated.UpdatedAt = it.UpdatedAt.Add(time.Minute)
			s.items[i] = updated
			return updated, nil
		}
	}
	return model.InventoryItem{}, apperr.ErrItemNotFound
}

func (s *fakeInventoryService) DeleteItem(_ context.Context, id auth.Identity, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(); err != nil {
		return err
	}

	for i, it := range s.items {
		if it.ID == itemID && it.UserID == id.UserID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperr.ErrItemNotFound
}

func (s *fakeInventoryService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func validate(p service.ItemParams) error {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "Item name is required")
	}
	if p.Sku == "" {
		errs = append(errs, "SKU is required")
	}
	if len(errs) > 0 {
		return apperr.ValidationErr.WithMsg(strings.Join(errs, ", ")).WithDetails(errs...)
	}
	return nil
}

func toItem(p service.ItemParams) model.InventoryItem {
	return model.InventoryItem{
		Name:          p.Name,
		Description:   p.Description,
		Quantity:      int(p.Quantity),
		UnitPrice:     p.UnitPrice.Round(2),
		Category:      p.Category,
		Supplier:      p.Supplier,
		MinStockLevel: int(p.MinStockLevel),
		Location:      p.Location,
		Sku:           p.Sku,
	}
}

type fakeHealthChecker struct {
	healthy bool
	err     error
}

func (f fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	return f.healthy, f.err
}
