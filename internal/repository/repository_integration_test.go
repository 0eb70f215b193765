//go:build integration

package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/tuanvumaihuynh/inventory-tracker/internal/config"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/model"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/repository"
	"github.com/tuanvumaihuynh/inventory-tracker/internal/storage/db"
)

type RepositoryIntegrationTestSuite struct {
	suite.Suite

	ctx    context.Context
	pgc    *postgres.PostgresContainer
	client *db.Client
	users  repository.UserRepository
	items  repository.InventoryItemRepository
}

func (s *RepositoryIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()

	pgc, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("inventory"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.pgc = pgc

	connStr, err := pgc.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := db.NewPgxPool(s.ctx, config.Postgres{
		URL:             connStr,
		MaxConns:        4,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	})
	s.Require().NoError(err)

	s.client = db.NewClient(pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().True(s.client.TestConnection(s.ctx))
	s.Require().NoError(s.client.EnsureSchema(s.ctx))

	s.users = repository.NewUserRepository(s.client)
	s.items = repository.NewInventoryItemRepository(s.client)
}

func (s *RepositoryIntegrationTestSuite) TearDownSuite() {
	s.client.Close()
	s.NoError(s.pgc.Terminate(s.ctx))
}

func (s *RepositoryIntegrationTestSuite) SetupTest() {
	_, err := s.client.Exec(s.ctx, `TRUNCATE users RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationTestSuite) createUser(name string) model.User {
	u, err := s.users.CreateUser(s.ctx, repository.CreateUserParams{
		Username:     name,
		Email:        name + "@x.com",
		PasswordHash: "hash",
	})
	s.Require().NoError(err)
	return u
}

func (s *RepositoryIntegrationTestSuite) createItem(owner model.User, sku string) model.InventoryItem {
	it, err := s.items.CreateItem(s.ctx, owner.ID, repository.InventoryItemParams{Name: "item " + sku, Sku: sku})
	s.Require().NoError(err)
	return it
}

func (s *RepositoryIntegrationTestSuite) TestEnsureSchemaIsRepeatable() {
	s.NoError(s.client.EnsureSchema(s.ctx))
}

func (s *RepositoryIntegrationTestSuite) TestUsers() {
	alice := s.createUser("alice")

	byName, err := s.users.GetUserByIdentifier(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(alice.ID, byName.ID)

	byEmail, err := s.users.GetUserByIdentifier(s.ctx, "alice@x.com")
	s.Require().NoError(err)
	s.Equal(alice.ID, byEmail.ID)

	exists, err := s.users.UserExists(s.ctx, "someone", "alice@x.com")
	s.Require().NoError(err)
	s.True(exists)

	_, err = s.users.CreateUser(s.ctx, repository.CreateUserParams{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	s.True(db.IsUniqueViolation(err))
	constraint, _ := db.UniqueViolationConstraint(err)
	s.Equal("users_username_key", constraint)

	_, err = s.users.GetUserByID(s.ctx, 999)
	s.True(db.IsNoRows(err))
}

func (s *RepositoryIntegrationTestSuite) TestItemsAreOwnerScoped() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	first := s.createItem(alice, "A-1")
	second := s.createItem(alice, "A-2")
	s.createItem(bob, "B-1")

	list, err := s.items.ListItems(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)

	_, err = s.items.GetItem(s.ctx, bob.ID, first.ID)
	s.True(db.IsNoRows(err))

	_, err = s.items.UpdateItem(s.ctx, bob.ID, first.ID, repository.InventoryItemParams{Name: "x", Sku: "A-1"})
	s.True(db.IsNoRows(err))

	deleted, err := s.items.DeleteItem(s.ctx, bob.ID, first.ID)
	s.Require().NoError(err)
	s.False(deleted)

	deleted, err = s.items.DeleteItem(s.ctx, alice.ID, first.ID)
	s.Require().NoError(err)
	s.True(deleted)
}

// sku is unique across all users, not per owner.
func (s *RepositoryIntegrationTestSuite) TestSkuIsGloballyUnique() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	s.createItem(alice, "SHARED")

	_, err := s.items.CreateItem(s.ctx, bob.ID, repository.InventoryItemParams{Name: "mine", Sku: "SHARED"})
	s.True(db.IsUniqueViolation(err))
	constraint, _ := db.UniqueViolationConstraint(err)
	s.Equal("inventory_sku_key", constraint)
}

func (s *RepositoryIntegrationTestSuite) TestUpdateReplacesRow() {
	alice := s.createUser("alice")

	it, err := s.items.CreateItem(s.ctx, alice.ID, repository.InventoryItemParams{
		Name:      "Bolt",
		Sku:       "B-1",
		Quantity:  4,
		UnitPrice: decimal.RequireFromString("12.50"),
		Location:  "A1",
	})
	s.Require().NoError(err)
	s.Equal("12.50", it.UnitPrice.StringFixed(2))

	updated, err := s.items.UpdateItem(s.ctx, alice.ID, it.ID, repository.InventoryItemParams{Name: "Bolt M6", Sku: "B-1"})
	s.Require().NoError(err)

	s.Equal("Bolt M6", updated.Name)
	s.Equal(0, updated.Quantity)
	s.Empty(updated.Location)
	s.True(updated.UnitPrice.IsZero())
	s.Equal(it.CreatedAt, updated.CreatedAt)
	s.False(updated.UpdatedAt.Before(it.UpdatedAt))
}

func (s *RepositoryIntegrationTestSuite) TestDeletingUserCascades() {
	alice := s.createUser("alice")
	s.createItem(alice, "A-1")

	_, err := s.client.Exec(s.ctx, `DELETE FROM users WHERE id = $1`, alice.ID)
	s.Require().NoError(err)

	var count int
	s.Require().NoError(s.client.QueryRow(s.ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count))
	s.Zero(count)
}

func (s *RepositoryIntegrationTestSuite) TestWithTxRollsBack() {
	alice := s.createUser("alice")

	err := s.client.WithTx(s.ctx, func(tx db.DB) error {
		if _, err := s.items.WithDB(tx).CreateItem(s.ctx, alice.ID, repository.InventoryItemParams{Name: "a", Sku: "T-1"}); err != nil {
			return err
		}
		_, err := s.items.WithDB(tx).CreateItem(s.ctx, alice.ID, repository.InventoryItemParams{Name: "b", Sku: "T-1"})
		return err
	})
	s.True(db.IsUniqueViolation(err))

	list, err := s.items.ListItems(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Empty(list)
}

func TestRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(RepositoryIntegrationTestSuite))
}
