// Package apptest arma el almacén en memoria y datos de prueba para los tests de casos de uso.
package apptest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/internal/infrastructure/memory"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// Clock reloj manual; cada Now avanza un segundo para que los registros queden ordenados.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock reloj que arranca en start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now devuelve la hora actual y avanza un segundo.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

// Fixture almacén en memoria con el servicio de identidad listo.
type Fixture struct {
	DB       *memory.DB
	Repos    repository.TxRepos
	Identity *identity.Service
	Log      *logger.Logger
	Clock    *Clock
}

// New crea un fixture vacío.
func New(t *testing.T) *Fixture {
	t.Helper()
	db := memory.New()
	repos := db.Repos()
	log := logger.Nop()
	return &Fixture{
		DB:       db,
		Repos:    repos,
		Identity: identity.NewService(repos.Users, identity.Config{Attempts: 3}, log),
		Log:      log,
		Clock:    NewClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
}

// User crea un usuario con el rol dado y 0 puntos.
func (f *Fixture) User(t *testing.T, role string) *entity.User {
	t.Helper()
	id := uuid.NewString()
	u := &entity.User{ID: id, Email: id + "@precios.test", Name: "user-" + id[:8], Role: role, CreatedAt: f.Clock.Now()}
	require.NoError(t, f.Repos.Users.Create(context.Background(), u))
	return u
}

// Product crea un producto.
func (f *Fixture) Product(t *testing.T, name, brand, barcode string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.NewString(),
		Barcode:   barcode,
		Name:      name,
		Brand:     brand,
		Category:  entity.DefaultCategory,
		CreatedAt: f.Clock.Now(),
	}
	require.NoError(t, f.Repos.Products.Create(context.Background(), p))
	return p
}

// Store crea un comercio.
func (f *Fixture) Store(t *testing.T, name string, verified bool) *entity.Store {
	t.Helper()
	s := &entity.Store{ID: uuid.NewString(), Name: name, Verified: verified, CreatedAt: f.Clock.Now()}
	require.NoError(t, f.Repos.Stores.Create(context.Background(), s))
	return s
}

// Price crea un precio en el estado dado con registro en at.
func (f *Fixture) Price(t *testing.T, productID, storeID, userID, amount string, state entity.PriceState, at time.Time) *entity.Price {
	t.Helper()
	p := &entity.Price{
		ID:           uuid.NewString(),
		ProductID:    productID,
		StoreID:      storeID,
		UserID:       userID,
		Amount:       decimal.RequireFromString(amount),
		State:        state,
		RegisteredAt: at,
	}
	require.NoError(t, f.Repos.Prices.Create(context.Background(), p))
	return p
}

// Points saldo actual del usuario.
func (f *Fixture) Points(t *testing.T, userID string) int64 {
	t.Helper()
	u, err := f.Repos.Users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.Points
}
