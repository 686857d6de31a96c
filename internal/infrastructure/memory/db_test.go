package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

func TestStoreRepo_FindOrCreateByName_Concurrente(t *testing.T) {
	db := New()
	stores := db.Repos().Stores
	ctx := context.Background()

	const workers = 32
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			st, err := stores.FindOrCreateByName(ctx, "Super Norte", time.Now())
			require.NoError(t, err)
			ids[i] = st.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, db.data.stores, 1)
	assert.False(t, db.data.stores[ids[0]].Verified)
}

func TestStoreRepo_NombreDistingueMayusculas(t *testing.T) {
	stores := New().Repos().Stores
	ctx := context.Background()

	a, err := stores.FindOrCreateByName(ctx, "Tienda", time.Now())
	require.NoError(t, err)
	b, err := stores.FindOrCreateByName(ctx, "tienda", time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPriceRepo_Resolve_UnaSolaTransicion(t *testing.T) {
	db := New()
	prices := db.Repos().Prices
	ctx := context.Background()
	p := &entity.Price{ID: uuid.NewString(), Amount: decimal.NewFromInt(5), State: entity.PriceStatePending, RegisteredAt: time.Now()}
	require.NoError(t, prices.Create(ctx, p))

	const workers = 16
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := entity.PriceStateVerified
			if i%2 == 1 {
				to = entity.PriceStateRejected
			}
			ok, err := prices.Resolve(ctx, p.ID, to, "rev")
			require.NoError(t, err)
			if ok {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, won)

	ok, err := prices.Resolve(ctx, "no-existe", entity.PriceStateVerified, "rev")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDB_Run_RollbackDescartaCambios(t *testing.T) {
	db := New()
	ctx := context.Background()
	u := &entity.User{ID: uuid.NewString(), Email: "a@b.co", Role: entity.RoleUsuario}
	require.NoError(t, db.Repos().Users.Create(ctx, u))

	boom := errors.New("boom")
	err := db.Run(ctx, func(r repository.TxRepos) error {
		_, err := r.Users.AddPoints(ctx, u.ID, 20)
		require.NoError(t, err)
		require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Leche"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := db.Repos().Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Points)
	prod, err := db.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, prod)
}

func TestProductRepo_BarcodeDuplicado(t *testing.T) {
	products := New().Repos().Products
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "1", Barcode: "779", Name: "A"}))
	err := products.Create(ctx, &entity.Product{ID: "2", Barcode: "779", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// sin código no hay unicidad
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "3", Name: "C"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "4", Name: "D"}))
}

func TestProductRepo_Search(t *testing.T) {
	products := New().Repos().Products
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "1", Barcode: "111", Name: "Leche Entera", Brand: "Serenísima", CreatedAt: now}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "2", Barcode: "222", Name: "Yerba", Brand: "Playadito", CreatedAt: now.Add(time.Second)}))

	got, err := products.Search(ctx, "LECHE", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got, err = products.Search(ctx, "SERENÍSIMA", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = products.Search(ctx, "222", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got, err = products.Search(ctx, "e", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProductRepo_Search_CodigoExactoSobreviveAlLimite(t *testing.T) {
	products := New().Repos().Products
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "viejo", Barcode: "7790", Name: "Aceite", Brand: "Natura", CreatedAt: now}))
	for i := 0; i < 25; i++ {
		require.NoError(t, products.Create(ctx, &entity.Product{
			ID: uuid.NewString(), Name: "Combo 7790", Brand: "Genérica", CreatedAt: now.Add(time.Duration(i+1) * time.Second),
		}))
	}

	got, err := products.Search(ctx, "7790", 20)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, "viejo", got[0].ID)
	// el resto sigue de más nuevo a más viejo
	assert.True(t, got[1].CreatedAt.After(got[2].CreatedAt))
}

func TestUserRepo_AddPoints(t *testing.T) {
	users := New().Repos().Users
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "x@y.co"}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = users.AddPoints(ctx, "u1", 10)
		}()
	}
	wg.Wait()

	u, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.Points)

	ok, err := users.AddPoints(ctx, "nadie", 10)
	require.NoError(t, err)
	assert.False(t, ok)

	err = users.Create(ctx, &entity.User{ID: "u2", Email: "X@Y.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
