package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Precios-api/internal/application/apptest"
	"github.com/jhoicas/Precios-api/internal/application/catalog"
	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/application/rewards"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
)

func newUseCase(t *testing.T) (*catalog.UseCase, *apptest.Fixture) {
	t.Helper()
	f := apptest.New(t)
	uc := catalog.NewUseCase(f.DB, f.Repos, f.Identity, ports.NopMetrics{}, f.Log).WithClock(f.Clock.Now)
	return uc, f
}

func TestCreateProduct_AcreditaVeintePuntos(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	u := f.User(t, entity.RoleUsuario)

	out, err := uc.CreateProduct(ctx, u.ID, dto.CreateProductRequest{Barcode: "7790001", Name: "Leche", Brand: "La Vaca"})
	require.NoError(t, err)
	assert.Equal(t, rewards.PointsNewProduct, out.PointsEarned)
	assert.Equal(t, entity.DefaultCategory, out.Product.Category)
	assert.Equal(t, u.ID, out.Product.CreatedBy)
	assert.Equal(t, int64(20), f.Points(t, u.ID))

	found, err := uc.FindProductByBarcode(ctx, "7790001")
	require.NoError(t, err)
	assert.Equal(t, out.Product.ID, found.ID)
}

func TestCreateProduct_BarcodeDuplicadoNoAcredita(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	a := f.User(t, entity.RoleUsuario)
	b := f.User(t, entity.RoleUsuario)

	_, err := uc.CreateProduct(ctx, a.ID, dto.CreateProductRequest{Barcode: "123", Name: "Yerba", Brand: "X"})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, b.ID, dto.CreateProductRequest{Barcode: "123", Name: "Otra", Brand: "Y"})
	require.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(0), f.Points(t, b.ID))

	list, err := f.Repos.Products.Search(ctx, "123", 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateProduct_ConcurrenteMismoBarcode(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	u := f.User(t, entity.RoleUsuario)

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		oks  int
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateProduct(ctx, u.ID, dto.CreateProductRequest{Barcode: "999", Name: "Arroz", Brand: "Z"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				oks++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, oks)
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
	}
	assert.Equal(t, rewards.PointsNewProduct, f.Points(t, u.ID))
}

func TestCreateProduct_Validaciones(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	u := f.User(t, entity.RoleUsuario)

	_, err := uc.CreateProduct(ctx, u.ID, dto.CreateProductRequest{Name: "  ", Brand: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateProduct(ctx, "", dto.CreateProductRequest{Name: "A", Brand: "B"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.CreateProduct(ctx, "desconocido", dto.CreateProductRequest{Name: "A", Brand: "B"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFindProductByBarcode_NoExiste(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.FindProductByBarcode(context.Background(), "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetProduct(context.Background(), "000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindOrCreateStoreByName_ConcurrenteUnSoloComercio(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	u := f.User(t, entity.RoleUsuario)

	const workers = 25
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := uc.FindOrCreateStoreByName(ctx, u.ID, "Almacén Don Pepe")
			if assert.NoError(t, err) {
				ids[i] = s.ID
			}
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}

	s, err := f.Repos.Stores.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, s.Verified)
}

func TestStores_AltaYVerificacionSoloRevisores(t *testing.T) {
	uc, f := newUseCase(t)
	ctx := context.Background()
	user := f.User(t, entity.RoleUsuario)
	sup := f.User(t, entity.RoleSupervisor)

	_, err := uc.CreateStore(ctx, user.ID, dto.CreateStoreRequest{Name: "Coto"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	created, err := uc.CreateStore(ctx, sup.ID, dto.CreateStoreRequest{Name: "Coto", Address: "Av. Siempre Viva 742"})
	require.NoError(t, err)
	assert.True(t, created.Verified)

	_, err = uc.CreateStore(ctx, sup.ID, dto.CreateStoreRequest{Name: "Coto"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	adhoc, err := uc.FindOrCreateStoreByName(ctx, user.ID, "Chino de la esquina")
	require.NoError(t, err)

	_, err = uc.VerifyStore(ctx, user.ID, adhoc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	verified, err := uc.VerifyStore(ctx, sup.ID, adhoc.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = uc.VerifyStore(ctx, sup.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListVerifiedStores(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Chino de la esquina", list.Items[0].Name)
	assert.Equal(t, "Coto", list.Items[1].Name)
}
