package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/application/rewards"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// UseCase casos de uso del catálogo: productos y comercios.
type UseCase struct {
	tx       repository.TxRunner
	repos    repository.TxRepos
	identity *identity.Service
	metrics  ports.Metrics
	rewards  *rewards.Ledger
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, repos repository.TxRepos, ident *identity.Service, metrics ports.Metrics, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:       tx,
		repos:    repos,
		identity: ident,
		metrics:  metrics,
		rewards:  rewards.NewLedger(repos.Users, metrics, log),
		log:      log.Named("catalog"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// FindProductByBarcode busca por código exacto. ErrNotFound si no existe.
func (uc *UseCase) FindProductByBarcode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: código de barras vacío", domain.ErrInvalidInput)
	}
	product, err := uc.repos.Products.GetByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// CreateProduct registra un producto y acredita PointsNewProduct al creador en la misma transacción.
// ErrDuplicateBarcode si el código ya existe; en ese caso no se acreditan puntos.
func (uc *UseCase) CreateProduct(ctx context.Context, callerID string, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	caller, err := uc.identity.Profile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	brand := strings.TrimSpace(in.Brand)
	if name == "" || brand == "" {
		return nil, fmt.Errorf("%w: nombre y marca son obligatorios", domain.ErrInvalidInput)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultCategory
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Barcode:   strings.TrimSpace(in.Barcode),
		Name:      name,
		Brand:     brand,
		Category:  category,
		CreatedBy: caller.ID,
		CreatedAt: uc.now().UTC(),
	}

	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		return rewards.Credit(ctx, r.Users, caller.ID, rewards.PointsNewProduct)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.ProductCreated()
	uc.rewards.Credited(caller.ID, rewards.PointsNewProduct)
	uc.log.Info().
		Str("product_id", product.ID).
		Str("user_id", caller.ID).
		Int64("points", rewards.PointsNewProduct).
		Msg("producto creado")

	return &dto.CreateProductResponse{
		Product:      dto.FromProduct(product),
		PointsEarned: rewards.PointsNewProduct,
	}, nil
}

// FindOrCreateStoreByName obtiene el comercio con ese nombre exacto o lo crea sin verificar.
func (uc *UseCase) FindOrCreateStoreByName(ctx context.Context, callerID, name string) (*dto.StoreResponse, error) {
	if _, err := uc.identity.Profile(ctx, callerID); err != nil {
		return nil, err
	}
	store, err := uc.findOrCreateStore(ctx, uc.repos.Stores, name)
	if err != nil {
		return nil, err
	}
	out := dto.FromStore(store)
	return &out, nil
}

func (uc *UseCase) findOrCreateStore(ctx context.Context, stores repository.StoreRepository, name string) (*entity.Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: nombre de comercio vacío", domain.ErrInvalidInput)
	}
	return stores.FindOrCreateByName(ctx, name, uc.now().UTC())
}

// ListVerifiedStores comercios verificados.
func (uc *UseCase) ListVerifiedStores(ctx context.Context) (*dto.StoreListResponse, error) {
	stores, err := uc.repos.Stores.ListVerified(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.StoreListResponse{Items: make([]dto.StoreResponse, 0, len(stores))}
	for _, s := range stores {
		out.Items = append(out.Items, dto.FromStore(s))
	}
	return out, nil
}

// CreateStore alta de un comercio ya verificado. Solo revisores.
func (uc *UseCase) CreateStore(ctx context.Context, callerID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if _, err := uc.identity.RequireReviewer(ctx, callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: nombre de comercio vacío", domain.ErrInvalidInput)
	}
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   strings.TrimSpace(in.Address),
		Verified:  true,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.repos.Stores.Create(ctx, store); err != nil {
		return nil, err
	}
	out := dto.FromStore(store)
	return &out, nil
}

// VerifyStore marca como verificado un comercio creado por un contribuyente. Solo revisores.
func (uc *UseCase) VerifyStore(ctx context.Context, callerID, storeID string) (*dto.StoreResponse, error) {
	reviewer, err := uc.identity.RequireReviewer(ctx, callerID)
	if err != nil {
		return nil, err
	}
	ok, err := uc.repos.Stores.MarkVerified(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	store, err := uc.repos.Stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	uc.log.Info().Str("store_id", storeID).Str("reviewer_id", reviewer.ID).Msg("comercio verificado")
	out := dto.FromStore(store)
	return &out, nil
}
