package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/application/identity"
	"github.com/jhoicas/Precios-api/internal/application/ports"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
	"github.com/jhoicas/Precios-api/pkg/logger"
)

// UseCase libro de precios: alta de envíos y lecturas de la cola de revisión.
// Enviar un precio no otorga puntos; el premio llega con la aprobación.
type UseCase struct {
	repos    repository.TxRepos
	identity *identity.Service
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.TxRepos, ident *identity.Service, metrics ports.Metrics, log *logger.Logger) *UseCase {
	return &UseCase{
		repos:    repos,
		identity: ident,
		metrics:  metrics,
		log:      log.Named("ledger"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// SubmitPrice registra un precio pendiente en un comercio existente.
// ErrInvalidAmount si amount <= 0; ErrNotFound si el producto o el comercio no existen.
func (uc *UseCase) SubmitPrice(ctx context.Context, callerID string, in dto.SubmitPriceRequest) (*dto.PriceResponse, error) {
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	caller, err := uc.identity.Profile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	product, err := uc.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	store, err := uc.repos.Stores.GetByID(ctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("comercio %s: %w", in.StoreID, domain.ErrNotFound)
	}
	return uc.insert(ctx, caller.ID, product.ID, store.ID, in.Amount)
}

// SubmitPriceAtStore registra un precio nombrando el comercio; si no existe se crea sin verificar.
// El monto se valida antes de tocar el catálogo de comercios.
func (uc *UseCase) SubmitPriceAtStore(ctx context.Context, callerID string, in dto.SubmitPriceByStoreNameRequest) (*dto.PriceResponse, error) {
	if err := validAmount(in.Amount); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.StoreName) == "" {
		return nil, fmt.Errorf("%w: nombre de comercio vacío", domain.ErrInvalidInput)
	}
	caller, err := uc.identity.Profile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	product, err := uc.product(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	store, err := uc.repos.Stores.FindOrCreateByName(ctx, in.StoreName, uc.now().UTC())
	if err != nil {
		return nil, err
	}
	return uc.insert(ctx, caller.ID, product.ID, store.ID, in.Amount)
}

func (uc *UseCase) product(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func (uc *UseCase) insert(ctx context.Context, userID, productID, storeID string, amount decimal.Decimal) (*dto.PriceResponse, error) {
	price := &entity.Price{
		ID:           uuid.New().String(),
		ProductID:    productID,
		StoreID:      storeID,
		UserID:       userID,
		Amount:       amount,
		State:        entity.PriceStatePending,
		RegisteredAt: uc.now().UTC(),
	}
	if err := uc.repos.Prices.Create(ctx, price); err != nil {
		return nil, err
	}
	uc.metrics.PriceSubmitted()
	uc.log.Debug().Str("price_id", price.ID).Str("product_id", productID).Str("store_id", storeID).Msg("precio enviado")
	out := dto.FromPrice(price)
	return &out, nil
}

// ListPending cola de revisión, más recientes primero, con producto, comercio y autor.
// Las entidades relacionadas se cargan con una lectura en lote por tipo. Solo revisores.
func (uc *UseCase) ListPending(ctx context.Context, callerID string) (*dto.PendingQueueResponse, error) {
	if _, err := uc.identity.RequireReviewer(ctx, callerID); err != nil {
		return nil, err
	}
	prices, err := uc.repos.Prices.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, 0, len(prices))
	storeIDs := make([]string, 0, len(prices))
	userIDs := make([]string, 0, len(prices))
	for _, p := range prices {
		productIDs = append(productIDs, p.ProductID)
		storeIDs = append(storeIDs, p.StoreID)
		userIDs = append(userIDs, p.UserID)
	}
	products, err := uc.repos.Products.GetByIDs(ctx, unique(productIDs))
	if err != nil {
		return nil, err
	}
	stores, err := uc.repos.Stores.GetByIDs(ctx, unique(storeIDs))
	if err != nil {
		return nil, err
	}
	users, err := uc.repos.Users.GetByIDs(ctx, unique(userIDs))
	if err != nil {
		return nil, err
	}

	out := &dto.PendingQueueResponse{Items: make([]dto.PendingPriceResponse, 0, len(prices))}
	for _, p := range prices {
		item := dto.PendingPriceResponse{PriceResponse: dto.FromPrice(p)}
		if prod, ok := products[p.ProductID]; ok {
			r := dto.FromProduct(prod)
			item.Product = &r
		}
		if st, ok := stores[p.StoreID]; ok {
			r := dto.FromStore(st)
			item.Store = &r
		}
		if u, ok := users[p.UserID]; ok {
			item.User = &dto.UserSummary{ID: u.ID, Name: u.Name}
		}
		out.Items = append(out.Items, item)
	}
	out.Total = len(out.Items)
	return out, nil
}

// ListVerifiedForProduct precios verificados de un producto en orden de registro.
func (uc *UseCase) ListVerifiedForProduct(ctx context.Context, productID string) ([]dto.PriceResponse, error) {
	prices, err := uc.repos.Prices.ListVerifiedByProducts(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, dto.FromPrice(p))
	}
	return out, nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
