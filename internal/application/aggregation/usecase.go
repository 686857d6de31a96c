package aggregation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Precios-api/internal/application/dto"
	"github.com/jhoicas/Precios-api/internal/domain"
	"github.com/jhoicas/Precios-api/internal/domain/entity"
	"github.com/jhoicas/Precios-api/internal/domain/pricing"
	"github.com/jhoicas/Precios-api/internal/domain/repository"
)

// Límites de las lecturas públicas.
const (
	DefaultSearchLimit = 20
	DefaultFeatured    = 10
	MaxFeatured        = 100
)

// Config límites configurables.
type Config struct {
	SearchLimit     int
	FeaturedDefault int
}

// UseCase lecturas derivadas del libro: precio más bajo, búsqueda y destacados.
// Solo considera precios verificados; nada de lo que hace escribe en el almacén.
type UseCase struct {
	repos repository.TxRepos
	cfg   Config
}

// NewUseCase construye el caso de uso; los valores fuera de rango toman el default.
func NewUseCase(repos repository.TxRepos, cfg Config) *UseCase {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.FeaturedDefault <= 0 || cfg.FeaturedDefault > MaxFeatured {
		cfg.FeaturedDefault = DefaultFeatured
	}
	return &UseCase{repos: repos, cfg: cfg}
}

// LowestPrice precio verificado más bajo del producto; nil si no tiene precios verificados.
func (uc *UseCase) LowestPrice(ctx context.Context, productID string) (*dto.LowestPriceResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	lowest, err := uc.lowestFor(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	return lowest[productID], nil
}

// Search productos cuyo nombre o marca contienen term, o cuyo código es term,
// cada uno con su precio más bajo.
func (uc *UseCase) Search(ctx context.Context, term string) (*dto.ProductListResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: término de búsqueda vacío", domain.ErrInvalidInput)
	}
	products, err := uc.repos.Products.Search(ctx, term, uc.cfg.SearchLimit)
	if err != nil {
		return nil, err
	}
	return uc.annotate(ctx, products)
}

// Featured productos de los n precios verificados más recientes, sin repetir producto
// y en orden de recencia. Cada uno lleva su precio más bajo actual, que puede no ser
// el precio reciente que lo seleccionó. n <= 0 usa el default.
func (uc *UseCase) Featured(ctx context.Context, n int) (*dto.ProductListResponse, error) {
	if n <= 0 {
		n = uc.cfg.FeaturedDefault
	}
	if n > MaxFeatured {
		return nil, fmt.Errorf("%w: n debe estar entre 1 y %d", domain.ErrInvalidInput, MaxFeatured)
	}
	recent, err := uc.repos.Prices.ListRecentVerified(ctx, n)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(recent))
	ids := make([]string, 0, len(recent))
	for _, p := range recent {
		if _, ok := seen[p.ProductID]; ok {
			continue
		}
		seen[p.ProductID] = struct{}{}
		ids = append(ids, p.ProductID)
	}
	byID, err := uc.repos.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return uc.annotate(ctx, products)
}

// ProductPrices detalle del producto con todos sus precios verificados, de menor a mayor.
func (uc *UseCase) ProductPrices(ctx context.Context, productID string) (*dto.ProductPricesResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	prices, err := uc.repos.Prices.ListVerifiedByProducts(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(prices, func(i, j int) bool { return pricing.Better(prices[i], prices[j]) })

	storeIDs := make([]string, 0, len(prices))
	for _, p := range prices {
		storeIDs = append(storeIDs, p.StoreID)
	}
	stores, err := uc.repos.Stores.GetByIDs(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductPricesResponse{
		Product: dto.FromProduct(product),
		Prices:  make([]dto.StorePriceResponse, 0, len(prices)),
	}
	for _, p := range prices {
		item := dto.StorePriceResponse{
			PriceID:      p.ID,
			Amount:       p.Amount,
			StoreID:      p.StoreID,
			RegisteredAt: p.RegisteredAt,
		}
		if st, ok := stores[p.StoreID]; ok {
			item.StoreName = st.Name
		}
		out.Prices = append(out.Prices, item)
	}
	return out, nil
}

func (uc *UseCase) annotate(ctx context.Context, products []*entity.Product) (*dto.ProductListResponse, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	lowest, err := uc.lowestFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductWithPrice, 0, len(products))}
	for _, p := range products {
		out.Items = append(out.Items, dto.ProductWithPrice{
			ProductResponse: dto.FromProduct(p),
			LowestPrice:     lowest[p.ID],
		})
	}
	out.Total = len(out.Items)
	return out, nil
}

// lowestFor una lectura de precios y una de comercios para todo el conjunto.
func (uc *UseCase) lowestFor(ctx context.Context, productIDs []string) (map[string]*dto.LowestPriceResponse, error) {
	out := make(map[string]*dto.LowestPriceResponse, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	prices, err := uc.repos.Prices.ListVerifiedByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	best := pricing.LowestByProduct(prices)
	storeIDs := make([]string, 0, len(best))
	for _, p := range best {
		storeIDs = append(storeIDs, p.StoreID)
	}
	stores, err := uc.repos.Stores.GetByIDs(ctx, storeIDs)
	if err != nil {
		return nil, err
	}
	for productID, p := range best {
		item := &dto.LowestPriceResponse{
			PriceID:      p.ID,
			Amount:       p.Amount,
			StoreID:      p.StoreID,
			RegisteredAt: p.RegisteredAt,
		}
		if st, ok := stores[p.StoreID]; ok {
			item.StoreName = st.Name
		}
		out[productID] = item
	}
	return out, nil
}
