package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/repository"
)

const (
	productCacheKey = "products:all"
	productCacheTTL = 60 * time.Second
	probeTimeout    = 2 * time.Second
)

// CatalogService is product CRUD over the primary store, with a fixed
// in-memory dataset standing in for reads when the store is down. Writes
// against the fallback are refused.
type CatalogService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	log      *zap.Logger
	fallback []domain.Product
	now      func() time.Time
}

func NewCatalogService(repo repository.ProductRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		log:      log,
		fallback: SampleProducts(),
		now:      time.Now,
	}
}

// SetRedisClient wires the optional read cache.
func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.rdb = client
}

// storeUp probes connectivity with a short deadline at request time.
func (s *CatalogService) storeUp(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := s.repo.Ping(probeCtx); err != nil {
		s.log.Warn("product store unreachable, using fallback dataset", zap.Error(err))
		return false
	}
	return true
}

// List returns products matching the filter. The second return reports
// whether the fallback dataset served the request.
func (s *CatalogService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, bool, error) {
	if !s.storeUp(ctx) {
		return filterProducts(s.fallback, f), true, nil
	}

	// Only the unfiltered listing is cached; filtered reads go straight
	// through.
	cacheable := f.Category == "" && f.InStock == nil
	if cacheable && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, productCacheKey).Result(); err == nil {
			var cached []domain.Product
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, false, nil
			}
		}
	}

	products, err := s.repo.List(ctx, f)
	if err != nil {
		s.log.Warn("product list failed, using fallback dataset", zap.Error(err))
		return filterProducts(s.fallback, f), true, nil
	}

	if cacheable && s.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			s.rdb.Set(ctx, productCacheKey, data, productCacheTTL)
		}
	}
	return products, false, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint64) (*domain.Product, error) {
	if !s.storeUp(ctx) {
		return s.fallbackByID(id)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Warn("product read failed, using fallback dataset", zap.Error(err))
		return s.fallbackByID(id)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if !s.storeUp(ctx) {
		return nil, domain.ErrStoreUnavailable
	}

	now := s.now()
	product.InStock = product.Quantity > 0
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return product, nil
}

// Update replaces every mutable field of an existing product and bumps
// UpdatedAt. CreatedAt and the id survive.
func (s *CatalogService) Update(ctx context.Context, id uint64, incoming *domain.Product) (*domain.Product, error) {
	if !s.storeUp(ctx) {
		return nil, domain.ErrStoreUnavailable
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrProductNotFound
	}

	existing.Name = incoming.Name
	existing.Description = incoming.Description
	existing.Price = incoming.Price
	existing.Category = incoming.Category
	existing.Notes = incoming.Notes
	if incoming.Image != "" {
		existing.Image = incoming.Image
	}
	existing.Badge = incoming.Badge
	existing.Quantity = incoming.Quantity
	existing.InStock = incoming.Quantity > 0
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return existing, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uint64) error {
	if !s.storeUp(ctx) {
		return domain.ErrStoreUnavailable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Reseed wipes the catalog and inserts the sample dataset. Destructive.
func (s *CatalogService) Reseed(ctx context.Context) ([]domain.Product, error) {
	if !s.storeUp(ctx) {
		return nil, domain.ErrStoreUnavailable
	}

	seed := SampleProducts()
	if err := s.repo.ReplaceAll(ctx, seed); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	s.log.Info("catalog reseeded", zap.Int("products", len(seed)))
	return seed, nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, productCacheKey)
	}
}

func (s *CatalogService) fallbackByID(id uint64) (*domain.Product, error) {
	for i := range s.fallback {
		if s.fallback[i].ID == id {
			p := s.fallback[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func filterProducts(products []domain.Product, f repository.ProductFilter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && string(p.Category) != f.Category {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		out = append(out, p)
	}
	return out
}
