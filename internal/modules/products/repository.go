package products

import "context"

// Repository is what the storefront handlers read through.
type Repository interface {
	Lister
	Get(ctx context.Context, id uint) (Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Product, error)
	TopRatedByBrand(ctx context.Context, brand string, limit int) ([]Product, error)
}

// CachedRepo serves List from a Cache and everything else from the database.
type CachedRepo struct {
	*Repo
	cache *Cache
}

func NewCachedRepo(r *Repo, cache *Cache) *CachedRepo {
	return &CachedRepo{Repo: r, cache: cache}
}

func (r *CachedRepo) List(ctx context.Context) ([]Product, error) {
	return r.cache.List(ctx)
}

var (
	_ Repository = (*Repo)(nil)
	_ Repository = (*CachedRepo)(nil)
)
