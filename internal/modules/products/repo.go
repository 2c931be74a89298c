package products

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("product not found")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// List returns every product in catalog order (id ascending).
func (r *Repo) List(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id uint) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// FindByIDs returns the products that exist among ids, in no particular order.
func (r *Repo) FindByIDs(ctx context.Context, ids []uint) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

// TopRatedByBrand returns rated products whose brand contains brand, best first.
func (r *Repo) TopRatedByBrand(ctx context.Context, brand string, limit int) ([]Product, error) {
	if limit <= 0 || limit > 24 {
		limit = 3
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Where("brand LIKE ?", "%"+brand+"%").
		Where("rating IS NOT NULL").
		Order("rating DESC").
		Order("reviews DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Product{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *Repo) Create(ctx context.Context, p *Product) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error
}
