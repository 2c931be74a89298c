package products

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"lunor.shop/app/internal/modules/catalog"
)

type Product struct {
	ID             uint   `gorm:"primaryKey"`
	Slug           string `gorm:"size:160;not null;uniqueIndex:ux_products_slug"`
	Name           string `gorm:"size:255;not null"`
	Brand          string `gorm:"size:120;index:ix_products_brand"`
	Category       string `gorm:"size:60;index:ix_products_category"`
	Description    string `gorm:"type:text"`
	PriceCents     int64  `gorm:"not null"`
	SalePriceCents *int64
	Currency       string `gorm:"size:3;not null;default:USD"`
	Rating         *float64
	Reviews        int    `gorm:"not null;default:0"`
	IsNew          bool   `gorm:"not null;default:false"`
	ImageURL       string `gorm:"size:512"`
	ImageKey       string `gorm:"size:255"`
	Highlights     datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Product) TableName() string { return "products" }

// EffectivePriceCents is the sale price when one is set.
func (p Product) EffectivePriceCents() int64 {
	if p.SalePriceCents != nil && *p.SalePriceCents > 0 && *p.SalePriceCents < p.PriceCents {
		return *p.SalePriceCents
	}
	return p.PriceCents
}

func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// HighlightList decodes the highlights column; malformed JSON yields nil.
func (p Product) HighlightList() []string {
	if len(p.Highlights) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(p.Highlights, &out); err != nil {
		return nil
	}
	return out
}

// Record maps a product onto the listing widget's view of it.
func (p Product) Record() catalog.Record {
	return catalog.Record{
		Ref:        p.Slug,
		Name:       p.Name,
		Category:   p.Category,
		PriceCents: p.EffectivePriceCents(),
		Rating:     p.RatingValue(),
		IsNew:      p.IsNew,
	}
}

func Records(items []Product) []catalog.Record {
	out := make([]catalog.Record, 0, len(items))
	for _, p := range items {
		out = append(out, p.Record())
	}
	return out
}
