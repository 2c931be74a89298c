package handlers

import (
	"strconv"

	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/pkg/view"
)

// parseID reads a positive integer path parameter.
func parseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func productCard(p products.Product) view.ProductCard {
	card := view.ProductCard{
		ID:       p.ID,
		Ref:      p.Slug,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    view.MoneyFromCents(p.EffectivePriceCents(), p.Currency),
		Rating:   p.RatingValue(),
		Reviews:  p.Reviews,
		IsNew:    p.IsNew,
		ImageURL: p.ImageURL,
	}
	if p.EffectivePriceCents() != p.PriceCents {
		card.OldPrice = view.MoneyFromCents(p.PriceCents, p.Currency)
	}
	return card
}

func productDetail(p products.Product) view.ProductDetail {
	card := productCard(p)
	return view.ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		Price:       card.Price,
		OldPrice:    card.OldPrice,
		Rating:      card.Rating,
		Reviews:     p.Reviews,
		ImageURL:    p.ImageURL,
		Highlights:  p.HighlightList(),
	}
}
