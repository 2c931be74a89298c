package cart

import (
	"context"
	"errors"
	"strings"

	"lunor.shop/app/internal/http/cartcookie"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/pkg/view"
)

var ErrMixedCurrency = errors.New("cart contains multiple currencies")

// ProductLookup is the slice of the product repository the cart needs.
type ProductLookup interface {
	Get(ctx context.Context, id uint) (products.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]products.Product, error)
}

type Service struct {
	products ProductLookup
}

func NewService(p ProductLookup) *Service {
	return &Service{products: p}
}

// Added describes the outcome of one add-to-cart.
type Added struct {
	Product  products.Product
	Quantity int
	Count    int
}

// Add puts one unit of productID into c. It fails with products.ErrNotFound
// for unknown ids and leaves c untouched in that case.
func (s *Service) Add(ctx context.Context, c *cartcookie.Cart, productID uint) (Added, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return Added{}, err
	}
	qty := c.Add(p.ID)
	return Added{Product: p, Quantity: qty, Count: c.Count()}, nil
}

// BuildPage joins the cookie items with the catalog. Cookie order is kept and
// products that no longer exist are skipped.
func (s *Service) BuildPage(ctx context.Context, c *cartcookie.Cart) (view.CartPage, error) {
	page := view.CartPage{Lines: []view.CartLine{}, Subtotal: view.MoneyFromCents(0, "")}
	if c == nil || len(c.Items) == 0 {
		return page, nil
	}

	found, err := s.products.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return view.CartPage{}, err
	}
	byID := make(map[uint]products.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var subtotal int64
	currency := ""
	for _, it := range c.Items {
		p, ok := byID[it.ProductID]
		if !ok || it.Qty <= 0 {
			continue
		}
		cur := strings.ToUpper(p.Currency)
		if currency == "" {
			currency = cur
		} else if cur != currency {
			return view.CartPage{}, ErrMixedCurrency
		}

		unit := p.EffectivePriceCents()
		line := unit * int64(it.Qty)
		subtotal += line
		page.Count += it.Qty
		page.Lines = append(page.Lines, view.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Qty:       it.Qty,
			UnitPrice: view.MoneyFromCents(unit, cur),
			LineTotal: view.MoneyFromCents(line, cur),
		})
	}
	page.Subtotal = view.MoneyFromCents(subtotal, currency)
	return page, nil
}
