package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/internal/http/cartcookie"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/pkg/view"
)

type fakeProducts map[uint]products.Product

func (f fakeProducts) Get(_ context.Context, id uint) (products.Product, error) {
	p, ok := f[id]
	if !ok {
		return products.Product{}, products.ErrNotFound
	}
	return p, nil
}

func (f fakeProducts) FindByIDs(_ context.Context, ids []uint) ([]products.Product, error) {
	var out []products.Product
	// reverse order, to prove the page follows the cookie
	for i := len(ids) - 1; i >= 0; i-- {
		if p, ok := f[ids[i]]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func catalog() fakeProducts {
	sale := int64(800)
	return fakeProducts{
		1: {ID: 1, Name: "Mist", PriceCents: 1000, SalePriceCents: &sale, Currency: "USD"},
		2: {ID: 2, Name: "Balm", PriceCents: 2550, Currency: "USD"},
	}
}

func TestAdd(t *testing.T) {
	svc := NewService(catalog())
	c := cartcookie.NewCart()

	got, err := svc.Add(context.Background(), c, 2)
	require.NoError(t, err)
	assert.Equal(t, "Balm", got.Product.Name)
	assert.Equal(t, 1, got.Quantity)

	got, err = svc.Add(context.Background(), c, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, 2, got.Count)

	_, err = svc.Add(context.Background(), c, 99)
	assert.ErrorIs(t, err, products.ErrNotFound)
	assert.Equal(t, 2, c.Count())
}

func TestBuildPage(t *testing.T) {
	c := &cartcookie.Cart{Items: []cartcookie.Item{
		{ProductID: 1, Qty: 2},
		{ProductID: 42, Qty: 1},
		{ProductID: 2, Qty: 1},
	}}

	page, err := NewService(catalog()).BuildPage(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []view.CartLine{
		{ProductID: 1, Name: "Mist", Qty: 2, UnitPrice: "$8.00", LineTotal: "$16.00"},
		{ProductID: 2, Name: "Balm", Qty: 1, UnitPrice: "$25.50", LineTotal: "$25.50"},
	}, page.Lines)
	assert.Equal(t, 3, page.Count)
	assert.Equal(t, "$41.50", page.Subtotal)
}

func TestBuildPageEmpty(t *testing.T) {
	page, err := NewService(catalog()).BuildPage(context.Background(), cartcookie.NewCart())
	require.NoError(t, err)
	assert.True(t, page.Empty())
	assert.Equal(t, "$0.00", page.Subtotal)
}

func TestBuildPageMixedCurrency(t *testing.T) {
	cat := catalog()
	cat[3] = products.Product{ID: 3, Name: "Oil", PriceCents: 100, Currency: "EUR"}
	c := &cartcookie.Cart{Items: []cartcookie.Item{{ProductID: 1, Qty: 1}, {ProductID: 3, Qty: 1}}}

	_, err := NewService(cat).BuildPage(context.Background(), c)
	assert.ErrorIs(t, err, ErrMixedCurrency)
}
