package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunor.shop/app/internal/database/dbtest"
	"lunor.shop/app/internal/modules/products"
	"lunor.shop/app/internal/storage"
)

const catalogYAML = `
products:
  - name: Rose Hibiscus Mist
    brand: Herbivore
    category: Skincare
    price_cents: 3600
    rating: 4.7
    reviews: 30
    image: mist.png
    highlights: [Hydrating, Vegan]
  - name: Rose Hibiscus Mist
    brand: Herbivore
    category: Skincare
    price_cents: 1800
    currency: eur
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	items, err := loadCatalog(writeFile(t, dir, "catalog.yaml", catalogYAML))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3600), items[0].PriceCents)
	assert.Equal(t, []string{"Hydrating", "Vegan"}, items[0].Highlights)
	require.NotNil(t, items[0].Rating)

	_, err = loadCatalog(writeFile(t, dir, "bad.yaml", "products:\n  - brand: Nameless\n"))
	assert.ErrorContains(t, err, "has no name")

	_, err = loadCatalog(writeFile(t, dir, "neg.yaml", "products:\n  - name: X\n    price_cents: -1\n"))
	assert.ErrorContains(t, err, "negative price")
}

func TestSeederCreatesProductsWithUniqueSlugs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	uploads := t.TempDir()
	images := t.TempDir()
	writeFile(t, images, "mist.png", "\x89PNG fake")

	items, err := loadCatalog(writeFile(t, t.TempDir(), "catalog.yaml", catalogYAML))
	require.NoError(t, err)

	s := seeder{
		repo:   products.NewRepo(db),
		store:  storage.NewLocal(uploads, "/uploads"),
		images: images,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	n, err := s.run(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := products.NewRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "rose-hibiscus-mist", all[0].Slug)
	assert.Equal(t, "rose-hibiscus-mist-2", all[1].Slug)
	assert.Equal(t, []string{"Hydrating", "Vegan"}, all[0].HighlightList())
	assert.True(t, strings.HasPrefix(all[0].ImageURL, "/uploads/rose-hibiscus-mist-"))
	assert.FileExists(t, filepath.Join(uploads, all[0].ImageKey))
	assert.Equal(t, "USD", all[0].Currency)
	assert.Equal(t, "EUR", all[1].Currency)
	assert.Empty(t, all[1].ImageURL)
}

func TestSeederNeedsImageDir(t *testing.T) {
	s := seeder{
		repo: products.NewRepo(dbtest.Open(t)),
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	n, err := s.run(context.Background(), []catalogItem{{Name: "Balm", PriceCents: 900, Image: "balm.jpg"}})
	assert.Error(t, err)
	assert.Zero(t, n)
}
