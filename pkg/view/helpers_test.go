package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFromCents(t *testing.T) {
	tests := []struct {
		cents    int64
		currency string
		want     string
	}{
		{1099, "USD", "$10.99"},
		{5, "", "$0.05"},
		{250000, "EUR", "€2500.00"},
		{-150, "GBP", "-£1.50"},
		{700, "CHF", "CHF 7.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoneyFromCents(tt.cents, tt.currency))
	}
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4.2))
	assert.Equal(t, "★★★★★", Stars(4.6))
	assert.Equal(t, "☆☆☆☆☆", Stars(-1))
	assert.Equal(t, "★★★★★", Stars(9))
}
