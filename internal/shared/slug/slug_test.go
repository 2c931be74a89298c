package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	assert.Equal(t, "prism-exfoliating-glow-facial", FromName("  Prism Exfoliating Glow Facial! "))
	assert.Equal(t, "product", FromName("***"))
}

func TestUnique(t *testing.T) {
	used := map[string]bool{"rose-oil": true, "rose-oil-2": true}
	assert.Equal(t, "rose-oil-3", Unique("Rose Oil", func(s string) bool { return used[s] }))
	assert.Equal(t, "lip-balm", Unique("Lip Balm", func(string) bool { return false }))
}
