package middleware

import (
	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/cartcookie"
)

const cartCountKey = "cart_count"

// CartCount exposes the number of units in the cart cookie to the header badge.
func CartCount(codec *cartcookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetCartCount(c, codec.Get(c).Count())
		c.Next()
	}
}

// SetCartCount overrides the badge count after a handler changed the cart.
func SetCartCount(c *gin.Context, n int) { c.Set(cartCountKey, n) }

func GetCartCount(c *gin.Context) int {
	return c.GetInt(cartCountKey)
}
