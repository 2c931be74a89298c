package cartcookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunor.shop/app/internal/http/signedcookie"
)

const (
	DefaultName = "cart"
	maxAge      = 30 * 24 * time.Hour
)

var ErrInvalid = errors.New("invalid cart cookie")

type Item struct {
	ProductID uint `json:"product_id"`
	Qty       int  `json:"quantity"`
}

// Cart is the cookie payload. Items keep first-insertion order.
type Cart struct {
	Items []Item `json:"items"`
}

func NewCart() *Cart { return &Cart{Items: []Item{}} }

// Add increments productID's quantity, appending it when absent. It returns
// the new quantity.
func (c *Cart) Add(productID uint) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Qty++
			return c.Items[i].Qty
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Qty: 1})
	return 1
}

// Count is the total number of units.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Qty
	}
	return n
}

func (c *Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	if name == "" {
		name = DefaultName
	}
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

func (c *Codec) Encode(cart *Cart) (string, error) {
	return signedcookie.Seal(c.Secret, cart)
}

// Decode verifies v and drops entries with a zero id or non-positive quantity.
func (c *Codec) Decode(v string) (*Cart, error) {
	var raw Cart
	if err := signedcookie.Open(c.Secret, v, &raw); err != nil {
		return nil, ErrInvalid
	}
	cart := NewCart()
	for _, it := range raw.Items {
		if it.ProductID == 0 || it.Qty <= 0 {
			continue
		}
		cart.Items = append(cart.Items, it)
	}
	return cart, nil
}

// Get returns the request's cart, or an empty one when the cookie is
// missing. A tampered cookie is cleared.
func (c *Codec) Get(ctx *gin.Context) *Cart {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return NewCart()
	}
	cart, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return NewCart()
	}
	return cart
}

func (c *Codec) Set(ctx *gin.Context, cart *Cart) error {
	val, err := c.Encode(cart)
	if err != nil {
		return err
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, int(maxAge.Seconds()), "/", "", c.Secure, true)
	return nil
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}
