package flash

import (
	"errors"
	"strings"
	"time"

	"lunor.shop/app/internal/http/signedcookie"
	"lunor.shop/app/pkg/view"
)

const DefaultName = "flash"

var ErrInvalid = errors.New("invalid flash cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	if cookieName == "" {
		cookieName = DefaultName
	}
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure}
}

func (c *Codec) Encode(f view.Flash) (string, error) {
	return signedcookie.Seal(c.Secret, f)
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	var f view.Flash
	if err := signedcookie.Open(c.Secret, v, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Message) == "" {
		return nil, ErrInvalid
	}
	if !f.Kind.Known() {
		f.Kind = view.FlashInfo
	}
	return &f, nil
}

// CookieMaxAge is short: the flash only has to survive one redirect.
func (c *Codec) CookieMaxAge() int {
	return int((2 * time.Minute).Seconds())
}
