package view

// FlashKind selects the banner style; it doubles as a CSS class suffix.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Known reports whether k is one of the kinds the layout styles.
func (k FlashKind) Known() bool {
	switch k {
	case FlashSuccess, FlashError, FlashInfo:
		return true
	}
	return false
}

// Flash is a one-shot banner carried across a redirect in a signed cookie.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}
