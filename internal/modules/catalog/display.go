package catalog

import "slices"

// Listing is a Display that remembers visibility and reveal order. The
// server-side product page renders from it.
type Listing struct {
	order  []string
	hidden map[string]bool
}

func NewListing() *Listing {
	return &Listing{hidden: map[string]bool{}}
}

func (l *Listing) Hide(ref string) {
	l.hidden[ref] = true
	if i := slices.Index(l.order, ref); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}

func (l *Listing) Show(ref string) {
	if !l.hidden[ref] && slices.Contains(l.order, ref) {
		return
	}
	l.hidden[ref] = false
	l.order = append(l.order, ref)
}

// Visible returns the shown refs in reveal order.
func (l *Listing) Visible() []string { return slices.Clone(l.order) }

// Hidden reports whether ref was hidden and not shown again.
func (l *Listing) Hidden(ref string) bool { return l.hidden[ref] }
