package view

type CartLine struct {
	ProductID uint
	Name      string
	ImageURL  string
	Qty       int
	UnitPrice string
	LineTotal string
}

type CartPage struct {
	Lines    []CartLine
	Count    int
	Subtotal string
}

func (p CartPage) Empty() bool { return len(p.Lines) == 0 }
