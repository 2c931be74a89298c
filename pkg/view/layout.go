package view

// Page carries what every layout needs: header state and the one-shot flash.
type Page struct {
	Title     string
	Flash     *Flash
	CartCount int
	Username  string
	Search    string
}

func (p Page) LoggedIn() bool { return p.Username != "" }

type ErrorPage struct {
	Status    int
	Message   string
	RequestID string
}
