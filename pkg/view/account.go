package view

type LoginForm struct {
	Username string
}

type RegisterForm struct {
	Username string
	Country  string
}

type AccountPage struct {
	Username    string
	Country     string
	MemberSince string
}
