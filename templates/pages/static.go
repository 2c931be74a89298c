package pages

type StaticContent struct {
	Title      string
	Paragraphs []string
}

// StaticPages is keyed by URL path without the leading slash.
var StaticPages = map[string]StaticContent{
	"about": {
		Title: "About us",
		Paragraphs: []string{
			"Lunor curates clean skincare and wellness brands we use ourselves.",
			"Every product is picked for its ingredients, its packaging and how it feels on day thirty, not day one.",
		},
	},
	"privacy": {
		Title: "Privacy policy",
		Paragraphs: []string{
			"We store your username, country and a salted hash of your password. Your cart lives in a signed cookie in your browser.",
			"We do not sell personal data. Contact us to have your account removed.",
		},
	},
	"accessibility": {
		Title: "Accessibility",
		Paragraphs: []string{
			"We aim to meet WCAG 2.1 AA. Every page works with a keyboard and a screen reader.",
			"If something gets in your way, tell us and we will fix it.",
		},
	},
	"faqs": {
		Title: "FAQs",
		Paragraphs: []string{
			"How long does shipping take? Orders leave our warehouse within two business days.",
			"Do I need an account to order? No. Your cart is kept in your browser for thirty days.",
		},
	},
	"returns": {
		Title: "Returns",
		Paragraphs: []string{
			"Unopened items can be returned within 30 days for a full refund.",
			"Opened items can be exchanged if they caused a reaction. Get in touch with your order details.",
		},
	},
}
