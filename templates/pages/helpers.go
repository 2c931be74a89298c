// Package pages holds the storefront pages, written as templ components.
// Edit the .templ files and run `mage gen` to refresh the _templ.go output.
package pages

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"lunor.shop/app/internal/http/validation"
	"lunor.shop/app/pkg/view"
)

type footerLink struct{ Href, Label string }

var footerLinks = []footerLink{
	{"/about", "About"},
	{"/faqs", "FAQs"},
	{"/returns", "Returns"},
	{"/privacy", "Privacy"},
	{"/accessibility", "Accessibility"},
}

func pageTitle(p view.Page) string {
	if p.Title == "" {
		return "Lunor"
	}
	return p.Title + " | Lunor"
}

func withDefaultTitle(p view.Page, title string) view.Page {
	if p.Title == "" {
		p.Title = title
	}
	return p
}

func statusLine(status int) string {
	return strconv.Itoa(status) + " " + http.StatusText(status)
}

func idString(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func productPath(id uint) string { return "/product/" + idString(id) }

func cartAddPath(id uint) string { return "/add_to_cart/" + idString(id) }

// trackStyle goes through spread attributes because templ rejects
// expressions in style attributes.
func trackStyle(offsetPercent int) templ.Attributes {
	return templ.Attributes{"style": "transform: translateX(" + strconv.Itoa(offsetPercent) + "%)"}
}

// formNotice picks the message shown above a form: the caller's notice,
// else the form-level validation error.
func formNotice(notice string, errs validation.FieldErrors) string {
	if notice != "" {
		return notice
	}
	return errs["_"]
}
