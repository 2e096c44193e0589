// Package templates renders the parts-request e-mail sent to the sales team.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const TimestampLayout = "02/01/2006 15:04:05"

//go:embed parts_request.html.tmpl parts_request.txt.tmpl
var files embed.FS

type Sender struct {
	Name  string
	Email string
	Phone string
}

// Summary is everything one e-mail shows. Counts are taken as given so the
// e-mail always agrees with what the visitor confirmed.
type Summary struct {
	Items                []models.CartItem
	Contact              models.ContactData
	ItemCount            int
	TotalMachines        int
	CriticalCount        int
	ExpectedResponseTime string
	ReceivedAt           time.Time
	Sender               Sender
	Location             *time.Location
}

// NewSummary builds a Summary from a cart view.
func NewSummary(view *models.CartView, contact models.ContactData, receivedAt time.Time, sender Sender, loc *time.Location) Summary {
	return Summary{
		Items:                view.Items,
		Contact:              contact,
		ItemCount:            view.ItemCount,
		TotalMachines:        view.TotalMachines,
		CriticalCount:        view.CriticalCount,
		ExpectedResponseTime: view.ExpectedResponseTime,
		ReceivedAt:           receivedAt,
		Sender:               sender,
		Location:             loc,
	}
}

func (s Summary) ContactPromise() string {
	if s.CriticalCount > 0 {
		return "em até 4 horas"
	}

	return "em até 24 horas"
}

func (s Summary) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}

	return s.Location
}

type Renderer struct {
	html   *htmltemplate.Template
	text   *texttemplate.Template
	policy *bluemonday.Policy
}

func NewRenderer() (*Renderer, error) {

	r := &Renderer{policy: bluemonday.StrictPolicy()}

	htmlTmpl, err := htmltemplate.New("parts_request.html.tmpl").
		Funcs(htmltemplate.FuncMap{
			"clean": r.clean,
			"stamp": func(time.Time) string { return "" },
		}).
		ParseFS(files, "parts_request.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse html template: %w", err)
	}

	textTmpl, err := texttemplate.New("parts_request.txt.tmpl").
		Funcs(texttemplate.FuncMap{
			"inc":   func(i int) int { return i + 1 },
			"stamp": func(time.Time) string { return "" },
		}).
		ParseFS(files, "parts_request.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}

	r.html = htmlTmpl
	r.text = textTmpl

	return r, nil
}

// MustNewRenderer panics when the embedded templates do not parse.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Renderer) RenderHTML(s Summary) (string, error) {

	tmpl, err := r.html.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone html template: %w", err)
	}

	tmpl.Funcs(htmltemplate.FuncMap{"stamp": stamper(s.location())})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render html e-mail: %w", err)
	}

	return buf.String(), nil
}

func (r *Renderer) RenderText(s Summary) (string, error) {

	tmpl, err := r.text.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone text template: %w", err)
	}

	tmpl.Funcs(texttemplate.FuncMap{"stamp": stamper(s.location())})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render text e-mail: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Subject flags carts that hold a critical request.
func Subject(s Summary) string {
	subject := fmt.Sprintf("Nova Solicitação de Peças Industriais - %s (%d %s)",
		s.Contact.Company, s.ItemCount, plural(s.ItemCount, "item", "itens"))

	if s.CriticalCount > 0 {
		return "[CRÍTICO] " + subject
	}

	return subject
}

// clean renders visitor text as typed, angle brackets included, so the HTML
// body carries the same words as the plain-text one. The result is already
// escaped.
func (r *Renderer) clean(s string) htmltemplate.HTML {
	return htmltemplate.HTML(r.policy.Sanitize(html.EscapeString(s)))
}

func stamper(loc *time.Location) func(time.Time) string {
	return func(t time.Time) string {
		return t.In(loc).Format(TimestampLayout)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
