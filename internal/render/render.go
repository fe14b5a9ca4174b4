package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/dandreyanov/go-reporthesis/internal/report"
	"github.com/dandreyanov/go-reporthesis/internal/slice"
)

const defaultTitle = "Reporthesis"

//go:embed assets/report.tmpl
var reportTmpl string

//go:embed assets/report.css
var reportCSS string

//go:embed assets/report.js
var reportJS string

var pageTmpl = template.Must(template.New("report").Parse(reportTmpl))

type Option func(options *Options)

type Options struct {
	theme string
}

// WithTheme sets the initial theme of the dashboard, "dark" or "light".
// Viewers can still toggle it; the choice is persisted in the browser.
func WithTheme(theme string) Option {
	return func(options *Options) {
		options.theme = theme
	}
}

// Renderer serializes a report document into one self-contained HTML page:
// inline style, inline script, an embedded JSON payload and a server-side
// rendering of the grouped records so the page stays readable with
// scripting disabled.
type Renderer interface {
	Render(doc report.Document) ([]byte, error)
}

func New(opts ...Option) Renderer {
	r := renderer{opts: Options{theme: "dark"}}
	for _, o := range opts {
		o(&r.opts)
	}

	return &r
}

type renderer struct {
	opts Options
}

type pageData struct {
	Title        string
	Theme        string
	GeneratedAt  string
	Summary      report.Summary
	BaseURLs     []string
	Groups       []pageGroup
	DurationMax  string
	DurationStep string
	Payload      template.JS
	Styles       template.CSS
	Script       template.JS
}

type pageGroup struct {
	Endpoint string
	Count    int
	Records  []pageRecord
}

type pageRecord struct {
	report.Record
	Curl string
}

func (r *renderer) Render(doc report.Document) ([]byte, error) {
	if doc.Title == "" {
		doc.Title = defaultTitle
	}
	if doc.GeneratedAt == "" {
		doc.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	step := doc.Summary.MaxDuration / 1000
	if step < 0.000001 {
		step = 0.000001
	}

	data := pageData{
		Title:        doc.Title,
		Theme:        r.opts.theme,
		GeneratedAt:  doc.GeneratedAt,
		Summary:      doc.Summary,
		BaseURLs:     doc.BaseURLs,
		Groups:       slice.Map(doc.Groups, newPageGroup),
		DurationMax:  fmt.Sprintf("%.6f", doc.Summary.MaxDuration),
		DurationStep: fmt.Sprintf("%.6f", step),
		Payload:      template.JS(payload),
		Styles:       template.CSS(reportCSS),
		Script:       template.JS(reportJS),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("template Execute: %w", err)
	}

	return buf.Bytes(), nil
}

// newPageGroup precomputes the reproduction command of each record. Records
// without enough request data keep an empty Curl and simply lose the copy
// affordance, never failing the render.
func newPageGroup(g report.Group) pageGroup {
	return pageGroup{
		Endpoint: g.Endpoint,
		Count:    g.Count,
		Records: slice.Map(
			g.Records, func(rec report.Record) pageRecord {
				pr := pageRecord{Record: rec}
				if cmd, err := rec.Request().Command(); err == nil {
					pr.Curl = cmd
				}

				return pr
			},
		),
	}
}
