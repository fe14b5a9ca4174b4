package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dandreyanov/go-reporthesis/internal/curl"
	"github.com/dandreyanov/go-reporthesis/internal/junit"
	"github.com/dandreyanov/go-reporthesis/internal/report"
	"github.com/dandreyanov/go-reporthesis/internal/slice"
)

// DefaultMessageWidth is the rune limit for Record.Message.
const DefaultMessageWidth = 180

var (
	statusCodeRE  = regexp.MustCompile(`\[(\d{3})\]`)
	checkKindRE   = regexp.MustCompile(`- ([^\n\r]+)`)
	urlRE         = regexp.MustCompile(`https?://[^\s'"]+`)
	paramSuffixRE = regexp.MustCompile(`\[[^\[\]]*\]$`)
)

// EndpointFunc derives the grouping key of a test case. An empty result
// makes the extractor fall back to the test name.
type EndpointFunc func(suiteName, testName string) string

// MethodPathEndpoint is the default strategy: it strips a trailing pytest
// parametrization suffix ("GET /users[case1]" becomes "GET /users") and
// otherwise keeps the test name, which Schemathesis already shapes as
// "METHOD /path".
func MethodPathEndpoint(_, testName string) string {
	name := strings.TrimSpace(testName)

	return strings.TrimSpace(paramSuffixRE.ReplaceAllString(name, ""))
}

// TestNameEndpoint groups by the raw test name.
func TestNameEndpoint(_, testName string) string {
	return testName
}

type Option func(options *Options)

type Options struct {
	endpointFn   EndpointFunc
	messageWidth int
}

func WithEndpointFunc(fn EndpointFunc) Option {
	return func(options *Options) {
		options.endpointFn = fn
	}
}

func WithMessageWidth(width int) Option {
	return func(options *Options) {
		options.messageWidth = width
	}
}

// Extractor turns decoded JUnit documents into failure records. Only test
// cases carrying a <failure> or <error> child survive.
type Extractor interface {
	Extract(ctx context.Context, doc junit.Document) ([]report.Record, error)
	ExtractFile(ctx context.Context, pth string) ([]report.Record, error)
}

func New(opts ...Option) Extractor {
	e := extractor{
		opts: Options{
			endpointFn:   MethodPathEndpoint,
			messageWidth: DefaultMessageWidth,
		},
	}

	for _, o := range opts {
		o(&e.opts)
	}

	return &e
}

type extractor struct {
	opts Options
}

func (e *extractor) ExtractFile(ctx context.Context, pth string) ([]report.Record, error) {
	doc, err := junit.DecodeFile(pth)
	if err != nil {
		return nil, fmt.Errorf("junit.DecodeFile: %w", err)
	}

	return e.Extract(ctx, doc)
}

func (e *extractor) Extract(ctx context.Context, doc junit.Document) ([]report.Record, error) {
	perSuite := make([][]report.Record, 0, len(doc.Suites))

	for _, suite := range doc.Suites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		failed := slice.Filter(
			suite.Cases, func(tc junit.Case) bool {
				return tc.Failure != nil || tc.Error != nil
			},
		)

		perSuite = append(
			perSuite, slice.Map(
				failed, func(tc junit.Case) report.Record {
					result, status := failureOf(tc)

					return e.record(suite, tc, result, status)
				},
			),
		)
	}

	return slice.Flat(perSuite), nil
}

// failureOf picks the element that marks the case as failed. <failure> wins
// when both children are present.
func failureOf(tc junit.Case) (*junit.Result, string) {
	switch {
	case tc.Failure != nil:
		return tc.Failure, report.StatusFailure
	case tc.Error != nil:
		return tc.Error, report.StatusError
	default:
		return nil, ""
	}
}

func (e *extractor) record(suite junit.Suite, tc junit.Case, result *junit.Result, status string) report.Record {
	raw := rawText(result)
	clean, curlLine := splitReproduce(raw)

	rec := report.Record{
		ID:              uuid.New().String(),
		SuiteName:       suite.Name,
		TestName:        tc.Name,
		Status:          status,
		DurationSeconds: tc.Duration(),
		Message:         shorten(clean, e.opts.messageWidth),
		FullText:        clean,
		Kind:            matchKind(raw),
	}

	if rec.SuiteName == "" {
		rec.SuiteName = tc.ClassName
	}

	if m := statusCodeRE.FindStringSubmatch(raw); m != nil {
		rec.StatusCode, _ = strconv.Atoi(m[1])
	}
	rec.StatusCodeClass = report.ClassifyCode(rec.StatusCode)

	if curlLine != "" {
		if req, err := curl.Parse(curlLine); err == nil {
			rec.RequestMethod = req.Method
			rec.RequestURL = req.URL
			rec.RequestHeaders = req.Headers
			rec.RequestBody = req.Body
		}
	}
	if rec.RequestURL == "" {
		rec.RequestURL = urlRE.FindString(raw)
	}

	endpoint := ""
	if fn := e.opts.endpointFn; fn != nil {
		endpoint = strings.TrimSpace(fn(rec.SuiteName, rec.TestName))
	}
	if endpoint == "" {
		endpoint = rec.TestName
	}
	rec.Endpoint = endpoint

	return rec
}

// rawText joins the failure message attribute with the element body.
// Schemathesis puts the whole dump into the attribute, other producers use
// the body; when the body already contains the message only the body is
// kept.
func rawText(result *junit.Result) string {
	msg := strings.TrimSpace(result.Message)
	body := strings.TrimSpace(result.Content)

	switch {
	case msg == "":
		return body
	case body == "":
		return msg
	case strings.Contains(body, msg):
		return body
	default:
		return msg + "\n" + body
	}
}

// splitReproduce removes the "Reproduce with:" block from the failure text
// and captures the first curl line it carried. When stripping would leave
// nothing, the raw text is kept so the record never loses its body.
func splitReproduce(raw string) (clean, curlLine string) {
	var (
		kept          []string
		seenReproduce bool
	)

	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(strings.ToLower(stripped), "reproduce with") {
			seenReproduce = true
			continue
		}

		if strings.HasPrefix(stripped, "curl ") {
			if curlLine == "" {
				curlLine = stripped
			}
			continue
		}

		if seenReproduce && stripped == "" {
			continue
		}

		kept = append(kept, line)
	}

	clean = strings.TrimSpace(strings.Join(kept, "\n"))
	if clean == "" {
		clean = strings.TrimSpace(raw)
	}

	return clean, curlLine
}

func matchKind(raw string) string {
	if m := checkKindRE.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// shorten collapses whitespace runs to single spaces and trims the result
// to width runes at a word boundary, appending an ellipsis placeholder.
func shorten(s string, width int) string {
	fields := strings.Fields(s)
	collapsed := strings.Join(fields, " ")

	if width <= 0 || utf8.RuneCountInString(collapsed) <= width {
		return collapsed
	}

	const placeholder = "…"
	budget := width - utf8.RuneCountInString(placeholder)

	var b strings.Builder
	count := 0
	for i, f := range fields {
		add := utf8.RuneCountInString(f)
		if i > 0 {
			add++
		}
		if count+add > budget {
			break
		}

		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f)
		count += add
	}

	if b.Len() == 0 {
		runes := []rune(fields[0])
		if budget < len(runes) {
			runes = runes[:budget]
		}

		return string(runes) + placeholder
	}

	return b.String() + placeholder
}
