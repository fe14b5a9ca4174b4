package report

import (
	"github.com/dandreyanov/go-reporthesis/internal/curl"
)

const (
	StatusFailure = "failure"
	StatusError   = "error"
)

const (
	CodeClass5xx   = "5xx"
	CodeClass4xx   = "4xx"
	CodeClassOther = "other"
)

// Record is one failed or errored test case. JSON tags form the wire
// contract of the payload embedded in the rendered dashboard.
type Record struct {
	ID              string       `json:"id"`
	SuiteName       string       `json:"suite_name"`
	TestName        string       `json:"test_name"`
	Endpoint        string       `json:"endpoint"`
	Status          string       `json:"status"`
	StatusCode      int          `json:"status_code,omitempty"`
	StatusCodeClass string       `json:"status_code_class"`
	Kind            string       `json:"kind,omitempty"`
	DurationSeconds float64      `json:"duration_seconds"`
	Message         string       `json:"message"`
	FullText        string       `json:"full_text"`
	RequestMethod   string       `json:"request_method,omitempty"`
	RequestURL      string       `json:"request_url,omitempty"`
	RequestHeaders  curl.Headers `json:"request_headers,omitempty"`
	RequestBody     string       `json:"request_body,omitempty"`
}

// Request assembles the record's reconstructable request metadata.
func (r Record) Request() curl.Request {
	return curl.Request{
		Method:  r.RequestMethod,
		URL:     r.RequestURL,
		Headers: r.RequestHeaders,
		Body:    r.RequestBody,
	}
}

// Group holds the records sharing one endpoint, in input order.
type Group struct {
	Endpoint string   `json:"endpoint"`
	Records  []Record `json:"records"`
	Count    int      `json:"count"`
}

type Summary struct {
	TotalFailed int     `json:"total_failed"`
	Count5xx    int     `json:"count_5xx"`
	Count4xx    int     `json:"count_4xx"`
	CountOther  int     `json:"count_other"`
	MaxDuration float64 `json:"max_duration"`
}

// Document is the render input: grouped records plus precomputed stats.
type Document struct {
	Title       string   `json:"title"`
	Groups      []Group  `json:"groups"`
	Summary     Summary  `json:"summary"`
	BaseURLs    []string `json:"base_urls,omitempty"`
	GeneratedAt string   `json:"generated_at"`
}

// ClassifyCode buckets an HTTP status code into a coarse class. Codes
// outside the 4xx and 5xx ranges, including the 0 used for "absent", fall
// into CodeClassOther.
func ClassifyCode(code int) string {
	switch {
	case code >= 500 && code < 600:
		return CodeClass5xx
	case code >= 400 && code < 500:
		return CodeClass4xx
	default:
		return CodeClassOther
	}
}
