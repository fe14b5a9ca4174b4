package curl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ErrNotEnoughData reports that a request carries too little information to
// build a reproduction command. Callers recover by omitting the copy
// affordance for that record.
var ErrNotEnoughData = errors.New("curl: not enough request data")

// ErrNotCurl reports that a captured line is not a curl invocation.
var ErrNotCurl = errors.New("curl: not a curl command line")

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Headers is an ordered header list. It serializes as a JSON object whose
// keys keep insertion order, which the embedded dashboard script relies on
// to rebuild commands with the same header order as the server.
type Headers []Header

func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, hdr := range h {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(hdr.Name)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}

		value, err := json.Marshal(hdr.Value)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (h *Headers) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("json.Decoder Token: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("curl: headers must be a JSON object")
	}

	headers := Headers{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("json.Decoder Token: %w", err)
		}

		name, _ := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("json.Decoder Decode: %w", err)
		}

		headers = append(headers, Header{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("json.Decoder Token: %w", err)
	}

	*h = headers

	return nil
}

// Request is the request metadata recoverable from a failure body. Every
// field is optional by construction.
type Request struct {
	Method  string  `json:"method,omitempty"`
	URL     string  `json:"url,omitempty"`
	Headers Headers `json:"headers,omitempty"`
	Body    string  `json:"body,omitempty"`
}

// Command renders the single-line reproduction command:
//
//	curl -X <method> '<url>' [-H '<name>: <value>' ...] [-d '<body>']
//
// The method defaults to GET. Without a URL there is nothing to reproduce
// and Command fails with ErrNotEnoughData.
func (r Request) Command() (string, error) {
	if r.URL == "" {
		return "", ErrNotEnoughData
	}

	method := r.Method
	if method == "" {
		method = "GET"
	}

	var b strings.Builder
	b.WriteString("curl -X ")
	b.WriteString(method)
	b.WriteByte(' ')
	b.WriteString(quote(r.URL))

	for _, hdr := range r.Headers {
		b.WriteString(" -H ")
		b.WriteString(quote(hdr.Name + ": " + hdr.Value))
	}

	if r.Body != "" {
		b.WriteString(" -d ")
		b.WriteString(quote(r.Body))
	}

	return b.String(), nil
}

// quote single-quote wraps s for a POSIX shell. Embedded single quotes use
// the '\'' substitution.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Parse tokenizes a captured curl command line back into request metadata.
// Recognized flags follow what Schemathesis emits: -X/--request, -H/--header
// and the -d/--data family; the first non-flag token is the URL. Unknown
// value-less flags are skipped.
func Parse(line string) (Request, error) {
	words, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return Request{}, fmt.Errorf("shellquote.Split: %w", err)
	}

	if len(words) == 0 || words[0] != "curl" {
		return Request{}, ErrNotCurl
	}

	var req Request
	for i := 1; i < len(words); i++ {
		switch w := words[i]; {
		case w == "-X" || w == "--request":
			if i+1 < len(words) {
				i++
				req.Method = words[i]
			}
		case w == "-H" || w == "--header":
			if i+1 < len(words) {
				i++
				if name, value, ok := strings.Cut(words[i], ":"); ok {
					req.Headers = append(
						req.Headers, Header{
							Name:  strings.TrimSpace(name),
							Value: strings.TrimSpace(value),
						},
					)
				}
			}
		case w == "-d" || w == "--data" || w == "--data-raw" || w == "--data-binary":
			if i+1 < len(words) {
				i++
				req.Body = words[i]
			}
		case strings.HasPrefix(w, "-"):
		default:
			if req.URL == "" {
				req.URL = w
			}
		}
	}

	return req, nil
}
