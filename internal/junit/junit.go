package junit

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Document is a decoded JUnit report. The suite list is flat regardless of
// whether the source root element was <testsuites> or a bare <testsuite>.
type Document struct {
	Suites []Suite
}

type Suite struct {
	Name      string `xml:"name,attr"`
	Tests     int    `xml:"tests,attr"`
	Failures  int    `xml:"failures,attr"`
	Errors    int    `xml:"errors,attr"`
	Skipped   int    `xml:"skipped,attr"`
	Time      string `xml:"time,attr"`
	Timestamp string `xml:"timestamp,attr"`
	Cases     []Case `xml:"testcase"`
}

type Case struct {
	ClassName string  `xml:"classname,attr"`
	Name      string  `xml:"name,attr"`
	Time      string  `xml:"time,attr"`
	Failure   *Result `xml:"failure"`
	Error     *Result `xml:"error"`
	Skipped   *Result `xml:"skipped"`
}

type Result struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// Duration returns the time attribute as seconds, 0 when missing or not a
// parseable non-negative number.
func (c Case) Duration() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Time), 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse junit: %v", e.Err)
	}

	return fmt.Sprintf("parse junit %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type suitesRoot struct {
	XMLName xml.Name `xml:"testsuites"`
	Suites  []Suite  `xml:"testsuite"`
}

type suiteRoot struct {
	XMLName xml.Name `xml:"testsuite"`
	Suite
}

// Decode reads a JUnit XML document. Both the <testsuites> wrapper root and
// a bare <testsuite> root are accepted; any other root element is an error.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("io.ReadAll: %w", err)
	}

	var wrapped suitesRoot
	if err := xml.Unmarshal(data, &wrapped); err == nil {
		return Document{Suites: wrapped.Suites}, nil
	}

	var single suiteRoot
	if err := xml.Unmarshal(data, &single); err != nil {
		return Document{}, fmt.Errorf("xml.Unmarshal: %w", err)
	}

	return Document{Suites: []Suite{single.Suite}}, nil
}

// DecodeFile decodes the JUnit file at pth. All failures, including a missing
// file, come back as *ParseError naming the path.
func DecodeFile(pth string) (Document, error) {
	f, err := os.Open(pth)
	if err != nil {
		return Document{}, &ParseError{Path: pth, Err: err}
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return Document{}, &ParseError{Path: pth, Err: err}
	}

	return doc, nil
}
