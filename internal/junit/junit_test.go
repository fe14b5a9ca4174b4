package junit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const wrappedReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="schemathesis http://api.local" tests="3" failures="1" errors="1" time="1.5">
    <testcase classname="schemathesis" name="GET /users" time="0.104">
      <failure type="AssertionError" message="1. Server error - [500] Internal Server Error">trace</failure>
    </testcase>
    <testcase classname="schemathesis" name="POST /users" time="0.201">
      <error type="RuntimeError" message="connection reset"/>
    </testcase>
    <testcase classname="schemathesis" name="DELETE /users" time="0.050"/>
  </testsuite>
  <testsuite name="second" tests="1" failures="0" errors="0">
    <testcase classname="second" name="GET /health" time="0.001">
      <skipped message="not implemented"/>
    </testcase>
  </testsuite>
</testsuites>`

const bareReport = `<?xml version="1.0" encoding="utf-8"?>
<testsuite name="solo" tests="1" failures="1">
  <testcase classname="solo" name="GET /ping">
    <failure message="boom"/>
  </testcase>
</testsuite>`

func TestDecode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected Document
		wantErr  bool
	}{
		{
			name:  "test_testsuites_root",
			input: wrappedReport,
			expected: Document{
				Suites: []Suite{
					{
						Name:     "schemathesis http://api.local",
						Tests:    3,
						Failures: 1,
						Errors:   1,
						Time:     "1.5",
						Cases: []Case{
							{
								ClassName: "schemathesis",
								Name:      "GET /users",
								Time:      "0.104",
								Failure: &Result{
									Type:    "AssertionError",
									Message: "1. Server error - [500] Internal Server Error",
									Content: "trace",
								},
							},
							{
								ClassName: "schemathesis",
								Name:      "POST /users",
								Time:      "0.201",
								Error: &Result{
									Type:    "RuntimeError",
									Message: "connection reset",
								},
							},
							{
								ClassName: "schemathesis",
								Name:      "DELETE /users",
								Time:      "0.050",
							},
						},
					},
					{
						Name:  "second",
						Tests: 1,
						Cases: []Case{
							{
								ClassName: "second",
								Name:      "GET /health",
								Time:      "0.001",
								Skipped:   &Result{Message: "not implemented"},
							},
						},
					},
				},
			},
		},
		{
			name:  "test_bare_testsuite_root",
			input: bareReport,
			expected: Document{
				Suites: []Suite{
					{
						Name:     "solo",
						Tests:    1,
						Failures: 1,
						Cases: []Case{
							{
								ClassName: "solo",
								Name:      "GET /ping",
								Failure:   &Result{Message: "boom"},
							},
						},
					},
				},
			},
		},
		{
			name:     "test_empty_testsuites",
			input:    `<testsuites></testsuites>`,
			expected: Document{},
		},
		{
			name:    "test_invalid_xml",
			input:   `<testsuites><testsuite`,
			wantErr: true,
		},
		{
			name:    "test_unexpected_root",
			input:   `<report><testcase name="x"/></report>`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(
			tc.name, func(t *testing.T) {
				t.Parallel()

				doc, err := Decode(strings.NewReader(tc.input))
				if tc.wantErr {
					if err == nil {
						t.Fatalf("got: %v, want error", err)
					}
					return
				}
				if err != nil {
					t.Fatal(err)
				}

				if diff := cmp.Diff(tc.expected, doc); diff != "" {
					t.Errorf("mismatch (-want, +got):\n%s", diff)
				}
			},
		)
	}
}

func TestCase_Duration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		time     string
		expected float64
	}{
		{name: "test_ok", time: "0.104", expected: 0.104},
		{name: "test_padded", time: " 2.5 ", expected: 2.5},
		{name: "test_missing", time: "", expected: 0},
		{name: "test_garbage", time: "fast", expected: 0},
		{name: "test_negative", time: "-1", expected: 0},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(
			tc.name, func(t *testing.T) {
				t.Parallel()

				got := Case{Time: tc.time}.Duration()
				if diff := cmp.Diff(tc.expected, got); diff != "" {
					t.Errorf("mismatch (-want, +got):\n%s", diff)
				}
			},
		)
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	t.Run(
		"test_ok", func(t *testing.T) {
			t.Parallel()

			pth := filepath.Join(t.TempDir(), "report.xml")
			if err := os.WriteFile(pth, []byte(bareReport), 0o644); err != nil {
				t.Fatal(err)
			}

			doc, err := DecodeFile(pth)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(1, len(doc.Suites)); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"test_missing_file", func(t *testing.T) {
			t.Parallel()

			pth := filepath.Join(t.TempDir(), "absent.xml")
			_, err := DecodeFile(pth)

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got: %T, want: *ParseError", err)
			}
			if diff := cmp.Diff(pth, parseErr.Path); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		},
	)

	t.Run(
		"test_malformed_file", func(t *testing.T) {
			t.Parallel()

			pth := filepath.Join(t.TempDir(), "broken.xml")
			if err := os.WriteFile(pth, []byte("<testsuites>"), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := DecodeFile(pth)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got: %T, want: *ParseError", err)
			}
		},
	)
}
