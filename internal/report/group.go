package report

import (
	"net/url"
	"regexp"
	"sort"

	"github.com/dandreyanov/go-reporthesis/internal/slice"
)

var urlRE = regexp.MustCompile(`https?://[^\s'"]+`)

// GroupByEndpoint partitions records by exact endpoint equality. Records
// keep their input order inside each group; groups are ordered by
// descending count with ties broken by first appearance of the endpoint.
func GroupByEndpoint(records []Record) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)

	for _, rec := range records {
		i, ok := index[rec.Endpoint]
		if !ok {
			i = len(groups)
			index[rec.Endpoint] = i
			groups = append(groups, Group{Endpoint: rec.Endpoint})
		}

		groups[i].Records = append(groups[i].Records, rec)
	}

	for i := range groups {
		groups[i].Count = len(groups[i].Records)
	}

	sort.SliceStable(
		groups, func(i, j int) bool {
			return groups[i].Count > groups[j].Count
		},
	)

	return groups
}

// Summarize computes the document statistics over the full record set.
// Empty input yields a zero summary.
func Summarize(records []Record) Summary {
	summary := Summary{TotalFailed: len(records)}

	for _, rec := range records {
		switch rec.StatusCodeClass {
		case CodeClass5xx:
			summary.Count5xx++
		case CodeClass4xx:
			summary.Count4xx++
		default:
			summary.CountOther++
		}

		if rec.DurationSeconds > summary.MaxDuration {
			summary.MaxDuration = rec.DurationSeconds
		}
	}

	return summary
}

// BaseURLs returns the sorted unique scheme://host origins the records
// touched, mined from request URLs with suite names as a fallback.
func BaseURLs(records []Record) []string {
	origins := make([]string, 0, len(records))

	for _, rec := range records {
		raw := rec.RequestURL
		if raw == "" {
			raw = urlRE.FindString(rec.SuiteName)
		}
		if raw == "" {
			continue
		}

		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}

		origins = append(origins, u.Scheme+"://"+u.Host)
	}

	origins = slice.Uniq(origins)
	sort.Strings(origins)

	return origins
}

// NewDocument builds the render input from a flat record set. GeneratedAt
// stays empty here and is stamped by the renderer.
func NewDocument(title string, records []Record) Document {
	return Document{
		Title:    title,
		Groups:   GroupByEndpoint(records),
		Summary:  Summarize(records),
		BaseURLs: BaseURLs(records),
	}
}
