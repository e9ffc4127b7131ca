package dataprocessing

import (
	"strings"

	"github.com/samber/lo"
)

// columnMatcher decides whether a normalized header cell names a column
type columnMatcher func(header string) bool

func containsAll(parts ...string) columnMatcher {
	return func(header string) bool {
		for _, part := range parts {
			if !strings.Contains(header, part) {
				return false
			}
		}
		return true
	}
}

// columnMap holds the index of each discovered column, -1 when absent
type columnMap struct {
	year   int
	course int
	total  int
	filled int
	vacant int
	cost   int
	stress int
}

// normalizeHeader trims and lowercases every header cell
func normalizeHeader(cells []string) []string {
	return lo.Map(cells, func(cell string, _ int) string {
		return strings.ToLower(strings.TrimSpace(cell))
	})
}

// findColumn returns the index of the first header cell accepted by match
func findColumn(header []string, match columnMatcher) int {
	_, idx, found := lo.FindIndexOf(header, func(h string) bool {
		return match(h)
	})
	if !found {
		return -1
	}
	return idx
}

// discoverColumns maps header cells to record fields by substring. The
// first matching cell wins and column order does not matter.
func discoverColumns(header []string) (columnMap, error) {
	normalized := normalizeHeader(header)

	cols := columnMap{
		year:   findColumn(normalized, containsAll("year")),
		course: findColumn(normalized, containsAll("course")),
		total:  findColumn(normalized, containsAll("total", "seat")),
		filled: findColumn(normalized, containsAll("fill")),
		vacant: findColumn(normalized, containsAll("vacant")),
		cost:   findColumn(normalized, containsAll("exam", "cost")),
		stress: findColumn(normalized, containsAll("stress")),
	}

	var missing []string
	if cols.year < 0 {
		missing = append(missing, "year")
	}
	if cols.course < 0 {
		missing = append(missing, "course")
	}
	if cols.total < 0 {
		missing = append(missing, "total seats")
	}
	if cols.filled < 0 {
		missing = append(missing, "seats filled")
	}
	if len(missing) > 0 {
		return cols, newMissingColumnsError(missing)
	}

	return cols, nil
}

// field returns the trimmed cell at idx, or "" when the row is too short
// or the column is absent
func field(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}
