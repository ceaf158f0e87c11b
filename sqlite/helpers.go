package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/worldart"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// parseDate parses a stored calendar date; an empty value is the zero date.
func parseDate(value, fieldName string) (worldart.Date, error) {
	if value == "" {
		return worldart.Date{}, nil
	}
	d, err := worldart.ParseDate(value)
	if err != nil {
		return worldart.Date{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return d, nil
}

// formatDate formats a date for storage; the zero date is stored empty.
func formatDate(d worldart.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// encodeList stores a string list as a JSON array.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList reads a JSON array column. An empty array decodes to nil.
func decodeList(value, fieldName string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
