package news

import "strings"

// DefaultQuery matches futures & options market coverage
const DefaultQuery = `F&O OR "futures and options" OR derivatives OR "F and O" OR "options" OR "futures"`

// BuildQuery extends base with a user keyword filter.
// The filter is OR-ed in as a group and never replaces base.
func BuildQuery(base, filter string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultQuery
	}

	filter = strings.TrimSpace(filter)
	if filter == "" {
		return base
	}

	return base + " OR (" + filter + ")"
}
