// Package expr parses command-line filter expressions into filters.
package expr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pathhound/pathhound/pkg/filter"
)

// exprRegex splits an expression into key, operator (with optional negation)
// and value. Keys select the attribute: "name" and "path" match case
// insensitively, "cname" and "cpath" preserve case. Operators are
// ^ (starting), $ (ending), @ (containing) and = (matching), each negatable
// with a leading '!'. The value may hold multiple literals separated by '|',
// any of which may match.
// Examples: "name^.git", "path!$.tmp", "name=README.md|README.rst".
var exprRegex = regexp.MustCompile(`^(name|cname|path|cpath)(!?[=^$@])(.*)$`)

// Parse compiles a single filter expression into a Filter.
func Parse(expression string) (filter.Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	parts := exprRegex.FindStringSubmatch(expression)
	if parts == nil {
		return nil, fmt.Errorf("invalid filter expression: %s", expression)
	}

	key := parts[1]
	operator := parts[2]
	rawValue := parts[3]

	negate := strings.HasPrefix(operator, "!")
	operator = strings.TrimPrefix(operator, "!")

	values := strings.Split(rawValue, "|")

	var anchor *filter.AttributeFilter
	switch key {
	case "name":
		anchor = filter.Names()
	case "cname":
		anchor = filter.CaseSensitiveNames()
	case "path":
		anchor = filter.Paths()
	case "cpath":
		anchor = filter.CaseSensitivePaths()
	}

	switch operator {
	case "^":
		if negate {
			return anchor.NotStarting(values...), nil
		}
		return anchor.Starting(values...), nil
	case "$":
		if negate {
			return anchor.NotEnding(values...), nil
		}
		return anchor.Ending(values...), nil
	case "@":
		if negate {
			return anchor.NotContaining(values...), nil
		}
		return anchor.Containing(values...), nil
	case "=":
		if negate {
			return anchor.NotMatching(values...), nil
		}
		return anchor.Matching(values...), nil
	}

	return nil, fmt.Errorf("unsupported operator in filter expression: %s", expression)
}

// ParseAll compiles a list of expressions into a single Filter that matches
// when every expression matches. With no expressions the result matches
// everything.
func ParseAll(expressions []string) (filter.Filter, error) {
	filters := make([]filter.Filter, 0, len(expressions))
	for _, expression := range expressions {
		f, err := Parse(expression)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return &allOfFilter{filters: filters}, nil
}

// allOfFilter matches when every child filter matches. Expressions built
// from different attributes cannot share one builder chain, so the AND
// across expressions lives here.
type allOfFilter struct {
	filters []filter.Filter
}

func (f *allOfFilter) Match(resource filter.Resource) bool {
	for _, child := range f.filters {
		if !child.Match(resource) {
			return false
		}
	}
	return true
}
