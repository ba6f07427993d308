package filter

import (
	"strings"
)

// Resource is the view of a file or folder that filters match against.
// Implementations expose a short name and a full hierarchical path.
type Resource interface {
	GetName() string
	GetPath() string
}

// Filter decides whether a resource matches. Filters are immutable and safe
// for concurrent use.
type Filter interface {
	Match(resource Resource) bool
}

// stringFilter is a leaf filter comparing one resource attribute against one
// literal value.
type stringFilter struct {
	attribute ResourceAttribute
	operation StringOperation
	value     string
}

func (f *stringFilter) Match(resource Resource) bool {
	attributeString := f.attribute.Get(resource)
	matchString := f.value
	if f.attribute.IgnoreCase() {
		// strings.ToLower is locale-independent, so folding is
		// deterministic across platforms.
		attributeString = strings.ToLower(attributeString)
		matchString = strings.ToLower(matchString)
	}

	switch f.operation {
	case OperationStarts:
		return strings.HasPrefix(attributeString, matchString)
	case OperationEnds:
		return strings.HasSuffix(attributeString, matchString)
	case OperationContains:
		return strings.Contains(attributeString, matchString)
	case OperationMatches:
		return attributeString == matchString
	}
	return false
}

// anyOfFilter matches when at least one child filter matches. An empty
// anyOfFilter never matches.
type anyOfFilter struct {
	filters []Filter
}

func (f *anyOfFilter) Match(resource Resource) bool {
	for _, child := range f.filters {
		if child.Match(resource) {
			return true
		}
	}
	return false
}

// invertFilter negates a child filter.
type invertFilter struct {
	filter Filter
}

func (f *invertFilter) Match(resource Resource) bool {
	return !f.filter.Match(resource)
}
