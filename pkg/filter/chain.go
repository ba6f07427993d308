package filter

// AttributeFilter is one stage of a filter chain. Each builder call returns a
// new stage whose parent is the current one, so successive calls AND together
// while the values within a single call OR together. Stages are immutable:
// a partial chain can be branched into divergent continuations and shared
// across goroutines.
type AttributeFilter struct {
	attribute ResourceAttribute
	parent    *AttributeFilter
	filter    Filter
}

// Names starts filtering on resource names. Matching is case insensitive.
func Names() *AttributeFilter {
	return &AttributeFilter{attribute: AttributeNameIgnoringCase}
}

// CaseSensitiveNames starts filtering on resource names, preserving case.
func CaseSensitiveNames() *AttributeFilter {
	return &AttributeFilter{attribute: AttributeName}
}

// Paths starts filtering on resource paths. Matching is case insensitive.
func Paths() *AttributeFilter {
	return &AttributeFilter{attribute: AttributePathIgnoringCase}
}

// CaseSensitivePaths starts filtering on resource paths, preserving case.
func CaseSensitivePaths() *AttributeFilter {
	return &AttributeFilter{attribute: AttributePath}
}

// For starts filtering on the given attribute. It returns
// ErrInvalidAttribute when the attribute is not one of the defined variants.
func For(attribute ResourceAttribute) (*AttributeFilter, error) {
	if !attribute.Valid() {
		return nil, ErrInvalidAttribute
	}
	return &AttributeFilter{attribute: attribute}, nil
}

// Hidden matches hidden resources, ie names starting with '.'.
func Hidden() Filter {
	return Names().Starting(".")
}

// NonHidden matches non-hidden resources, ie names not starting with '.'.
func NonHidden() Filter {
	return Names().NotStarting(".")
}

// Starting filters attributes starting with the given prefixes. With
// multiple values any may match.
func (f *AttributeFilter) Starting(prefixes ...string) *AttributeFilter {
	return f.chain(f.stringFilter(OperationStarts, prefixes))
}

// NotStarting filters attributes starting with none of the given prefixes.
func (f *AttributeFilter) NotStarting(prefixes ...string) *AttributeFilter {
	return f.chain(not(f.stringFilter(OperationStarts, prefixes)))
}

// Ending filters attributes ending with the given suffixes. With multiple
// values any may match.
func (f *AttributeFilter) Ending(suffixes ...string) *AttributeFilter {
	return f.chain(f.stringFilter(OperationEnds, suffixes))
}

// NotEnding filters attributes ending with none of the given suffixes.
func (f *AttributeFilter) NotEnding(suffixes ...string) *AttributeFilter {
	return f.chain(not(f.stringFilter(OperationEnds, suffixes)))
}

// Containing filters attributes containing the given substrings. With
// multiple values any may match.
func (f *AttributeFilter) Containing(contents ...string) *AttributeFilter {
	return f.chain(f.stringFilter(OperationContains, contents))
}

// NotContaining filters attributes containing none of the given substrings.
func (f *AttributeFilter) NotContaining(contents ...string) *AttributeFilter {
	return f.chain(not(f.stringFilter(OperationContains, contents)))
}

// Matching filters attributes equal to the given values. With multiple
// values any may match. This is literal equality, not pattern matching.
func (f *AttributeFilter) Matching(values ...string) *AttributeFilter {
	return f.chain(f.stringFilter(OperationMatches, values))
}

// NotMatching filters attributes equal to none of the given values.
func (f *AttributeFilter) NotMatching(values ...string) *AttributeFilter {
	return f.chain(not(f.stringFilter(OperationMatches, values)))
}

// chain returns a new stage with the receiver as parent and the given filter
// as the local constraint.
func (f *AttributeFilter) chain(local Filter) *AttributeFilter {
	return &AttributeFilter{
		attribute: f.attribute,
		parent:    f,
		filter:    local,
	}
}

// stringFilter builds the OR group for one builder call: one leaf filter per
// value. An empty value list yields a group that never matches.
func (f *AttributeFilter) stringFilter(operation StringOperation, values []string) Filter {
	filters := make([]Filter, 0, len(values))
	for _, value := range values {
		filters = append(filters, &stringFilter{
			attribute: f.attribute,
			operation: operation,
			value:     value,
		})
	}
	return &anyOfFilter{filters: filters}
}

func not(filter Filter) Filter {
	return &invertFilter{filter: filter}
}

// Match evaluates the chain against a resource: the parent stage (if any)
// must match, then the local filter (if any) must match. A bare attribute
// anchor matches everything.
func (f *AttributeFilter) Match(resource Resource) bool {
	if f.parent != nil && !f.parent.Match(resource) {
		return false
	}
	return f.filter == nil || f.filter.Match(resource)
}
