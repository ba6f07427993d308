// Package filter provides composable name and path predicates for file and
// folder resources, built through a small fluent chain.
package filter

// StringOperation represents a string comparison applied by a leaf filter.
type StringOperation int

const (
	OperationStarts StringOperation = iota
	OperationEnds
	OperationContains
	OperationMatches
)

// String returns the operation name.
func (o StringOperation) String() string {
	switch o {
	case OperationStarts:
		return "STARTS"
	case OperationEnds:
		return "ENDS"
	case OperationContains:
		return "CONTAINS"
	case OperationMatches:
		return "MATCHES"
	}
	return "UNKNOWN"
}

// ResourceAttribute selects which string facet of a resource is matched and
// whether matching folds case. The zero value is invalid.
type ResourceAttribute int

const (
	attributeNone ResourceAttribute = iota
	AttributeName
	AttributeNameIgnoringCase
	AttributePath
	AttributePathIgnoringCase
)

// Get extracts the attribute string from a resource.
func (a ResourceAttribute) Get(resource Resource) string {
	switch a {
	case AttributeName, AttributeNameIgnoringCase:
		return resource.GetName()
	case AttributePath, AttributePathIgnoringCase:
		return resource.GetPath()
	}
	return ""
}

// IgnoreCase returns whether matching on this attribute folds case.
func (a ResourceAttribute) IgnoreCase() bool {
	return a == AttributeNameIgnoringCase || a == AttributePathIgnoringCase
}

// Valid returns whether the attribute is one of the defined variants.
func (a ResourceAttribute) Valid() bool {
	switch a {
	case AttributeName, AttributeNameIgnoringCase, AttributePath, AttributePathIgnoringCase:
		return true
	}
	return false
}

// String returns the attribute name.
func (a ResourceAttribute) String() string {
	switch a {
	case AttributeName:
		return "NAME"
	case AttributeNameIgnoringCase:
		return "NAME_IGNORING_CASE"
	case AttributePath:
		return "PATH"
	case AttributePathIgnoringCase:
		return "PATH_IGNORING_CASE"
	}
	return "INVALID"
}
