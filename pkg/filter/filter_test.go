package filter

import (
	"testing"
)

// testResource is a minimal Resource for tests.
type testResource struct {
	name string
	path string
}

func (r *testResource) GetName() string { return r.name }
func (r *testResource) GetPath() string { return r.path }

func TestStringFilterOperations(t *testing.T) {
	resource := &testResource{name: "Main.java", path: "/src/Main.java"}

	tests := []struct {
		name      string
		attribute ResourceAttribute
		operation StringOperation
		value     string
		match     bool
	}{
		{"Name starts", AttributeName, OperationStarts, "Main", true},
		{"Name starts wrong case", AttributeName, OperationStarts, "main", false},
		{"Name starts folded", AttributeNameIgnoringCase, OperationStarts, "main", true},
		{"Name ends", AttributeName, OperationEnds, ".java", true},
		{"Name ends folded", AttributeNameIgnoringCase, OperationEnds, ".JAVA", true},
		{"Name contains", AttributeName, OperationContains, "ain", true},
		{"Name contains missing", AttributeName, OperationContains, "xyz", false},
		{"Name matches", AttributeName, OperationMatches, "Main.java", true},
		{"Name matches is not substring", AttributeName, OperationMatches, "Main", false},
		{"Name matches folded", AttributeNameIgnoringCase, OperationMatches, "MAIN.JAVA", true},
		{"Path starts", AttributePath, OperationStarts, "/src", true},
		{"Path ends", AttributePath, OperationEnds, ".java", true},
		{"Path ends wrong case", AttributePath, OperationEnds, ".JAVA", false},
		{"Path ends folded", AttributePathIgnoringCase, OperationEnds, ".JAVA", true},
		{"Path contains", AttributePathIgnoringCase, OperationContains, "SRC", true},
		{"Empty value starts", AttributeName, OperationStarts, "", true},
		{"Empty value contains", AttributeName, OperationContains, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stringFilter{attribute: tt.attribute, operation: tt.operation, value: tt.value}
			if got := f.Match(resource); got != tt.match {
				t.Errorf("Expected Match=%v for %s %s %q, got %v",
					tt.match, tt.attribute, tt.operation, tt.value, got)
			}
		})
	}
}

func TestStringFilterEmptyResourceStrings(t *testing.T) {
	resource := &testResource{name: "", path: ""}

	starts := &stringFilter{attribute: AttributeName, operation: OperationStarts, value: "a"}
	if starts.Match(resource) {
		t.Error("Expected no match for non-empty prefix against empty name")
	}

	matches := &stringFilter{attribute: AttributeName, operation: OperationMatches, value: ""}
	if !matches.Match(resource) {
		t.Error("Expected empty literal to match empty name exactly")
	}
}

func TestAnyOfFilter(t *testing.T) {
	resource := &testResource{name: "backend_test", path: "/repo/backend_test"}

	a := &stringFilter{attribute: AttributeNameIgnoringCase, operation: OperationStarts, value: "a"}
	b := &stringFilter{attribute: AttributeNameIgnoringCase, operation: OperationStarts, value: "b"}
	z := &stringFilter{attribute: AttributeNameIgnoringCase, operation: OperationStarts, value: "z"}

	tests := []struct {
		name    string
		filters []Filter
		match   bool
	}{
		{"Empty group never matches", nil, false},
		{"Single miss", []Filter{z}, false},
		{"Single hit", []Filter{b}, true},
		{"Any of two, one hits", []Filter{a, b}, true},
		{"Any of two, none hit", []Filter{a, z}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &anyOfFilter{filters: tt.filters}
			if got := f.Match(resource); got != tt.match {
				t.Errorf("Expected Match=%v, got %v", tt.match, got)
			}
		})
	}
}

func TestInvertFilter(t *testing.T) {
	resources := []*testResource{
		{name: ".gitignore", path: "/repo/.gitignore"},
		{name: "main.go", path: "/repo/main.go"},
		{name: "", path: ""},
	}

	child := &stringFilter{attribute: AttributeNameIgnoringCase, operation: OperationStarts, value: "."}
	inverted := &invertFilter{filter: child}

	// Not(P).Match(R) must equal !P.Match(R) for every resource.
	for _, resource := range resources {
		if inverted.Match(resource) != !child.Match(resource) {
			t.Errorf("Expected inverted match to negate child match for %q", resource.name)
		}
	}
}

func TestResourceAttributeGet(t *testing.T) {
	resource := &testResource{name: "notes.txt", path: "/home/user/notes.txt"}

	tests := []struct {
		attribute  ResourceAttribute
		value      string
		ignoreCase bool
	}{
		{AttributeName, "notes.txt", false},
		{AttributeNameIgnoringCase, "notes.txt", true},
		{AttributePath, "/home/user/notes.txt", false},
		{AttributePathIgnoringCase, "/home/user/notes.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.attribute.String(), func(t *testing.T) {
			if got := tt.attribute.Get(resource); got != tt.value {
				t.Errorf("Expected Get=%q, got %q", tt.value, got)
			}
			if got := tt.attribute.IgnoreCase(); got != tt.ignoreCase {
				t.Errorf("Expected IgnoreCase=%v, got %v", tt.ignoreCase, got)
			}
			if !tt.attribute.Valid() {
				t.Errorf("Expected %s to be valid", tt.attribute)
			}
		})
	}

	var zero ResourceAttribute
	if zero.Valid() {
		t.Error("Expected zero attribute to be invalid")
	}
}
