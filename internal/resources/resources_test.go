package resources

import (
	"testing"
	"time"

	"github.com/pathhound/pathhound/pkg/filter"
)

func TestNewFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{"go source", "main.go", ".go"},
		{"archive", "backup.tar.gz", ".gz"},
		{"no extension", "Makefile", ""},
		{"hidden file", ".gitignore", ".gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFile(tt.fileName, "/srv/"+tt.fileName, 10, time.Now())
			if f.Extension != tt.expected {
				t.Errorf("Expected extension %q, got %q", tt.expected, f.Extension)
			}
		})
	}
}

func TestResourceInterface(t *testing.T) {
	var _ filter.Resource = NewFile("a.txt", "/data/a.txt", 1, time.Time{})
	var _ filter.Resource = NewFolder("data", "/data", time.Time{})

	f := NewFile("a.txt", "/data/a.txt", 1, time.Time{})
	if f.GetName() != "a.txt" || f.GetPath() != "/data/a.txt" {
		t.Errorf("Unexpected file accessors: %q %q", f.GetName(), f.GetPath())
	}

	d := NewFolder("data", "/data", time.Time{})
	if d.GetName() != "data" || d.GetPath() != "/data" {
		t.Errorf("Unexpected folder accessors: %q %q", d.GetName(), d.GetPath())
	}
}
