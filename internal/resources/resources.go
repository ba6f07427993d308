// Package resources provides the concrete file and folder types that filters
// are evaluated against.
package resources

import (
	"path"
	"time"
)

// File represents a file encountered during a scan.
type File struct {
	Name       string
	Path       string
	Size       int64
	Extension  string
	ModifiedAt time.Time
}

// Folder represents a directory encountered during a scan.
type Folder struct {
	Name       string
	Path       string
	ModifiedAt time.Time
}

func (f *File) GetName() string   { return f.Name }
func (f *File) GetPath() string   { return f.Path }
func (d *Folder) GetName() string { return d.Name }
func (d *Folder) GetPath() string { return d.Path }

// NewFile creates a File, deriving the extension from the name.
func NewFile(name, fullPath string, size int64, modifiedAt time.Time) *File {
	return &File{
		Name:       name,
		Path:       fullPath,
		Size:       size,
		Extension:  path.Ext(name),
		ModifiedAt: modifiedAt,
	}
}

// NewFolder creates a Folder.
func NewFolder(name, fullPath string, modifiedAt time.Time) *Folder {
	return &Folder{
		Name:       name,
		Path:       fullPath,
		ModifiedAt: modifiedAt,
	}
}
