// Package scanner walks resource trees and applies filters to every file
// and folder it visits.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pathhound/pathhound/internal/resources"
	"github.com/pathhound/pathhound/internal/smb"
	"github.com/pathhound/pathhound/internal/utils"
	"github.com/pathhound/pathhound/pkg/filter"
)

// Counts holds counts of visited and matched items during a traversal.
type Counts struct {
	TotalFiles         int64
	MatchedFiles       int64
	TotalDirectories   int64
	MatchedDirectories int64
	MatchedBytes       int64
}

// Add adds another Counts to this one.
func (c *Counts) Add(other Counts) {
	c.TotalFiles += other.TotalFiles
	c.MatchedFiles += other.MatchedFiles
	c.TotalDirectories += other.TotalDirectories
	c.MatchedDirectories += other.MatchedDirectories
	c.MatchedBytes += other.MatchedBytes
}

// MatchFunc receives every resource that passes the filters.
type MatchFunc func(resource filter.Resource)

// Scanner applies a filter to every resource in a tree.
type Scanner struct {
	filter     filter.Filter
	sizeFilter string
	maxDepth   int
	onMatch    MatchFunc
}

// NewScanner creates a Scanner. maxDepth 0 means unlimited. sizeFilter is an
// optional size constraint for files ("+1M", "-500K", ""); it never applies
// to folders. onMatch may be nil when only counts are wanted.
func NewScanner(flt filter.Filter, maxDepth int, sizeFilter string, onMatch MatchFunc) *Scanner {
	return &Scanner{
		filter:     flt,
		sizeFilter: sizeFilter,
		maxDepth:   maxDepth,
		onMatch:    onMatch,
	}
}

// ScanTree walks a local directory tree rooted at root.
func (s *Scanner) ScanTree(ctx context.Context, root string) (Counts, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Counts{}, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return Counts{}, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	return s.scanTreeAtDepth(ctx, root, 0)
}

// scanTreeAtDepth lists one local directory and recurses into subdirectories.
func (s *Scanner) scanTreeAtDepth(ctx context.Context, dir string, depth int) (Counts, error) {
	counts := Counts{}

	if err := ctx.Err(); err != nil {
		return counts, err
	}
	if s.maxDepth > 0 && depth >= s.maxDepth {
		return counts, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are skipped, not fatal.
		return counts, nil
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			counts.TotalDirectories++

			info, _ := entry.Info()
			folder := resources.NewFolder(entry.Name(), fullPath, modTime(info))
			if s.filter.Match(folder) {
				counts.MatchedDirectories++
				s.report(folder)
			}

			sub, err := s.scanTreeAtDepth(ctx, fullPath, depth+1)
			counts.Add(sub)
			if err != nil {
				return counts, err
			}
			continue
		}

		counts.TotalFiles++

		info, err := entry.Info()
		if err != nil {
			continue
		}
		file := resources.NewFile(entry.Name(), fullPath, info.Size(), info.ModTime())
		if s.matchFile(file) {
			counts.MatchedFiles++
			counts.MatchedBytes += file.Size
			s.report(file)
		}
	}

	return counts, nil
}

// ScanShare walks a mounted SMB share through the given session. basePath is
// the path prefix used for reported resources, e.g. "//host/share".
func (s *Scanner) ScanShare(ctx context.Context, session *smb.Session, basePath string) (Counts, error) {
	return s.scanShareAtDepth(ctx, session, basePath, ".", 0)
}

// scanShareAtDepth lists one share directory and recurses into subdirectories.
func (s *Scanner) scanShareAtDepth(ctx context.Context, session *smb.Session, basePath, dir string, depth int) (Counts, error) {
	counts := Counts{}

	if err := ctx.Err(); err != nil {
		return counts, err
	}
	if s.maxDepth > 0 && depth >= s.maxDepth {
		return counts, nil
	}

	entries, err := session.ListContents(dir)
	if err != nil {
		if depth == 0 {
			return counts, err
		}
		// Unreadable subdirectories are skipped, not fatal.
		return counts, nil
	}

	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}

		relPath := path.Join(dir, entry.Name)
		fullPath := basePath + "/" + relPath

		if entry.IsDir {
			counts.TotalDirectories++

			folder := resources.NewFolder(entry.Name, fullPath, entry.ModifiedTime)
			if s.filter.Match(folder) {
				counts.MatchedDirectories++
				s.report(folder)
			}

			sub, err := s.scanShareAtDepth(ctx, session, basePath, relPath, depth+1)
			counts.Add(sub)
			if err != nil {
				return counts, err
			}
			continue
		}

		counts.TotalFiles++

		file := resources.NewFile(entry.Name, fullPath, entry.Size, entry.ModifiedTime)
		if s.matchFile(file) {
			counts.MatchedFiles++
			counts.MatchedBytes += file.Size
			s.report(file)
		}
	}

	return counts, nil
}

// matchFile applies the name/path filter and the optional size constraint.
func (s *Scanner) matchFile(file *resources.File) bool {
	if !s.filter.Match(file) {
		return false
	}
	if s.sizeFilter != "" && !utils.MatchesSizeFilter(file.Size, s.sizeFilter) {
		return false
	}
	return true
}

func (s *Scanner) report(resource filter.Resource) {
	if s.onMatch != nil {
		s.onMatch(resource)
	}
}

func modTime(info os.FileInfo) (t time.Time) {
	if info != nil {
		t = info.ModTime()
	}
	return t
}
