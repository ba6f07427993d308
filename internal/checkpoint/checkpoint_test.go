package checkpoint

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pathhound/pathhound/internal/targets"
)

func TestManagerDisabled(t *testing.T) {
	m := NewManager("", time.Second)

	if m.IsEnabled() {
		t.Error("Expected manager with empty path to be disabled")
	}

	target := targets.Target{Type: targets.TypeLocal, Value: "/tmp"}
	m.MarkTargetProcessed(target)
	if m.IsTargetProcessed(target) {
		t.Error("Expected disabled manager to track nothing")
	}
}

func TestManagerTracksTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.checkpoint")
	m := NewManager(path, time.Minute)

	done := targets.Target{Type: targets.TypeIPv4, Value: "10.0.0.1"}
	pending := targets.Target{Type: targets.TypeIPv4, Value: "10.0.0.2"}

	m.MarkTargetProcessed(done)

	if !m.IsTargetProcessed(done) {
		t.Error("Expected processed target to be tracked")
	}
	if m.IsTargetProcessed(pending) {
		t.Error("Expected pending target to not be tracked")
	}
	if m.ProcessedCount() != 1 {
		t.Errorf("Expected 1 processed target, got %d", m.ProcessedCount())
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.checkpoint")
	m := NewManager(path, time.Minute)

	m.MarkTargetProcessed(targets.Target{Type: targets.TypeLocal, Value: "/srv/data"})

	snap := Snapshot{
		MatchedPaths: []string{"/srv/data/a.xml", "/srv/data/b.xml"},
		Statistics:   Statistics{Success: 1, FilesTotal: 10, FilesMatched: 2},
	}
	if err := m.save(3, snap); err != nil {
		t.Fatalf("save returned error: %v", err)
	}

	if !Exists(path) {
		t.Fatal("Expected checkpoint file to exist after save")
	}

	cp, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cp.Version != checkpointVersion {
		t.Errorf("Expected version %q, got %q", checkpointVersion, cp.Version)
	}
	if cp.TotalTargets != 3 {
		t.Errorf("Expected 3 total targets, got %d", cp.TotalTargets)
	}
	if !cp.ProcessedTargets["/srv/data"] {
		t.Error("Expected /srv/data to be recorded as processed")
	}
	if len(cp.MatchedPaths) != 2 {
		t.Errorf("Expected 2 matched paths, got %d", len(cp.MatchedPaths))
	}
	if cp.Statistics.FilesMatched != 2 {
		t.Errorf("Expected 2 matched files in statistics, got %d", cp.Statistics.FilesMatched)
	}
}

func TestRestoreFrom(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "scan.checkpoint"), time.Minute)

	m.RestoreFrom(&Checkpoint{
		ProcessedTargets: map[string]bool{"10.0.0.1": true, "10.0.0.2": false},
	})

	if !m.IsTargetProcessed(targets.Target{Value: "10.0.0.1"}) {
		t.Error("Expected restored target to be processed")
	}
	if m.IsTargetProcessed(targets.Target{Value: "10.0.0.2"}) {
		t.Error("Expected unfinished target to not be processed")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing checkpoint file")
	}
}

func TestStartAndStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.checkpoint")
	m := NewManager(path, 10*time.Millisecond)

	m.Start(1, func() Snapshot {
		return Snapshot{Statistics: Statistics{Success: 1}}
	})
	m.TriggerSave()
	time.Sleep(50 * time.Millisecond)
	m.Stop()

	if !Exists(path) {
		t.Fatal("Expected checkpoint file after Stop")
	}
	cp, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cp.Statistics.Success != 1 {
		t.Errorf("Expected success=1 in saved statistics, got %d", cp.Statistics.Success)
	}
}
