// Package checkpoint provides scan state persistence for resumable scans.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pathhound/pathhound/internal/targets"
)

// checkpointVersion is bumped when the file format changes.
const checkpointVersion = "1.0"

// Statistics holds checkpoint statistics.
type Statistics struct {
	Success            int64 `json:"success"`
	Errors             int64 `json:"errors"`
	FilesTotal         int64 `json:"files_total"`
	FilesMatched       int64 `json:"files_matched"`
	DirectoriesTotal   int64 `json:"directories_total"`
	DirectoriesMatched int64 `json:"directories_matched"`
}

// Snapshot is the scan state captured at save time.
type Snapshot struct {
	MatchedPaths []string
	Statistics   Statistics
}

// Checkpoint represents a saved scan state.
type Checkpoint struct {
	Version          string          `json:"version"`
	Timestamp        time.Time       `json:"timestamp"`
	ProcessedTargets map[string]bool `json:"processed_targets"`
	TotalTargets     int             `json:"total_targets"`
	MatchedPaths     []string        `json:"matched_paths"`
	Statistics       Statistics      `json:"statistics"`
}

// Manager manages checkpointing operations.
type Manager struct {
	filepath         string
	interval         time.Duration
	processedTargets map[string]bool
	mu               sync.RWMutex
	stopChan         chan struct{}
	saveChan         chan struct{}
	wg               sync.WaitGroup
	enabled          bool
	started          bool
}

// NewManager creates a new checkpoint manager. An empty filepath disables
// checkpointing.
func NewManager(filepath string, interval time.Duration) *Manager {
	return &Manager{
		filepath:         filepath,
		interval:         interval,
		processedTargets: make(map[string]bool),
		stopChan:         make(chan struct{}),
		saveChan:         make(chan struct{}, 1),
		enabled:          filepath != "",
	}
}

// IsEnabled returns whether checkpointing is enabled.
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// Filepath returns the checkpoint file path.
func (m *Manager) Filepath() string {
	return m.filepath
}

// MarkTargetProcessed marks a target as processed.
func (m *Manager) MarkTargetProcessed(target targets.Target) {
	if !m.enabled {
		return
	}
	m.mu.Lock()
	m.processedTargets[target.Value] = true
	m.mu.Unlock()
}

// IsTargetProcessed checks if a target has been processed.
func (m *Manager) IsTargetProcessed(target targets.Target) bool {
	if !m.enabled {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processedTargets[target.Value]
}

// ProcessedCount returns the number of processed targets.
func (m *Manager) ProcessedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.processedTargets)
}

// RestoreFrom restores the manager state from a loaded checkpoint.
func (m *Manager) RestoreFrom(cp *Checkpoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for target, done := range cp.ProcessedTargets {
		if done {
			m.processedTargets[target] = true
		}
	}
}

// Start begins periodic checkpointing. snapshot is called at save time to
// capture the current scan state.
func (m *Manager) Start(totalTargets int, snapshot func() Snapshot) {
	if !m.enabled || m.interval <= 0 || m.started {
		return
	}
	m.started = true

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stopChan:
				// Final save before exiting
				m.save(totalTargets, snapshot())
				return
			case <-ticker.C:
				m.save(totalTargets, snapshot())
			case <-m.saveChan:
				m.save(totalTargets, snapshot())
			}
		}
	}()
}

// TriggerSave requests an immediate save.
func (m *Manager) TriggerSave() {
	if !m.enabled {
		return
	}
	select {
	case m.saveChan <- struct{}{}:
	default:
	}
}

// Stop stops periodic checkpointing, performing a final save.
func (m *Manager) Stop() {
	if !m.enabled || !m.started {
		return
	}
	close(m.stopChan)
	m.wg.Wait()
	m.started = false
}

// save writes the current state to the checkpoint file.
func (m *Manager) save(totalTargets int, snap Snapshot) error {
	m.mu.RLock()
	processed := make(map[string]bool, len(m.processedTargets))
	for k, v := range m.processedTargets {
		processed[k] = v
	}
	m.mu.RUnlock()

	cp := &Checkpoint{
		Version:          checkpointVersion,
		Timestamp:        time.Now(),
		ProcessedTargets: processed,
		TotalTargets:     totalTargets,
		MatchedPaths:     snap.MatchedPaths,
		Statistics:       snap.Statistics,
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	// Write to a temp file first so an interrupted save never corrupts an
	// existing checkpoint.
	tmpPath := m.filepath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}

	return os.Rename(tmpPath, m.filepath)
}

// Exists checks whether a checkpoint file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads a checkpoint file.
func Load(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint: %w", err)
	}

	return &cp, nil
}

// Delete removes a checkpoint file.
func Delete(path string) error {
	return os.Remove(path)
}
