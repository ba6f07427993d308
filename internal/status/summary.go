// Package status reports aggregate scan results to the terminal.
package status

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pathhound/pathhound/internal/utils"
)

// Results holds aggregate counters collected across all targets. Workers
// update it under the shared lock.
type Results struct {
	Success            int64
	Errors             int64
	SharesScanned      int64
	FilesTotal         int64
	FilesMatched       int64
	DirectoriesTotal   int64
	DirectoriesMatched int64
	MatchedBytes       int64
}

// PrintFinalSummary prints the final summary.
func PrintFinalSummary(results *Results, lock *sync.Mutex, elapsed time.Duration) {
	lock.Lock()
	defer lock.Unlock()

	fmt.Println("\n" + strings.Repeat("─", 60))
	fmt.Println("                      SCAN COMPLETE")
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("  Targets:     %d successful, %d errors\n",
		results.Success, results.Errors)
	if results.SharesScanned > 0 {
		fmt.Printf("  Shares:      %d scanned\n", results.SharesScanned)
	}
	fmt.Printf("  Files:       %d matched (total: %d)\n",
		results.FilesMatched, results.FilesTotal)
	fmt.Printf("  Directories: %d matched (total: %d)\n",
		results.DirectoriesMatched, results.DirectoriesTotal)
	if results.MatchedBytes > 0 {
		fmt.Printf("  Data:        %s in matched files\n",
			utils.FormatFileSize(results.MatchedBytes))
	}
	fmt.Printf("  Time:        %s\n", utils.DeltaTime(elapsed))
	fmt.Println(strings.Repeat("─", 60))
}

// PrintStatus prints a one-line status to stdout (for logging).
func PrintStatus(results *Results, lock *sync.Mutex, elapsed time.Duration) {
	lock.Lock()
	defer lock.Unlock()

	fmt.Printf("[status] Targets: %d | Files: %d/%d | Dirs: %d/%d | Errors: %d | Time: %s\n",
		results.Success+results.Errors,
		results.FilesMatched, results.FilesTotal,
		results.DirectoriesMatched, results.DirectoriesTotal,
		results.Errors,
		utils.DeltaTime(elapsed),
	)
}
