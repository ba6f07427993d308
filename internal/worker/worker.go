// Package worker processes scan targets, local and remote.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pathhound/pathhound/internal/credentials"
	"github.com/pathhound/pathhound/internal/logger"
	"github.com/pathhound/pathhound/internal/scanner"
	"github.com/pathhound/pathhound/internal/smb"
	"github.com/pathhound/pathhound/internal/status"
	"github.com/pathhound/pathhound/internal/targets"
	"github.com/pathhound/pathhound/internal/utils"
	"github.com/pathhound/pathhound/pkg/filter"
)

// Options holds worker configuration options.
type Options struct {
	Creds             *credentials.Credentials
	Timeout           time.Duration
	Nameserver        string
	MaxWorkersPerHost int
	Depth             int
	SizeFilter        string
	Port              int
}

// ProcessTarget processes a single target. Local targets are walked on the
// local filesystem; network targets are scanned share by share over SMB.
func ProcessTarget(
	ctx context.Context,
	target targets.Target,
	opts *Options,
	flt filter.Filter,
	results *status.Results,
	resultsLock *sync.Mutex,
	log logger.Interface,
	onMatch scanner.MatchFunc,
) {
	if target.IsLocal() {
		processLocalTarget(ctx, target, opts, flt, results, resultsLock, log, onMatch)
		return
	}
	processNetworkTarget(ctx, target, opts, flt, results, resultsLock, log, onMatch)
}

// processLocalTarget walks a local directory tree.
func processLocalTarget(
	ctx context.Context,
	target targets.Target,
	opts *Options,
	flt filter.Filter,
	results *status.Results,
	resultsLock *sync.Mutex,
	log logger.Interface,
	onMatch scanner.MatchFunc,
) {
	s := scanner.NewScanner(flt, opts.Depth, opts.SizeFilter, onMatch)

	startTime := time.Now()
	counts, err := s.ScanTree(ctx, target.Value)

	resultsLock.Lock()
	addCounts(results, counts)
	if err != nil {
		results.Errors++
	} else {
		results.Success++
	}
	resultsLock.Unlock()

	if err != nil {
		log.Error(fmt.Sprintf("Failed to scan %s: %s", target.Value, err.Error()))
		return
	}
	log.Info(fmt.Sprintf("Target %s completed: %d files, %d directories in %s",
		target.Value, counts.TotalFiles, counts.TotalDirectories, utils.DeltaTime(time.Since(startTime))))
}

// processNetworkTarget connects to a remote host and scans its shares.
func processNetworkTarget(
	ctx context.Context,
	target targets.Target,
	opts *Options,
	flt filter.Filter,
	results *status.Results,
	resultsLock *sync.Mutex,
	log logger.Interface,
	onMatch scanner.MatchFunc,
) {
	host := target.Value

	if target.Type == targets.TypeFQDN && opts.Nameserver != "" {
		resolved, err := utils.DNSResolve(target.Value, opts.Nameserver, opts.Timeout)
		if err != nil || resolved == "" {
			log.Debug("Failed to resolve domain name: " + target.Value)
			recordError(results, resultsLock)
			return
		}
		host = resolved
	}

	if ok, err := utils.IsPortOpen(host, opts.Port, opts.Timeout); !ok {
		log.Debug(fmt.Sprintf("Port %d is not open on %s: %v", opts.Port, host, err))
		recordError(results, resultsLock)
		return
	}

	// Initial session only discovers shares; each share gets its own session
	// so concurrent traversals never contend on one connection.
	session := smb.NewSession(host, opts.Port, opts.Timeout, opts.Creds, log)
	if err := session.Connect(); err != nil {
		log.Debug("Failed to initialize SMB session: " + err.Error())
		recordError(results, resultsLock)
		return
	}

	shares, err := session.ListShares()
	session.Close()
	if err != nil {
		log.Debug("Failed to list shares on " + host + ": " + err.Error())
		recordError(results, resultsLock)
		return
	}

	log.Debug(fmt.Sprintf("Found %d shares on %s", len(shares), host))

	maxWorkers := opts.MaxWorkersPerHost
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	hostSem := semaphore.NewWeighted(int64(maxWorkers))

	var wg sync.WaitGroup
	startTime := time.Now()

	var countsLock sync.Mutex
	hostCounts := scanner.Counts{}
	var sharesScanned, shareErrors int64

	for _, shareName := range shares {
		if skipShare(shareName) {
			log.Debug(fmt.Sprintf("Skipping administrative share %s on %s", shareName, host))
			continue
		}

		wg.Add(1)
		go func(share string) {
			defer wg.Done()

			if err := hostSem.Acquire(ctx, 1); err != nil {
				return
			}
			defer hostSem.Release(1)

			counts, err := scanShare(ctx, host, share, target.Value, opts, flt, log, onMatch)

			countsLock.Lock()
			hostCounts.Add(counts)
			if err != nil {
				shareErrors++
			} else {
				sharesScanned++
			}
			countsLock.Unlock()
		}(shareName)
	}

	wg.Wait()

	resultsLock.Lock()
	addCounts(results, hostCounts)
	results.SharesScanned += sharesScanned
	if shareErrors > 0 && sharesScanned == 0 {
		results.Errors++
	} else {
		results.Success++
	}
	resultsLock.Unlock()

	log.Info(fmt.Sprintf("Target %s completed: %d shares, %d files, %d directories in %s",
		host, sharesScanned, hostCounts.TotalFiles, hostCounts.TotalDirectories,
		utils.DeltaTime(time.Since(startTime))))
}

// scanShare opens a dedicated session for one share and walks it.
func scanShare(
	ctx context.Context,
	host, shareName, remoteName string,
	opts *Options,
	flt filter.Filter,
	log logger.Interface,
	onMatch scanner.MatchFunc,
) (scanner.Counts, error) {
	session := smb.NewSession(host, opts.Port, opts.Timeout, opts.Creds, log)
	if err := session.Connect(); err != nil {
		log.Debug(fmt.Sprintf("Failed to connect to %s for share %s: %s", host, shareName, err.Error()))
		return scanner.Counts{}, err
	}
	defer session.Close()

	if err := session.SetShare(shareName); err != nil {
		log.Debug(fmt.Sprintf("Failed to mount share %s on %s: %s", shareName, host, err.Error()))
		return scanner.Counts{}, err
	}

	s := scanner.NewScanner(flt, opts.Depth, opts.SizeFilter, onMatch)
	basePath := "//" + remoteName + "/" + shareName
	counts, err := s.ScanShare(ctx, session, basePath)
	if err != nil {
		log.Debug(fmt.Sprintf("Failed to scan share %s on %s: %s", shareName, host, err.Error()))
	}
	return counts, err
}

// skipShare filters out administrative shares that cannot hold user data.
func skipShare(name string) bool {
	switch name {
	case "IPC$", "PRINT$":
		return true
	}
	return false
}

func addCounts(results *status.Results, counts scanner.Counts) {
	results.FilesTotal += counts.TotalFiles
	results.FilesMatched += counts.MatchedFiles
	results.DirectoriesTotal += counts.TotalDirectories
	results.DirectoriesMatched += counts.MatchedDirectories
	results.MatchedBytes += counts.MatchedBytes
}

func recordError(results *status.Results, resultsLock *sync.Mutex) {
	resultsLock.Lock()
	results.Errors++
	resultsLock.Unlock()
}
