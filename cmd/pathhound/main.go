// PathHound - A tool to hunt for files and folders matching composable
// name and path filters, on local trees and across SMB shares.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pathhound/pathhound/internal/checkpoint"
	"github.com/pathhound/pathhound/internal/config"
	"github.com/pathhound/pathhound/internal/credentials"
	"github.com/pathhound/pathhound/internal/expr"
	"github.com/pathhound/pathhound/internal/logger"
	"github.com/pathhound/pathhound/internal/resources"
	"github.com/pathhound/pathhound/internal/status"
	"github.com/pathhound/pathhound/internal/targets"
	"github.com/pathhound/pathhound/internal/utils"
	"github.com/pathhound/pathhound/internal/worker"
	"github.com/pathhound/pathhound/pkg/filter"
)

// Version information
const Version = "1.0.0"

// CLI flags
var (
	// Output options
	verbose  bool
	debug    bool
	noColors bool
	logfile  string
	output   string

	// Filters
	expressions []string
	sizeFilter  string
	depth       int

	// Advanced configuration
	threads           int
	maxWorkersPerHost int
	nameserver        string
	timeout           float64
	smbPort           int

	// Targets and authentication
	targetsFile  string
	targetsList  []string
	authDomain   string
	authDCIP     string
	authUser     string
	authPassword string
	authHashes   string
	useLDAPS     bool

	// Checkpoint/resume options
	checkpointFile     string
	checkpointInterval float64
	resume             bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pathhound",
		Short: "PathHound - Hunt for files and folders by name and path filters",
		Long: `PathHound walks local directory trees and remote SMB shares, applying
composable name and path filters to every file and folder it visits,
and reports the paths that match.`,
		Run:     run,
		Version: Version,
	}

	// Output options
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Debug mode")
	rootCmd.Flags().BoolVar(&noColors, "no-colors", false, "Disable ANSI escape codes")
	rootCmd.Flags().StringVar(&logfile, "logfile", "", "Log file to write to")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write matched paths to this file instead of stdout")

	// Filters
	rootCmd.Flags().StringArrayVarP(&expressions, "filter", "e", nil,
		"Filter expression, e.g. 'name$.go', 'path!@/tmp/', 'name=README.md|README.rst' (can be specified multiple times, all must match)")
	rootCmd.Flags().StringVar(&sizeFilter, "size", "", "File size constraint, e.g. '+1M' or '-500K'")
	rootCmd.Flags().IntVar(&depth, "depth", 0, "Maximum depth to traverse directories (0 = unlimited)")

	// Advanced configuration
	rootCmd.Flags().IntVar(&threads, "threads", runtime.NumCPU()*4, "Number of targets to process concurrently")
	rootCmd.Flags().IntVar(&maxWorkersPerHost, "max-workers-per-host", 8, "Maximum concurrent shares per host")
	rootCmd.Flags().StringVarP(&nameserver, "nameserver", "n", "", "Nameserver for DNS queries")
	rootCmd.Flags().Float64VarP(&timeout, "timeout", "t", 2.5, "Timeout in seconds for network operations")
	rootCmd.Flags().IntVar(&smbPort, "smb-port", 445, "SMB port on remote targets")

	// Targets and authentication
	rootCmd.Flags().StringVarP(&targetsFile, "targets-file", "f", "", "Path to file containing targets")
	rootCmd.Flags().StringArrayVar(&targetsList, "target", nil, "Target directory, IP, FQDN or CIDR (prefix with 'local:' to force a local path)")
	rootCmd.Flags().StringVar(&authDomain, "auth-domain", "", "Windows domain to authenticate to")
	rootCmd.Flags().StringVar(&authDCIP, "auth-dc-ip", "", "IP of the domain controller")
	rootCmd.Flags().StringVar(&authUser, "auth-user", "", "Username of the domain account")
	rootCmd.Flags().StringVar(&authPassword, "auth-password", "", "Password of the domain account")
	rootCmd.Flags().StringVar(&authHashes, "auth-hashes", "", "LM:NT hashes for pass-the-hash")
	rootCmd.Flags().BoolVar(&useLDAPS, "ldaps", false, "Use LDAPS instead of LDAP")

	// Checkpoint/resume options
	rootCmd.Flags().StringVar(&checkpointFile, "checkpoint", "", "Checkpoint file for resumable scans")
	rootCmd.Flags().Float64Var(&checkpointInterval, "checkpoint-interval", 60, "Checkpoint save interval in seconds")
	rootCmd.Flags().BoolVar(&resume, "resume", false, "Resume from existing checkpoint file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	fmt.Printf("PathHound v%s\n\n", Version)

	// Validate arguments
	if targetsFile == "" && len(targetsList) == 0 && authUser == "" {
		fmt.Println("[!] No targets specified. Either provide targets with --target or --targets-file,")
		fmt.Println("    or provide AD credentials (--auth-dc-ip, --auth-user, --auth-password)")
		os.Exit(1)
	}

	if authPassword != "" && authHashes != "" {
		fmt.Println("[!] Options --auth-password and --auth-hashes are mutually exclusive.")
		os.Exit(1)
	}

	if authDCIP == "" && authUser != "" && (authPassword != "" || authHashes != "") {
		fmt.Println("[!] Option --auth-dc-ip is required when using authentication options.")
		os.Exit(1)
	}

	if sizeFilter != "" {
		if _, _, err := utils.ParseSizeFilter(sizeFilter); err != nil {
			fmt.Printf("[!] Invalid size filter %q: %v\n", sizeFilter, err)
			os.Exit(1)
		}
	}

	// Create configuration
	cfg := config.NewConfig(debug, &noColors)
	cfg.SetSMBPort(smbPort)

	// Create logger
	log := logger.NewLogger(cfg, logfile)
	defer log.Close()

	// Compile filter expressions. No expressions means everything matches.
	flt, err := expr.ParseAll(expressions)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to parse filter expressions: %v", err))
		os.Exit(1)
	}
	log.Debug(fmt.Sprintf("%d filter expressions compiled", len(expressions)))

	log.Info("Starting PathHound")
	startTime := time.Now()

	// Create checkpoint manager
	cpInterval := time.Duration(checkpointInterval * float64(time.Second))
	cpManager := checkpoint.NewManager(checkpointFile, cpInterval)

	// Handle resume
	if resume && checkpointFile != "" {
		if checkpoint.Exists(checkpointFile) {
			log.Info(fmt.Sprintf("Resuming from checkpoint: %s", checkpointFile))
			cp, err := checkpoint.Load(checkpointFile)
			if err != nil {
				log.Error(fmt.Sprintf("Failed to load checkpoint: %v", err))
				os.Exit(1)
			}
			cpManager.RestoreFrom(cp)
			log.Info(fmt.Sprintf("Restored %d processed targets", len(cp.ProcessedTargets)))
		} else {
			log.Warning("Checkpoint file not found, starting fresh scan")
		}
	}

	// Load targets
	targetOpts := &targets.Options{
		TargetsFile:  targetsFile,
		Targets:      targetsList,
		AuthDomain:   authDomain,
		AuthDCIP:     authDCIP,
		AuthUser:     authUser,
		AuthPassword: authPassword,
		UseLDAPS:     useLDAPS,
		Timeout:      time.Duration(timeout * float64(time.Second)),
	}

	loadedTargets, err := targets.LoadTargets(targetOpts, log)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to load targets: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("Targeting %d locations", len(loadedTargets)))

	if len(loadedTargets) == 0 {
		log.Warning("No targets to scan")
		os.Exit(0)
	}

	// Create credentials
	creds := credentials.NewCredentials(authDomain, authUser, authPassword, authHashes)

	// Create worker options
	workerOpts := &worker.Options{
		Creds:             creds,
		Timeout:           time.Duration(timeout * float64(time.Second)),
		Nameserver:        nameserver,
		MaxWorkersPerHost: maxWorkersPerHost,
		Depth:             depth,
		SizeFilter:        sizeFilter,
		Port:              smbPort,
	}

	// Matched paths go to stdout or to the output file as they are found.
	var outFile *os.File
	var outWriter *bufio.Writer
	if output != "" {
		outFile, err = os.Create(output)
		if err != nil {
			log.Error(fmt.Sprintf("Failed to create output file: %v", err))
			os.Exit(1)
		}
		outWriter = bufio.NewWriter(outFile)
	}

	var matchLock sync.Mutex
	var matchedPaths []string

	onMatch := func(r filter.Resource) {
		line := r.GetPath()
		if verbose {
			if file, ok := r.(*resources.File); ok {
				line = fmt.Sprintf("%s (%s)", file.Path, utils.FormatFileSize(file.Size))
			}
		}

		matchLock.Lock()
		defer matchLock.Unlock()
		matchedPaths = append(matchedPaths, r.GetPath())
		if outWriter != nil {
			fmt.Fprintln(outWriter, line)
		} else {
			fmt.Println(line)
		}
	}

	// Create results tracker
	results := &status.Results{}
	var resultsLock sync.Mutex

	// Filter out already-processed targets if resuming
	var targetsToProcess []targets.Target
	skippedCount := 0
	for _, target := range loadedTargets {
		if cpManager.IsTargetProcessed(target) {
			skippedCount++
			continue
		}
		targetsToProcess = append(targetsToProcess, target)
	}

	if skippedCount > 0 {
		log.Info(fmt.Sprintf("Skipping %d already-processed targets, %d remaining",
			skippedCount, len(targetsToProcess)))
	}

	// Start checkpoint manager
	snapshot := func() checkpoint.Snapshot {
		matchLock.Lock()
		paths := make([]string, len(matchedPaths))
		copy(paths, matchedPaths)
		matchLock.Unlock()

		resultsLock.Lock()
		defer resultsLock.Unlock()
		return checkpoint.Snapshot{
			MatchedPaths: paths,
			Statistics: checkpoint.Statistics{
				Success:            results.Success,
				Errors:             results.Errors,
				FilesTotal:         results.FilesTotal,
				FilesMatched:       results.FilesMatched,
				DirectoriesTotal:   results.DirectoriesTotal,
				DirectoriesMatched: results.DirectoriesMatched,
			},
		}
	}
	cpManager.Start(len(loadedTargets), snapshot)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warning(fmt.Sprintf("Received signal %v, saving checkpoint and shutting down...", sig))
		cpManager.TriggerSave()
		cancel()
	}()

	// Process targets concurrently
	var wg sync.WaitGroup
	sem := make(chan struct{}, threads)

	for _, target := range targetsToProcess {
		if ctx.Err() != nil {
			log.Info("Stop signal received, waiting for current tasks to complete...")
			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(t targets.Target) {
			defer wg.Done()
			defer func() { <-sem }()

			worker.ProcessTarget(ctx, t, workerOpts, flt, results, &resultsLock, log, onMatch)
			cpManager.MarkTargetProcessed(t)
		}(target)
	}

	wg.Wait()
	cpManager.Stop()

	if outWriter != nil {
		outWriter.Flush()
		outFile.Close()
		log.Info(fmt.Sprintf("Matched paths written to \"%s\"", output))
	}

	// Print final summary
	status.PrintFinalSummary(results, &resultsLock, time.Since(startTime))

	// Clean up checkpoint file on successful completion
	if cpManager.IsEnabled() && cpManager.ProcessedCount() == len(loadedTargets) {
		if err := checkpoint.Delete(cpManager.Filepath()); err == nil {
			log.Info("Checkpoint file cleaned up (scan completed successfully)")
		}
	} else if cpManager.IsEnabled() {
		log.Info(fmt.Sprintf("Checkpoint saved to %s (use --resume to continue)", cpManager.Filepath()))
	}

	log.Info(fmt.Sprintf("PathHound completed, time elapsed: %s", utils.DeltaTime(time.Since(startTime))))
}
