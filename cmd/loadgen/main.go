package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/sreevallabh04/gitalong/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumProfiles = 200
	defaultNumSwipes   = 5000
	defaultPageSize    = 20
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8000", "Base URL of the service")
		profiles = flag.Int("profiles", defaultNumProfiles, "Number of profiles to register")
		swipes   = flag.Int("swipes", defaultNumSwipes, "Number of swipes to submit")
		pageSize = flag.Int("page", defaultPageSize, "Recommendation page size to request")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for run output (default: loadgen_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	if err := loadgen.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadgen.Config{
		BaseURL:     *baseURL,
		NumProfiles: *profiles,
		NumSwipes:   *swipes,
		PageSize:    *pageSize,
		Workers:     *workers,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	if err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
