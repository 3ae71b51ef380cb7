package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/artpar/firewatch/internal/shell/contextfs"
	"github.com/artpar/firewatch/internal/shell/repair"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess     = 0
	ExitUsageError  = 1
	ExitRepairError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	dockerfilePath := flag.String("dockerfile", "", "Path to the Dockerfile")
	contextDir := flag.String("context-dir", "", "Docker build context directory")
	buildError := flag.String("build-error", "", "Build error output (retry phase)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("firewatch-repair %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	if *dockerfilePath == "" || *contextDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: firewatch-repair --dockerfile <path> --context-dir <dir> [--build-error <text>]")
		return ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitUsageError
	}
	logger := SetupLogger(cfg.Log)

	repairer, err := repair.New(cfg.RepairConfig())
	if err != nil {
		logger.Error("failed to configure repair provider",
			"provider", cfg.Provider,
			"error", err,
		)
		return ExitRepairError
	}

	content, err := os.ReadFile(*dockerfilePath)
	if err != nil {
		logger.Error("failed to read Dockerfile", "path", *dockerfilePath, "error", err)
		return ExitUsageError
	}

	src := contextfs.New(*contextDir)
	req := repair.Request{
		Dockerfile:      string(content),
		Files:           src.ListFiles("."),
		DependencyFiles: src.DependencyExcerpts("."),
		BuildError:      *buildError,
	}

	requestID := uuid.NewString()
	phase := "analysis"
	if *buildError != "" {
		phase = "retry"
	}
	logger.Info("requesting Dockerfile repair",
		"request_id", requestID,
		"phase", phase,
		"provider", cfg.Provider,
		"context_files", len(req.Files),
	)

	fixed, err := repair.Run(context.Background(), repairer, req)
	if err != nil {
		logger.Error("repair failed",
			"request_id", requestID,
			"phase", phase,
			"error", err,
		)
		return ExitRepairError
	}

	fmt.Println(fixed)
	return ExitSuccess
}
