package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/artpar/firewatch/internal/core/extract"
	"github.com/artpar/firewatch/internal/core/netcheck"
	"github.com/artpar/firewatch/internal/core/report"
	"github.com/artpar/firewatch/internal/core/workflow"
	"github.com/artpar/firewatch/internal/shell/contextfs"
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
	ExitSuccess    = 0
	ExitUsageError = 1
	ExitInputError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("firewatch %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: firewatch <workflow.yml> <context-root>")
		return ExitUsageError
	}
	workflowPath, contextRoot := args[0], args[1]

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitUsageError
	}
	logger := SetupLogger(cfg.Log)

	content, err := os.ReadFile(workflowPath)
	if err != nil {
		logger.Error("failed to read workflow", "path", workflowPath, "error", err)
		return ExitInputError
	}

	wf, err := workflow.Parse(string(content))
	if err != nil {
		logger.Error("failed to parse workflow", "path", workflowPath, "error", err)
		return ExitInputError
	}

	services := extract.Services(wf)
	builds := extract.Builds(wf)
	issues := netcheck.Validate(services, builds, contextfs.New(contextRoot))

	logger.Debug("analysis complete",
		"services", len(services),
		"builds", len(builds),
		"issues", len(issues),
	)

	if err := report.Build(services, builds, issues).Encode(os.Stdout); err != nil {
		logger.Error("failed to encode report", "error", err)
		return ExitInputError
	}

	return ExitSuccess
}
