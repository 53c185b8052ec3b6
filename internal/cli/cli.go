package cli

import (
	"errors"
	"fmt"
	"os"
	"subparams/pkg/color"
	"subparams/pkg/scenario"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help    bool     // Show help message
	Verbose bool     // Enable verbose output
	NoColor bool     // Disable colored output
	Paths   []string // Scenario files and directories to run
}

// Run loads every scenario named by Paths, drives each one through its
// wrapped body, and checks the outcome against the document's expectations.
func (opts *Runner) Run() error {
	scenarios, err := opts.collect()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios found")
	}

	failed := 0
	lastPath := ""
	for _, s := range scenarios {
		if s.Path != lastPath {
			fmt.Println(color.Header(s.Path))
			lastPath = s.Path
		}

		res, err := s.Run()
		if err != nil {
			failed++
			fmt.Printf("%s %s\n", color.Verdict(false), s.Name)
			fmt.Println(color.Detail("      - " + err.Error()))
			continue
		}

		verr := res.Verify(s.Expect)
		fmt.Printf("%s %s\n", color.Verdict(verr == nil), s.Name)

		if opts.Verbose {
			for _, line := range res.Trace {
				fmt.Println(color.Detail("      " + line))
			}
		}

		if verr == nil {
			continue
		}
		failed++

		var mismatch *scenario.VerifyError
		if errors.As(verr, &mismatch) {
			for _, issue := range mismatch.Issues {
				fmt.Println(color.Detail("      - " + issue))
			}
		} else {
			fmt.Println(color.Detail("      - " + verr.Error()))
		}
	}

	fmt.Println()
	if failed > 0 {
		fmt.Println(color.Error(fmt.Sprintf("%s scenarios failed", color.Count(failed, len(scenarios)))))
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}

	fmt.Println(color.Success(fmt.Sprintf("%s scenarios passed", color.Count(len(scenarios), len(scenarios)))))
	return nil
}

// collect expands Paths into the scenarios they hold, in the order given.
func (opts *Runner) collect() ([]*scenario.Scenario, error) {
	var all []*scenario.Scenario
	for _, path := range opts.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		var batch []*scenario.Scenario
		if info.IsDir() {
			batch, err = scenario.LoadDir(path)
		} else {
			batch, err = scenario.Load(path)
		}
		if err != nil {
			fmt.Println(color.BrightRedText("=== Load Errors ==="))
			fmt.Println(err)
			return nil, fmt.Errorf("loading %s failed", path)
		}

		log.Info("Loaded scenarios", "path", path, "count", len(batch))
		all = append(all, batch...)
	}
	return all, nil
}
