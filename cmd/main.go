package main

import (
	"flag"
	"fmt"
	"os"
	"subparams/internal/cli"
	"subparams/internal/logger"
	"subparams/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the subparams scenario runner.
func main() {
	options := cli.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <scenario file or directory>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No scenario file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.Paths = args

	err := options.Run()
	if err != nil {
		log.Fatal("Scenario run failed", "error", err)
	}
}
