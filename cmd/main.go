package main

import (
	"flag"
	"fmt"
	"os"

	"periscope/internal/logger"
	"periscope/internal/submitter"
	"periscope/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the periscope job submitter.
func main() {
	options := submitter.Submitter{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.Follow, "w", false, "Watch job events after submission")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.ClusterConfig, "c", "cluster.yaml", "Cluster config file")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <job.yaml>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No job file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.JobFile = args[0]

	err := options.Run()
	if err != nil {
		log.Fatal("Submission failed", "error", err)
	}
}
