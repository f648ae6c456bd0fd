package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "outlier-scout",
		Short: "Find breakout YouTube videos in a niche and turn them into content ideas",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(analyzeCmd())
	root.AddCommand(spyCmd())
	root.AddCommand(trendsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(watchCmd())

	return root
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <niche>",
		Short: "Search a niche and rank its outlier videos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.pages, "pages", 0, "search pages per run, 50 results each (default: from config)")
	cmd.Flags().IntVar(&opts.days, "days", 0, "only videos published within this many days (default: from config)")
	cmd.Flags().Int64Var(&opts.minViews, "min-views", 0, "minimum view count (default: from config)")
	cmd.Flags().StringSliceVar(&opts.regions, "regions", nil, "region codes to search (e.g., US,GB)")
	cmd.Flags().BoolVar(&opts.includeShorts, "shorts", false, "include videos of 60 seconds or less")
	cmd.Flags().IntVar(&opts.maxIdeas, "ideas", 0, "max content ideas to generate (default: from config)")
	cmd.Flags().BoolVar(&opts.aiBriefs, "ai", false, "also generate AI production briefs (needs GEMINI_API_KEY)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.csvFile, "csv", "", "also write the ranked videos to a CSV file")
	return cmd
}

func spyCmd() *cobra.Command {
	var opts spyOptions

	cmd := &cobra.Command{
		Use:   "spy [channel]",
		Short: "Rank one channel's recent uploads against each other",
		Long:  "Accepts a channel URL, @handle, or raw UC... ID. With --mine the authorized account's own channel is used instead.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel := ""
			if len(args) > 0 {
				channel = args[0]
			}
			return runSpy(channel, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.mine, "mine", false, "spy on your own channel (runs OAuth device flow on first use)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&opts.csvFile, "csv", "", "also write the ranked videos to a CSV file")
	return cmd
}

func trendsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "trends <query>",
		Short: "Show recent news headlines for a niche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func watchCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-analyze configured niches on a schedule and email new outliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(once)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run a single watch pass and exit")
	return cmd
}
