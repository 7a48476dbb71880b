// Command geobridge-log is a tool for viewing and analyzing bridge capture files.
//
// Capture files are written by geobridge-sim with the --capture flag, or by
// any program that wires a log.FileLogger into the bridge.
//
// Usage:
//
//	geobridge-log <command> [flags] <file.glog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSON lines or CSV
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View only stream-layer events
//	geobridge-log view --layer stream session.glog
//
//	# Follow one point through the region
//	geobridge-log view --key bus-17 session.glog
//
//	# Export to CSV
//	geobridge-log export --format csv -o session.csv session.glog
//
//	# Filter by session and save to new file
//	geobridge-log filter --session-id 5f1c2a9e-... -o one.glog session.glog
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/geobridge/geobridge-go/cmd/geobridge-log/commands"
)

const usage = `geobridge-log - GeoBridge Capture Analyzer

Usage:
  geobridge-log <command> [flags] <file.glog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSON lines or CSV
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "geobridge-log <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "geobridge-log %s - %s\n\nUsage:\n  geobridge-log %s [flags] <file.glog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}
	return fs
}

// pathArg returns the single positional argument or exits with usage.
func pathArg(fs *pflag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := newFlagSet("view", "View capture file in human-readable format")
	layer := fs.String("layer", "", "Filter by layer (backend, bridge, stream)")
	category := fs.String("category", "", "Filter by category (envelope, state, error)")
	kind := fs.String("kind", "", "Filter by listener kind (key, data)")
	key := fs.String("key", "", "Filter envelopes by point key")
	_ = fs.Parse(args)

	path := pathArg(fs)

	filter := commands.ViewFilter{Kind: *kind, Key: *key}
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fail(err)
		}
		filter.Layer = &l
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := newFlagSet("export", "Export capture file to JSON lines or CSV")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	if err := commands.RunExport(pathArg(fs), *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := newFlagSet("filter", "Filter capture file and write to new file")
	var opts commands.FilterOptions
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session-id", "", "Filter by session ID")
	fs.StringVar(&opts.Kind, "kind", "", "Filter by listener kind (key, data)")
	fs.StringVar(&opts.Key, "key", "", "Filter envelopes by point key")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (backend, bridge, stream)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (envelope, state, error)")
	_ = fs.Parse(args)

	path := pathArg(fs)
	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
}

func runStats(args []string) {
	fs := newFlagSet("stats", "Show statistics about the capture file")
	_ = fs.Parse(args)

	if err := commands.RunStats(pathArg(fs), os.Stdout); err != nil {
		fail(err)
	}
}
