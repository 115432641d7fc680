package runner

import (
	"os"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Options are the CLI-level flags: input sourcing, output rendering, and
// server mode. Pipeline tuning (max_clusters, enum_threshold, ...) lives
// in patternscope.Options, loaded separately via --pipeline-config.
type Options struct {
	InputFile      string
	Column         string
	ClickHouseAddr string
	ClickHouseDB   string
	ClickHouseUser string
	ClickHousePass string
	ClickHouseTbl  string

	Output         string
	Format         string
	PipelineConfig string

	ValidateValue string
	ProfileFile   string
	MergeA        string
	MergeB        string

	Serve      bool
	ListenAddr string

	Verbose bool
	Silent  bool
}

// ParseFlags parses os.Args into Options, exactly as the CLI invokes it.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Automatic regex-pattern discovery for columns of text values.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.InputFile, "file", "f", "", "file of newline-delimited values to profile (or read from stdin)"),
		flagSet.StringVarP(&opts.Column, "column", "c", "", "ClickHouse column to profile"),
		flagSet.StringVar(&opts.ClickHouseTbl, "table", "", "ClickHouse table to profile --column from"),
		flagSet.StringVar(&opts.ClickHouseAddr, "ch-addr", "localhost:9000", "ClickHouse server address"),
		flagSet.StringVar(&opts.ClickHouseDB, "ch-db", "default", "ClickHouse database"),
		flagSet.StringVar(&opts.ClickHouseUser, "ch-user", "default", "ClickHouse username"),
		flagSet.StringVar(&opts.ClickHousePass, "ch-pass", "", "ClickHouse password"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write the profile to (default stdout)"),
		flagSet.StringVar(&opts.Format, "format", "yaml", "output format: yaml or json"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display patternscope version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.PipelineConfig, "pipeline-config", "", `pipeline options yaml file (default '$HOME/.config/patternscope/options.yaml')`),
	)

	flagSet.CreateGroup("actions", "Actions",
		flagSet.StringVar(&opts.ValidateValue, "validate", "", "validate a value against --profile"),
		flagSet.StringVar(&opts.ProfileFile, "profile", "", "a previously exported profile file, used by --validate"),
		flagSet.StringVar(&opts.MergeA, "merge-a", "", "first exported profile file to merge"),
		flagSet.StringVar(&opts.MergeB, "merge-b", "", "second exported profile file to merge"),
	)

	flagSet.CreateGroup("server", "Server",
		flagSet.BoolVar(&opts.Serve, "serve", false, "run the HTTP adapter instead of a one-shot CLI run"),
		flagSet.StringVar(&opts.ListenAddr, "listen", ":8080", "address for --serve to listen on"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
