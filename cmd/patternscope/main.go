package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/patternscope/patternscope"
	"github.com/patternscope/patternscope/internal/runner"
	"github.com/patternscope/patternscope/internal/server"
	"github.com/patternscope/patternscope/internal/source"
	"github.com/projectdiscovery/gologger"
	"gopkg.in/yaml.v3"
)

func main() {
	cliOpts := runner.ParseFlags()

	if cliOpts.Serve {
		if err := server.ListenAndServe(cliOpts.ListenAddr); err != nil {
			gologger.Fatal().Msgf("server stopped: %v", err)
		}
		return
	}

	if cliOpts.ValidateValue != "" {
		runValidate(cliOpts)
		return
	}

	if cliOpts.MergeA != "" && cliOpts.MergeB != "" {
		runMerge(cliOpts)
		return
	}

	runProfile(cliOpts)
}

func loadPipelineOptions(path string) patternscope.Options {
	if path == "" {
		path = patternscope.DefaultConfigFilePath
		if _, err := os.Stat(path); err != nil {
			return patternscope.DefaultOptions
		}
	}
	opts, err := patternscope.LoadOptions(path)
	if err != nil {
		gologger.Fatal().Msgf("failed to read pipeline config %v got: %v", path, err)
	}
	return opts
}

func collectValues(cliOpts *runner.Options) []string {
	switch {
	case cliOpts.ClickHouseTbl != "" && cliOpts.Column != "":
		values, err := source.ClickHouseColumn(context.Background(), source.ClickHouseConfig{
			Addr:     cliOpts.ClickHouseAddr,
			Database: cliOpts.ClickHouseDB,
			Username: cliOpts.ClickHouseUser,
			Password: cliOpts.ClickHousePass,
			Table:    cliOpts.ClickHouseTbl,
			Column:   cliOpts.Column,
		})
		if err != nil {
			gologger.Fatal().Msgf("failed to read column from ClickHouse got: %v", err)
		}
		return values
	case cliOpts.InputFile != "":
		values, err := loadFileValues(cliOpts.InputFile)
		if err != nil {
			gologger.Fatal().Msgf("failed to read %v got: %v", cliOpts.InputFile, err)
		}
		return values
	case source.HasStdin():
		values, err := source.StdinColumn()
		if err != nil {
			gologger.Fatal().Msgf("failed to read stdin got: %v", err)
		}
		return values
	default:
		gologger.Fatal().Msgf("no input given, use -file, -table/-column, or pipe values on stdin")
		return nil
	}
}

// loadFileValues reads path as a column of values: a JSON or YAML
// top-level array for ".json"/".yaml"/".yml" files, newline-delimited
// text otherwise.
func loadFileValues(path string) ([]string, error) {
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return patternscope.DecodeValues(raw)
	default:
		return source.FileColumn(path)
	}
}

func runProfile(cliOpts *runner.Options) {
	start := time.Now()
	values := collectValues(cliOpts)
	pipelineOpts := loadPipelineOptions(cliOpts.PipelineConfig)

	profile, err := patternscope.NewProfile(values, pipelineOpts)
	if err != nil {
		gologger.Fatal().Msgf("failed to profile input got: %v", err)
	}
	logSummary("profile", profile, start)

	writeExport(cliOpts, patternscope.Export(profile))
}

// logSummary prints a human-readable footer line summarizing a run.
func logSummary(action string, profile *patternscope.Profile, start time.Time) {
	gologger.Info().Msgf(
		"%s: %s values (%s distinct) -> %s patterns, %s",
		action,
		humanize.Comma(int64(profile.Stats.TotalValues)),
		humanize.Comma(int64(profile.Stats.DistinctValues)),
		humanize.Comma(int64(profile.Stats.PatternCount)),
		humanize.RelTime(start, time.Now(), "elapsed", ""),
	)
}

func runValidate(cliOpts *runner.Options) {
	if cliOpts.ProfileFile == "" {
		gologger.Fatal().Msgf("-validate requires -profile <exported profile file>")
	}
	profile := readProfile(cliOpts.ProfileFile)

	if err := patternscope.Validate(profile, cliOpts.ValidateValue); err != nil {
		gologger.Fatal().Msgf("%q does not match: %v", cliOpts.ValidateValue, err)
	}
	gologger.Info().Msgf("%q matches profile %s", cliOpts.ValidateValue, profile.ID)
}

func runMerge(cliOpts *runner.Options) {
	start := time.Now()
	a := readProfile(cliOpts.MergeA)
	b := readProfile(cliOpts.MergeB)

	merged := patternscope.Merge(a, b)
	logSummary("merge", merged, start)

	writeExport(cliOpts, patternscope.Export(merged))
}

// readProfile loads a previously exported profile back into a usable
// Profile by re-running NewProfile over its recorded pattern members. The
// exported JSON/YAML is a rendering, not a serialization format Profile
// round-trips through directly.
func readProfile(path string) *patternscope.Profile {
	bin, err := os.ReadFile(path)
	if err != nil {
		gologger.Fatal().Msgf("failed to read %v got: %v", path, err)
	}

	var exported struct {
		Patterns []struct {
			Members []string `json:"members" yaml:"members"`
		} `json:"patterns" yaml:"patterns"`
	}
	if err := yaml.Unmarshal(bin, &exported); err != nil {
		gologger.Fatal().Msgf("failed to parse %v got: %v", path, err)
	}

	members := make([]string, 0)
	for _, p := range exported.Patterns {
		members = append(members, p.Members...)
	}

	profile, err := patternscope.NewProfile(members, patternscope.DefaultOptions)
	if err != nil {
		gologger.Fatal().Msgf("failed to rebuild profile from %v got: %v", path, err)
	}
	return profile
}

func writeExport(cliOpts *runner.Options, exported map[string]any) {
	var bin []byte
	var err error
	if cliOpts.Format == "json" {
		bin, err = json.MarshalIndent(exported, "", "  ")
	} else {
		bin, err = yaml.Marshal(exported)
	}
	if err != nil {
		gologger.Fatal().Msgf("failed to render output got: %v", err)
	}

	if cliOpts.Output == "" {
		os.Stdout.Write(bin)
		os.Stdout.Write([]byte("\n"))
		return
	}
	if err := os.WriteFile(cliOpts.Output, bin, 0644); err != nil {
		gologger.Fatal().Msgf("failed to write %v got: %v", cliOpts.Output, err)
	}
}
