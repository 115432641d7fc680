package patternscope

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// DefaultConfigFilePath mirrors the usual config-under-home-dir
// convention for the profiling Options, distinct from internal/runner's
// CLI-flag config, which covers input sourcing rather than pipeline
// tuning.
var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/patternscope/options.yaml")

// LoadOptions reads Options from file, overlaying DefaultOptions so a
// partial YAML document still produces a usable Options value.
func LoadOptions(filePath string) (Options, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return Options{}, err
	}
	opts := DefaultOptions
	if err = yaml.Unmarshal(bin, &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// GenerateSample writes the default Options to filePath as YAML.
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(DefaultOptions)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
