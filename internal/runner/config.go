package runner

import (
	"os"
	"path/filepath"

	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	"github.com/patternscope/patternscope"
)

func init() {
	defaultPipelineCfg := filepath.Join(getUserHomeDir(), ".config/patternscope/options.yaml")

	if fileutil.FileExists(defaultPipelineCfg) {
		return
	}
	if err := validateDir(filepath.Dir(defaultPipelineCfg)); err != nil {
		gologger.Error().Msgf("patternscope config dir not found and failed to create got: %v", err)
		return
	}
	if err := patternscope.GenerateSample(defaultPipelineCfg); err != nil {
		gologger.Error().Msgf("failed to save default pipeline config to %v got: %v", defaultPipelineCfg, err)
	}
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

// validateDir checks if dir exists, creating it if not.
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
