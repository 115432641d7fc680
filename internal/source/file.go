package source

import (
	"bufio"
	"io"
	"os"

	fileutil "github.com/projectdiscovery/utils/file"
)

// FileColumn reads path one value per line, skipping blank lines.
func FileColumn(path string) ([]string, error) {
	if !fileutil.FileExists(path) {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanLines(f)
}

// StdinColumn reads values one per line from stdin.
func StdinColumn() ([]string, error) {
	return scanLines(os.Stdin)
}

// HasStdin reports whether stdin carries piped input.
func HasStdin() bool {
	return fileutil.HasStdin()
}

func scanLines(r io.Reader) ([]string, error) {
	values := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	return values, scanner.Err()
}
