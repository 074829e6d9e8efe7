// Package fs provides filesystem access for documents and run
// configurations.
package fs

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagetext/pagetext"
)

// ReadDocument reads a flat text document from path.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", pagetext.Errorf(pagetext.ENOTFOUND, "document not found: %s", path)
		}
		return "", err
	}
	return string(data), nil
}

// WriteDocument writes a flat text document to path, creating parent
// directories as needed.
func WriteDocument(path, document string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(document), 0644)
}

// RepairOutputPath derives the default output path for a repaired
// document: the input path with "_fixed" appended to the stem.
// "novel.txt" becomes "novel_fixed.txt".
func RepairOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	return stem + "_fixed" + ext
}

// LoadConfig reads and parses a run configuration file. Unknown or
// malformed keys are logged through logger and skipped.
func LoadConfig(path string, logger *slog.Logger) (*pagetext.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pagetext.Errorf(pagetext.ENOTFOUND, "config not found: %s", path)
		}
		return nil, err
	}
	return pagetext.ParseConfig(data, logger)
}

// ReadURLList reads a newline-separated URL list from path. Blank lines
// and lines starting with "#" are skipped.
func ReadURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pagetext.Errorf(pagetext.ENOTFOUND, "URL list not found: %s", path)
		}
		return nil, err
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
