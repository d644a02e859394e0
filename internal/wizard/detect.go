package wizard

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// DetectionResult holds what was auto-detected in the working directory.
type DetectionResult struct {
	KubectlAvailable bool
	ComposeFiles     []string
	TemplateFiles    []string // compose files with template markup (*.j2)
	DotEnv           bool
}

// Detector abstracts filesystem and path lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
	Stat(path string) (os.FileInfo, error)
	Glob(pattern string) ([]string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error) { return exec.LookPath(name) }
func (OSDetector) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (OSDetector) Glob(pattern string) ([]string, error) { return filepath.Glob(pattern) }

var composeNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

var templatePatterns = []string{
	"*compose*.yml.j2",
	"*compose*.yaml.j2",
}

// Detect scans the environment for compose files to convert.
func Detect(d Detector) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("kubectl"); err == nil {
		result.KubectlAvailable = true
	}

	for _, name := range composeNames {
		if info, err := d.Stat(name); err == nil && !info.IsDir() {
			result.ComposeFiles = append(result.ComposeFiles, name)
		}
	}

	seen := make(map[string]bool)
	for _, pattern := range templatePatterns {
		matches, err := d.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				result.TemplateFiles = append(result.TemplateFiles, m)
			}
		}
	}
	sort.Strings(result.TemplateFiles)

	if _, err := d.Stat(".env"); err == nil {
		result.DotEnv = true
	}

	return result
}

// Candidates lists every detected input, plain compose files first.
func (r DetectionResult) Candidates() []string {
	return append(append([]string(nil), r.ComposeFiles...), r.TemplateFiles...)
}
