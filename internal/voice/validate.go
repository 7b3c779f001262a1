package voice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gflmod/internal/logging"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrValidationFailed is returned once a report with violations has been rendered.
	ErrValidationFailed = errors.New("voice validation failed")
	// ErrNoManifests means discovery found no voice line files.
	ErrNoManifests = errors.New("no voice line files found")
)

// PathIssue is a referenced recording that is too long or absent.
type PathIssue struct {
	Path     string // as written in the manifest
	Physical string // where it was looked for
	Length   int
	Limit    int
}

// Excess returns how many characters the path is over the limit.
func (p PathIssue) Excess() int {
	return p.Length - p.Limit
}

// FileReport is the outcome for one manifest file.
type FileReport struct {
	File         string
	Packs        []PackResult
	PathsChecked int
	LongPaths    []PathIssue
	MissingFiles []PathIssue
}

// OK reports whether the file has no violations.
func (f FileReport) OK() bool {
	for _, p := range f.Packs {
		if !p.Valid() {
			return false
		}
	}
	return len(f.LongPaths) == 0 && len(f.MissingFiles) == 0
}

// Report aggregates every checked file.
type Report struct {
	Files []FileReport
}

// OK reports whether every file passed.
func (r Report) OK() bool {
	for _, f := range r.Files {
		if !f.OK() {
			return false
		}
	}
	return true
}

// CheckManifest runs every check on an already parsed manifest.
func CheckManifest(file string, m Manifest, catalog Catalog, resolver Resolver) FileReport {
	report := FileReport{File: file, PathsChecked: len(m.Paths)}
	for _, pack := range m.Packs {
		report.Packs = append(report.Packs, CheckPack(pack, catalog))
	}
	for _, path := range m.Paths {
		if n, long := resolver.TooLong(path); long {
			report.LongPaths = append(report.LongPaths, PathIssue{Path: path, Length: n, Limit: resolver.limit()})
		}
		if resolver.Missing(path) {
			report.MissingFiles = append(report.MissingFiles, PathIssue{Path: path, Physical: resolver.Physical(path)})
		}
	}
	return report
}

// ValidateFile reads and checks one manifest. Only a read failure is returned as an
// error; violations are recorded in the report.
func ValidateFile(path string, catalog Catalog, resolver Resolver) (FileReport, error) {
	log := logging.Get(logging.CategoryVoice).With("file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("failed to read voice lines %s: %w", path, err)
	}

	m := ParseManifest(string(data))
	if len(m.Packs) == 0 {
		log.Warn("no %s packs found", PackSuffix)
	}
	report := CheckManifest(path, m, catalog, resolver)
	log.Debug("%d packs, %d paths, ok=%v", len(report.Packs), report.PathsChecked, report.OK())
	return report, nil
}

// Validate checks every file, in order. It stops only on I/O failure.
func Validate(files []string, catalog Catalog, resolver Resolver) (Report, error) {
	timer := logging.StartTimer(logging.CategoryVoice, "Validate")
	defer timer.Stop()

	var report Report
	for _, f := range files {
		fr, err := ValidateFile(f, catalog, resolver)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, fr)
	}
	return report, nil
}

// Discover returns the files in dir matching pattern, sorted. Finding none is an error.
func Discover(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q in %s: %w", pattern, dir, err)
	}

	var files []string
	for _, rel := range matches {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s matching %s", ErrNoManifests, dir, pattern)
	}
	sort.Strings(files)
	return files, nil
}
