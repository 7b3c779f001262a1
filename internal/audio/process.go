package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gflmod/internal/logging"
)

var (
	// ErrUnsupportedFormat is returned for inputs that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrNoAudioFiles means a directory held nothing to process.
	ErrNoAudioFiles = errors.New("no audio files found")
)

// Extensions lists the file types picked up in directory mode. Only .wav is decoded;
// the rest are reported as failures so they are not silently skipped.
var Extensions = []string{".wav", ".ogg", ".flac", ".mp3", ".aac", ".m4a", ".opus"}

func isAudioFile(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ShortenFilename drops the redundant "VO_<character>_JP_VO_<character>_" and then
// "VO_<character>_JP_" markers from an exported voice line name.
func ShortenFilename(name, character string) string {
	name = strings.ReplaceAll(name, "VO_"+character+"_JP_VO_"+character+"_", "")
	return strings.ReplaceAll(name, "VO_"+character+"_JP_", "")
}

// ProcessFile applies the radio effect to in and writes the result to out, creating
// out's directory.
func ProcessFile(in, out string, p Params) (Stats, error) {
	log := logging.Get(logging.CategoryAudio).With("input", in)

	if !strings.EqualFold(filepath.Ext(in), ".wav") {
		return Stats{}, fmt.Errorf("%s: %w: only WAV input is decoded", in, ErrUnsupportedFormat)
	}
	clip, err := ReadWAV(in)
	if err != nil {
		return Stats{}, err
	}
	log.Debug("%d Hz, %d channel(s), %d-bit, %d frames", clip.SampleRate, len(clip.Channels), clip.BitDepth, clip.Frames())

	stats, err := ApplyRadioEffect(clip.Channels, clip.SampleRate, p)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", in, err)
	}
	if stats.Normalized {
		log.Debug("peak normalized to %.2f", stats.Peak)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return Stats{}, fmt.Errorf("failed to create output directory for %s: %w", out, err)
	}
	if err := WriteWAV(out, clip); err != nil {
		return Stats{}, err
	}
	log.Info("wrote %s (rms %.4f)", out, stats.RMS)
	return stats, nil
}

// FileResult is the outcome for one file in directory mode.
type FileResult struct {
	Input  string
	Output string
	Stats  Stats
	Err    error
}

// Summary reports a directory run.
type Summary struct {
	OutputDir string
	Results   []FileResult
}

// Total returns how many files were attempted.
func (s *Summary) Total() int { return len(s.Results) }

// Succeeded returns how many files were written.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the base names of files that could not be processed.
func (s *Summary) Failed() []string {
	var failed []string
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, filepath.Base(r.Input))
		}
	}
	return failed
}

// ProcessDirectory processes every audio file directly inside inDir into outDir as
// <name>.wav. With shorten set, names lose their VO_<character>_JP_ markers. A failing
// file is recorded and the run continues.
func ProcessDirectory(inDir, outDir, character string, p Params, shorten bool) (*Summary, error) {
	timer := logging.StartTimer(logging.CategoryAudio, "ProcessDirectory")
	defer timer.StopWithInfo()

	log := logging.Get(logging.CategoryAudio)

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", inDir, err)
	}
	var inputs []string
	for _, e := range entries {
		if !e.IsDir() && isAudioFile(e.Name()) {
			inputs = append(inputs, e.Name())
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s (supported: %s)", ErrNoAudioFiles, inDir, strings.Join(Extensions, ", "))
	}
	sort.Strings(inputs)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	summary := &Summary{OutputDir: outDir}
	for i, name := range inputs {
		outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".wav"
		if shorten {
			outName = ShortenFilename(outName, character)
		}
		r := FileResult{
			Input:  filepath.Join(inDir, name),
			Output: filepath.Join(outDir, outName),
		}
		log.Info("[%d/%d] %s", i+1, len(inputs), name)
		r.Stats, r.Err = ProcessFile(r.Input, r.Output, p)
		if r.Err != nil {
			log.Warn("failed: %v", r.Err)
		}
		summary.Results = append(summary.Results, r)
	}
	return summary, nil
}
