package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gflmod/internal/audio"
	"gflmod/internal/config"
	"gflmod/internal/voice"

	"github.com/spf13/cobra"
)

// voiceCmd groups voice line tooling
var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Voice line validation and processing",
}

var voiceValidateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate voice line manifests",
	Long: `Checks every <Name>-Voice pack in the voice line manifests:
  - the pack declares exactly the sound IDs the game requires, once each
  - every referenced recording exists under the mod directory
  - every referenced path fits the engine's path length limit

Without arguments, all gfl_voice_lines_*.xml files in the sounds directory are
checked. Every violation is reported; the exit code is 1 if any was found.`,
	RunE: runVoiceValidate,
}

var voiceProcessCmd = &cobra.Command{
	Use:   "process <input> <output|character>",
	Short: "Apply the radio effect to voice recordings",
	Long: `Applies the radio effect (band limit, mid boost, soft compression) and writes
16-bit WAV.

If <input> is a directory, every audio file in it is processed into
<voice dir>/<character>/ and names lose their VO_<character>_JP_ markers
unless --no-shorten is given. Otherwise <input> is a single file written to
<output>.

Examples:
  gflmod voice process ~/Downloads/VO_Groza_JP Groza
  gflmod voice process line.wav out/line.wav --highpass 200 --lowpass 3000`,
	Args: cobra.ExactArgs(2),
	RunE: runVoiceProcess,
}

var (
	noShorten bool
	effect    = config.DefaultConfig().Effect
)

func init() {
	f := voiceProcessCmd.Flags()
	f.BoolVar(&noShorten, "no-shorten", false, "Keep original file names in directory mode")
	f.Float64Var(&effect.HighpassHz, "highpass", effect.HighpassHz, "High-pass cutoff in Hz (try 80-200)")
	f.Float64Var(&effect.LowpassHz, "lowpass", effect.LowpassHz, "Low-pass cutoff in Hz (try 5000-8000)")
	f.Float64Var(&effect.MidBoostHz, "mid-boost", effect.MidBoostHz, "Mid boost centre in Hz (try 1000-1500)")
	f.Float64Var(&effect.MidBoostDB, "mid-db", effect.MidBoostDB, "Mid boost amount in dB (try 0.5-3)")
	f.Float64Var(&effect.BoostQ, "boost-q", effect.BoostQ, "Mid boost Q, higher is narrower")
}

func runVoiceValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	files := args
	if len(files) == 0 {
		var err error
		files, err = voice.Discover(cfg.SoundsDirPath(), cfg.Voice.ManifestPattern)
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Found %d voice line XML files to validate\n", len(files))

	resolver := voice.Resolver{
		LogicalRoot:   cfg.Voice.LogicalRoot,
		PhysicalRoot:  cfg.VoicePhysicalRoot(),
		MaxPathLength: cfg.Voice.MaxPathLength,
	}
	report, err := voice.Validate(files, voice.DefaultCatalog(), resolver)
	if err != nil {
		return err
	}
	if err := voice.RenderReport(out, report); err != nil {
		return err
	}
	if !report.OK() {
		return voice.ErrValidationFailed
	}
	return nil
}

// effectParams starts from the config and applies only the flags given on the command line.
func effectParams(cmd *cobra.Command) audio.Params {
	e := cfg.Effect
	flags := cmd.Flags()
	if flags.Changed("highpass") {
		e.HighpassHz = effect.HighpassHz
	}
	if flags.Changed("lowpass") {
		e.LowpassHz = effect.LowpassHz
	}
	if flags.Changed("mid-boost") {
		e.MidBoostHz = effect.MidBoostHz
	}
	if flags.Changed("mid-db") {
		e.MidBoostDB = effect.MidBoostDB
	}
	if flags.Changed("boost-q") {
		e.BoostQ = effect.BoostQ
	}
	return audio.ParamsFromConfig(e)
}

func runVoiceProcess(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	input, target := args[0], args[1]
	params := effectParams(cmd)

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input %s: %w", input, err)
	}

	heading(out, "VOICE FILE PROCESSOR")
	fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("highpass %vHz, lowpass %vHz, mid boost %vdB at %vHz (Q %v)",
		params.HighpassHz, params.LowpassHz, params.MidBoostDB, params.MidBoostHz, params.BoostQ)))

	if !info.IsDir() {
		stats, err := audio.ProcessFile(input, target, params)
		if err != nil {
			return err
		}
		success(out, "Processed %s -> %s (rms %.4f)", input, target, stats.RMS)
		return nil
	}

	outDir := filepath.Join(cfg.VoiceDirPath(), target)
	summary, err := audio.ProcessDirectory(input, outDir, target, params, !noShorten)
	if err != nil {
		return err
	}

	for i, r := range summary.Results {
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, summary.Total(), filepath.Base(r.Input))
		if r.Err != nil {
			failure(out, "  %v", r.Err)
			continue
		}
		fmt.Fprintf(out, "  -> %s %s\n", filepath.Base(r.Output), dimStyle.Render(fmt.Sprintf("(rms %.4f)", r.Stats.RMS)))
	}

	heading(out, "PROCESSING SUMMARY")
	fmt.Fprintf(out, "Total files: %d\nSuccessful: %d\nFailed: %d\n", summary.Total(), summary.Succeeded(), len(summary.Failed()))
	if failed := summary.Failed(); len(failed) > 0 {
		fmt.Fprintln(out, "\nFailed files:")
		for _, name := range failed {
			fmt.Fprintf(out, "  - %s\n", name)
		}
	}
	fmt.Fprintf(out, "\nOutput location: %s\n", summary.OutputDir)
	return nil
}
