package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gflmod/internal/audio"
	"gflmod/internal/markup"
	"gflmod/internal/voice"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of the command tree to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("GFLMOD_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const unitXML = `<Units>
	<Unit name="GFL-UNIT-DEFY" flagColor="F2C53D">
		<Classes>
			<Class name="GFL-DOLL-M4A1" nameUI="@m4" description="@d" numSlots="4" supply="10" iconTex="i.dds" upgrades="u" maxUpgradeable="3" />
			<Class name="GFL-DOLL-M16" nameUI="@m16" description="@d" numSlots="4" supply="10" iconTex="i.dds" upgrades="u" maxUpgradeable="3" />
		</Classes>
	</Unit>
</Units>
`

func TestDeployCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "units", "gfl_unit.xml"), unitXML)

	out, err := run(t, "deploy", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 units:")
	assert.Contains(t, out, "GFL-UNIT-DEFY: 2 dolls")

	for _, name := range []string{"gfl_deploy.xml", "gfl_deploy_girl.xml"} {
		_, err := os.Stat(filepath.Join(dir, "mod", "gui", name))
		assert.NoError(t, err, name)
	}
}

func TestDeployCommand_MissingRoster(t *testing.T) {
	_, err := run(t, "deploy", "-p", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gfl_unit.xml")
}

func TestGirlsCommand_EntitiesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"),
		`<Entities><Entity name="GFL-M4A1"><T unit="GFL-UNIT-DEFY" /></Entity></Entities>`)

	out, err := run(t, "girls", "--entities", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "GFL-M4A1 -> GIRL-M4A1")

	data, err := os.ReadFile(filepath.Join(dir, "mod", "entities", "gfl_humans_girl.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `unit="GFL-UNIT-GIRL"`)

	_, err = os.Stat(filepath.Join(dir, "mod", "units", "gfl_unit_girl.xml"))
	assert.True(t, os.IsNotExist(err), "--entities must not build the unit")
}

func TestGirlsCommand_DefaultsToAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"), `<Entity name="GFL-A"></Entity>`)
	writeFile(t, filepath.Join(dir, "mod", "units", "gfl_unit.xml"), unitXML)

	out, err := run(t, "girls", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 GIRL entities")
	assert.Contains(t, out, "Generated GFL-UNIT-GIRL with 2 classes")
}

func TestGirlsCommand_PreconditionFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"), `<Entity name="broken"></Entity>`)

	_, err := run(t, "girls", "--entities", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PREFIX-NAME")
}

func TestVoiceValidateCommand(t *testing.T) {
	dir := t.TempDir()
	var sb strings.Builder
	sb.WriteString(`<Pack name="M4A1-Voice">` + "\n")
	for _, id := range voice.RequiredSoundIDs()[1:] {
		sb.WriteString(`<Sound ID="` + id + `"></Sound>` + "\n")
	}
	sb.WriteString(`<Sound ID="VOX_RELOAD"></Sound>` + "\n</Pack>\n")
	writeFile(t, filepath.Join(dir, "mod", "sounds", "gfl_voice_lines_m4.xml"), sb.String())

	out, err := run(t, "voice", "validate", "-p", dir)
	assert.True(t, errors.Is(err, voice.ErrValidationFailed))
	assert.Contains(t, out, "Found 1 voice line XML files to validate")
	assert.Contains(t, out, "VOX_DYING")
	assert.Contains(t, out, "(appears 2 times)")
	assert.Contains(t, out, "Some voice files are invalid!")
}

func TestVoiceValidateCommand_NoManifests(t *testing.T) {
	_, err := run(t, "voice", "validate", "-p", t.TempDir())
	assert.True(t, errors.Is(err, voice.ErrNoManifests))
}

func TestVoiceProcessCommand_File(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "line.wav")
	samples := make([]float64, 4410)
	for i := range samples {
		samples[i] = 0.25
	}
	require.NoError(t, audio.WriteWAV(in, &audio.Clip{SampleRate: 44100, Channels: [][]float64{samples}}))

	outFile := filepath.Join(dir, "out", "line.wav")
	out, err := run(t, "voice", "process", in, outFile, "--highpass", "200", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "highpass 200Hz, lowpass 6000Hz")
	_, err = os.Stat(outFile)
	assert.NoError(t, err)
}

func TestVoiceProcessCommand_Directory(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "incoming")
	require.NoError(t, os.MkdirAll(in, 0755))
	samples := make([]float64, 4410)
	require.NoError(t, audio.WriteWAV(filepath.Join(in, "VO_Groza_JP_Attack.wav"), &audio.Clip{SampleRate: 44100, Channels: [][]float64{samples}}))
	writeFile(t, filepath.Join(in, "bad.mp3"), "ID3")

	out, err := run(t, "voice", "process", in, "Groza", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Successful: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "- bad.mp3")

	_, err = os.Stat(filepath.Join(dir, "mod", "sounds", "voice", "Groza", "Attack.wav"))
	assert.NoError(t, err)
}

func TestFormatCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "gui", "a.xml"), "<A>\n\t<B />\n</A>\n")
	writeFile(t, filepath.Join(dir, "mod", "b.xml"), "<B />\n")

	out, err := run(t, "format", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Formatted 1 files")

	data, err := os.ReadFile(filepath.Join(dir, "mod", "gui", "a.xml"))
	require.NoError(t, err)
	assert.Equal(t, "<A>\n    <B />\n</A>\n", string(data))
}

func TestDeployCommand_Check(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "units", "gfl_unit.xml"), unitXML)

	out, err := run(t, "deploy", "--check", "-p", dir)
	assert.True(t, errors.Is(err, markup.ErrStale))
	assert.Contains(t, out, "--- /dev/null\n+++ b/mod/gui/gfl_deploy.xml\n")
	assert.NotContains(t, out, dir, "diff headers are relative to the project")
	assert.Contains(t, out, "2 generated file(s) are out of date")
	_, statErr := os.Stat(filepath.Join(dir, "mod", "gui", "gfl_deploy.xml"))
	assert.True(t, os.IsNotExist(statErr), "--check must not write")

	_, err = run(t, "deploy", "-p", dir)
	require.NoError(t, err)
	out, err = run(t, "deploy", "--check", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All generated files are up to date")
}

func TestGirlsCommand_CheckShowsDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"), `<Entity name="GFL-A"></Entity>`)

	_, err := run(t, "girls", "--entities", "-p", dir)
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"), `<Entity name="GFL-B"></Entity>`)

	out, err := run(t, "girls", "--entities", "--check", "-p", dir)
	assert.True(t, errors.Is(err, markup.ErrStale))
	assert.NotContains(t, out, "Generated", "check mode writes nothing")
	assert.Contains(t, out, "+++ b/mod/entities/gfl_humans_girl.xml\n")
	assert.Contains(t, out, "-    <Entity name=\"GIRL-A\"></Entity>")
	assert.Contains(t, out, "+    <Entity name=\"GIRL-B\"></Entity>")
}

func TestCheckAfterFormatIsClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mod", "units", "gfl_unit.xml"), unitXML)
	writeFile(t, filepath.Join(dir, "mod", "entities", "gfl_humans.xml"),
		"<Entities>\n\t<Entity name=\"GFL-M4A1\">\n\t\t<T unit=\"GFL-UNIT-DEFY\" />\n\t</Entity>\n</Entities>\n")

	for _, args := range [][]string{{"deploy"}, {"girls"}, {"format"}} {
		_, err := run(t, append(args, "-p", dir)...)
		require.NoError(t, err, args[0])
	}

	for _, name := range []string{"deploy", "girls"} {
		out, err := run(t, name, "--check", "-p", dir)
		require.NoError(t, err, "%s --check after format:\n%s", name, out)
		assert.Contains(t, out, "All generated files are up to date")
	}
}

func TestVoiceValidateCommand_RelativePhysicalRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gflmod.yaml"), "voice:\n  physical_root: assets\n")
	writeFile(t, filepath.Join(dir, "assets", "sounds", "voice", "m4", "attack.ogg"), "OggS")
	writeFile(t, filepath.Join(dir, "mod", "sounds", "gfl_voice_lines_m4.xml"),
		`<Pack name="M4A1-Voice"><Sound ID="VOX_ATTACK"><Sample name="data/sounds/voice/m4/attack.ogg" /></Sound></Pack>`)

	out, err := run(t, "voice", "validate", "-p", dir)
	assert.True(t, errors.Is(err, voice.ErrValidationFailed), "the pack is still incomplete")
	assert.Contains(t, out, "All 1 referenced voice files exist")
}

func TestFormatCommand_Check(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod", "gui", "a.xml")
	writeFile(t, path, "<A>\n\t<B />\n</A>\n")

	out, err := run(t, "format", "--check", "-p", dir)
	assert.True(t, errors.Is(err, markup.ErrStale))
	assert.Contains(t, out, "+    <B />")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<A>\n\t<B />\n</A>\n", string(data))
}

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "config", "init", "-p", dir)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "gflmod.yaml"))
	require.NoError(t, err)

	_, err = run(t, "config", "init", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "config", "init", "--force", "-p", dir)
	assert.NoError(t, err)
}

func TestInvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "gflmod.yaml"), "effect:\n  lowpass_hz: 50\n")

	_, err := run(t, "format", "-p", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lowpass_hz")
}
