package variant

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gflmod/internal/config"
	"gflmod/internal/logging"
	"gflmod/internal/markup"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const entitySource = `<Entities>
	<Entity name="GFL-M4A1">
		<Inherit name="GFL-BASE-HUMAN" />
		<TrooperClass unit="GFL-UNIT-DEFY" class="GFL-DOLL-M4A1" />
		<Tag name="GFL-M4A1" />
	</Entity>

	<Entity name="GIRL-M4A1">
		<TrooperClass unit="GFL-UNIT-GIRL" class="GFL-DOLL-M4A1" />
	</Entity>

	<Entity name="SF2-AR15">
		<TrooperClass unit="GFL-UNIT-AR" class="GFL-DOLL-AR15" />
		<Equip unit="GFL-UNIT-AR" />
	</Entity>
</Entities>
`

func TestParseEntities(t *testing.T) {
	got := ParseEntities(entitySource)
	require.Len(t, got, 3)
	assert.Equal(t, "GFL-M4A1", got[0].Name)
	assert.True(t, strings.HasPrefix(got[0].Markup, `<Entity name="GFL-M4A1">`))
	assert.True(t, strings.HasSuffix(got[0].Markup, `</Entity>`))
	assert.Equal(t, "GIRL-M4A1", got[1].Name)
	assert.Equal(t, "SF2-AR15", got[2].Name)
}

func TestDeriveEntities(t *testing.T) {
	got, err := DeriveEntities(entitySource)
	require.NoError(t, err)
	require.Len(t, got, 2, "existing GIRL- entities are skipped")

	m4 := got[0]
	assert.Equal(t, "GFL-M4A1", m4.SourceName)
	assert.Equal(t, "GIRL-M4A1", m4.Name)
	assert.True(t, strings.HasPrefix(m4.Markup, `<Entity name="GIRL-M4A1">`))
	// Only the first occurrence of the name is rewritten.
	assert.Contains(t, m4.Markup, `<Tag name="GFL-M4A1" />`)
	assert.Contains(t, m4.Markup, `<Inherit name="GFL-BASE-HUMAN" />`)
	assert.Contains(t, m4.Markup, `unit="GFL-UNIT-GIRL"`)
	assert.NotContains(t, m4.Markup, "GFL-UNIT-DEFY")

	ar := got[1]
	assert.Equal(t, "GIRL-AR15", ar.Name)
	assert.Equal(t, 2, strings.Count(ar.Markup, `unit="GFL-UNIT-GIRL"`))
}

func TestDeriveEntities_MalformedNameFailsRun(t *testing.T) {
	src := `<Entity name="GFL-OK"></Entity><Entity name="lowercase-bad"></Entity>`
	got, err := DeriveEntities(src)
	assert.Nil(t, got)

	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "entity", pe.Subject)
	assert.Equal(t, "lowercase-bad", pe.Name)
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"GFL-M4A1", "GIRL-M4A1", true},
		{"GFL-DOLL-UMP45", "GIRL-DOLL-UMP45", true},
		{"SF2-X", "GIRL-X", true},
		{"NOHYPHEN", "", false},
		{"GFL-", "", false},
		{"-REST", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DeriveName(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderEntities(t *testing.T) {
	out := RenderEntities([]Entity{{Markup: "<Entity name=\"GIRL-A\"></Entity>"}, {Markup: "<Entity name=\"GIRL-B\"></Entity>"}})
	want := "<Entities>\n" +
		"    <Entity name=\"GIRL-A\"></Entity>\n\n" +
		"    <Entity name=\"GIRL-B\"></Entity>\n\n" +
		"</Entities>\n"
	assert.Equal(t, want, out)
	assert.Equal(t, out, string(markup.ExpandTabs([]byte(out), 4)), "already in formatted form")
	assert.Equal(t, "<Entities>\n</Entities>\n", RenderEntities(nil))
}

func class(name, nameUI string) string {
	return `<Class name="` + name + `" nameUI="` + nameUI + `" description="@d" numSlots="4" supply="10" iconTex="data/i.dds" upgrades="u" maxUpgradeable="3" />`
}

func TestCollectClasses_OrderAcrossUnits(t *testing.T) {
	src := `<Units>
	<Unit name="GFL-UNIT-DEFY" flagColor="F2C53D">
		<Classes>
			` + class("GFL-DOLL-M4A1", "@m4") + `
			` + class("GFL-DOLL-M16", "@m16") + `
		</Classes>
	</Unit>
	<Unit name="GFL-UNIT-MIND" flagColor="5E9CD9">
		<Classes>
			` + class("GFL-DOLL-UMP45", "@ump") + `
		</Classes>
	</Unit>
</Units>`

	got, err := CollectClasses(src)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	if diff := cmp.Diff([]string{"GFL-DOLL-M4A1", "GFL-DOLL-M16", "GFL-DOLL-UMP45"}, names); diff != "" {
		t.Errorf("class order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, class("GFL-DOLL-M16", "@m16"), got[1].Markup)
}

func TestCollectClasses_MultilineFragment(t *testing.T) {
	src := `<Class
				name="GFL-DOLL-RO635"
				nameUI="@ro"
				description="@d"
				numSlots="4"
				supply="10"
				iconTex="data/i.dds"
				upgrades="u"
				maxUpgradeable="3"
			/>`
	got, err := CollectClasses(src)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GFL-DOLL-RO635", got[0].Name)
	assert.Equal(t, src, got[0].Markup)
}

func TestCollectClasses_DeduplicatesByName(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logging.Initialize(zap.New(core), config.LoggingConfig{})
	t.Cleanup(func() { logging.Initialize(nil, config.LoggingConfig{}) })

	src := class("GFL-DOLL-A", "@a") + class("GFL-DOLL-B", "@b") +
		class("GFL-DOLL-A", "@a") + class("GFL-DOLL-A", "@a-other")

	got, err := CollectClasses(src)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, class("GFL-DOLL-A", "@a"), got[0].Markup, "first definition wins")

	// Identical repeats are silent; the conflicting one is reported once.
	assert.Equal(t, 1, logs.FilterMessageSnippet("GFL-DOLL-A").Len())
}

func TestCollectClasses_Preconditions(t *testing.T) {
	t.Run("foreign class name", func(t *testing.T) {
		_, err := CollectClasses(class("SWAT-ASSAULTER", "@x"))
		var pe *PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "class", pe.Subject)
		assert.Equal(t, "SWAT-ASSAULTER", pe.Name)
	})

	t.Run("missing attribute", func(t *testing.T) {
		_, err := CollectClasses(`<Class name="GFL-DOLL-A" nameUI="@a" />`)
		var pe *PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Contains(t, pe.Reason, "description")
	})

	t.Run("empty attribute", func(t *testing.T) {
		_, err := CollectClasses(strings.Replace(class("GFL-DOLL-A", "@a"), `supply="10"`, `supply=""`, 1))
		var pe *PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Contains(t, pe.Reason, "supply")
	})
}

func TestRankTables(t *testing.T) {
	tr := TrooperRanks()
	require.Len(t, tr, 10)
	assert.Equal(t, TrooperRank{Name: "@agent_rank_0", XPNeeded: 0, BadgeTex: "data/textures/gui/customization/cia_rank_01.dds"}, tr[0])
	assert.Equal(t, TrooperRank{Name: "@agent_rank_9", XPNeeded: 126400, BadgeTex: "data/textures/gui/customization/cia_rank_10.dds"}, tr[9])

	ur := UnitRanks()
	require.Len(t, ur, 10)
	assert.Equal(t, 14980, ur[3].XPNeeded)
	assert.Equal(t, 70360, ur[9].XPNeeded)
}

func TestRenderUnit(t *testing.T) {
	classes := []ClassFragment{
		{Name: "GFL-DOLL-A", Markup: class("GFL-DOLL-A", "@a")},
		{Name: "GFL-DOLL-B", Markup: class("GFL-DOLL-B", "@b")},
	}
	out, err := RenderUnit(classes)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<Units>\n    <Unit\n        name=\"GFL-UNIT-GIRL\"\n"))
	assert.True(t, strings.HasSuffix(out, "    </Unit>\n</Units>\n"))
	assert.NotContains(t, out, "\t", "already in formatted form")
	assert.Contains(t, out, `nameUI="@GFL-UNIT-GIRL-NAME"`)
	assert.Contains(t, out, `rndNameEntry="@#GFL-UNIT-GIRL-NAME-RND"`)
	assert.Contains(t, out, "        <Classes>\n            "+classes[0].Markup+"\n            "+classes[1].Markup+"\n        </Classes>\n")
	assert.Contains(t, out, "        <TrooperRanks>\n            <Rank\n                name=\"@agent_rank_0\"\n")
	assert.Contains(t, out, "                badgeTex=\"data/textures/gui/customization/cia_rank_10.dds\"\n            />\n        </TrooperRanks>\n")
	assert.Contains(t, out, "        <Ranks>\n            <Rank xpNeeded=\"0\" badgeTex=\"\" />\n")
	assert.Contains(t, out, "            <Rank xpNeeded=\"70360\" badgeTex=\"\" />\n        </Ranks>\n")
	assert.Equal(t, 10, strings.Count(out, "<Rank\n"))
	assert.Equal(t, 10, strings.Count(out, "<Rank xpNeeded="))
}

func TestGenerate_Files(t *testing.T) {
	dir := t.TempDir()
	entitiesIn := filepath.Join(dir, "gfl_humans.xml")
	unitsIn := filepath.Join(dir, "gfl_unit.xml")
	require.NoError(t, os.WriteFile(entitiesIn, []byte(entitySource), 0644))
	require.NoError(t, os.WriteFile(unitsIn, []byte(class("GFL-DOLL-A", "@a")), 0644))

	entitiesOut := filepath.Join(dir, "out", "gfl_humans_girl.xml")
	entities, err := GenerateEntities(markup.NewSink(false), entitiesIn, entitiesOut)
	require.NoError(t, err)
	assert.Len(t, entities, 2)
	written, err := os.ReadFile(entitiesOut)
	require.NoError(t, err)
	assert.Equal(t, RenderEntities(entities), string(written))

	unitOut := filepath.Join(dir, "out", "gfl_unit_girl.xml")
	classes, err := GenerateUnit(markup.NewSink(false), unitsIn, unitOut)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
	first, err := os.ReadFile(unitOut)
	require.NoError(t, err)

	_, err = GenerateUnit(markup.NewSink(false), unitsIn, unitOut)
	require.NoError(t, err)
	second, err := os.ReadFile(unitOut)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateEntities_PreconditionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "gfl_humans.xml")
	out := filepath.Join(dir, "gfl_humans_girl.xml")
	require.NoError(t, os.WriteFile(in, []byte(`<Entity name="bad"></Entity>`), 0644))

	_, err := GenerateEntities(markup.NewSink(false), in, out)
	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), in)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateEntities_MissingInput(t *testing.T) {
	_, err := GenerateEntities(markup.NewSink(false), filepath.Join(t.TempDir(), "nope.xml"), filepath.Join(t.TempDir(), "out.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.xml")
}
