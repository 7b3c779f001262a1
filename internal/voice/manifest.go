package voice

import "regexp"

// PackSuffix marks voice packs among the manifest's packs.
const PackSuffix = "-Voice"

var (
	packPattern  = regexp.MustCompile(`(?s)<Pack name="([^"]+)-Voice"[^>]*>(.*?)</Pack>`)
	soundPattern = regexp.MustCompile(`<Sound ID="([^"]+)">`)
	pathPattern  = regexp.MustCompile(`name="(data/sounds/voice/[^"]+)"`)
)

// Pack is one character's voice pack.
type Pack struct {
	// Name is the pack name without the -Voice suffix.
	Name string
	// SoundIDs in document order, repeats included.
	SoundIDs []string
}

// FullName returns the pack name as written in the manifest.
func (p Pack) FullName() string {
	return p.Name + PackSuffix
}

// Manifest is the content of one voice line markup file.
type Manifest struct {
	Packs []Pack
	// Paths are the referenced recordings, unique, in first-seen order.
	Paths []string
}

// ParseManifest extracts packs and referenced recording paths from markup.
func ParseManifest(markup string) Manifest {
	var m Manifest
	for _, pm := range packPattern.FindAllStringSubmatch(markup, -1) {
		pack := Pack{Name: pm[1]}
		for _, sm := range soundPattern.FindAllStringSubmatch(pm[2], -1) {
			pack.SoundIDs = append(pack.SoundIDs, sm[1])
		}
		m.Packs = append(m.Packs, pack)
	}

	seen := make(map[string]bool)
	for _, pm := range pathPattern.FindAllStringSubmatch(markup, -1) {
		if seen[pm[1]] {
			continue
		}
		seen[pm[1]] = true
		m.Paths = append(m.Paths, pm[1])
	}
	return m
}
