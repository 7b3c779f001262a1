package voice

import "sort"

// PackResult is the catalog check of one pack.
type PackResult struct {
	Pack       string
	SoundCount int
	Invalid    []string       // present but not in the catalog
	Missing    []string       // in the catalog but absent
	Duplicates map[string]int // ID -> occurrences, only IDs seen more than once
}

// Valid reports whether the pack declares exactly the catalog.
func (r PackResult) Valid() bool {
	return len(r.Invalid) == 0 && len(r.Missing) == 0 && len(r.Duplicates) == 0
}

// DuplicateIDs returns the duplicated IDs sorted.
func (r PackResult) DuplicateIDs() []string {
	ids := make([]string, 0, len(r.Duplicates))
	for id := range r.Duplicates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckPack compares a pack's sound IDs against catalog.
func CheckPack(pack Pack, catalog Catalog) PackResult {
	r := PackResult{
		Pack:       pack.FullName(),
		SoundCount: len(pack.SoundIDs),
		Duplicates: make(map[string]int),
	}

	counts := make(map[string]int, len(pack.SoundIDs))
	for _, id := range pack.SoundIDs {
		counts[id]++
	}
	for id, n := range counts {
		if !catalog.Has(id) {
			r.Invalid = append(r.Invalid, id)
		}
		if n > 1 {
			r.Duplicates[id] = n
		}
	}
	for id := range catalog {
		if counts[id] == 0 {
			r.Missing = append(r.Missing, id)
		}
	}
	sort.Strings(r.Invalid)
	sort.Strings(r.Missing)
	return r
}
