// Package variant derives the GIRL faction from the base definitions: renamed entity
// copies owned by GFL-UNIT-GIRL, and a single unit gathering every doll class.
package variant

import (
	"regexp"
	"strings"
)

const (
	// VariantPrefix marks derived entity names.
	VariantPrefix = "GIRL-"
	// VariantUnit owns every derived entity and class.
	VariantUnit = "GFL-UNIT-GIRL"

	// indent is one level of output indentation, already in the four-space form
	// the markup formatter produces.
	indent = "    "
)

var (
	entityPattern   = regexp.MustCompile(`(?s)<Entity name="([^"]+)".*?</Entity>`)
	entityNameRule  = regexp.MustCompile(`^[A-Z0-9]+-(.+)`)
	ownerUnitRef    = regexp.MustCompile(`unit="GFL-UNIT-[^"]*"`)
	variantOwnerRef = `unit="` + VariantUnit + `"`
)

// SourceEntity is one <Entity> element as found in the base definitions.
type SourceEntity struct {
	Name   string
	Markup string
}

// Entity is a derived GIRL entity.
type Entity struct {
	SourceName string
	Name       string
	Markup     string
}

// ParseEntities returns every entity element of markup in document order.
func ParseEntities(markup string) []SourceEntity {
	var out []SourceEntity
	for _, m := range entityPattern.FindAllStringSubmatch(markup, -1) {
		out = append(out, SourceEntity{Name: m[1], Markup: m[0]})
	}
	return out
}

// DeriveName maps PREFIX-REST to GIRL-REST.
func DeriveName(name string) (string, error) {
	m := entityNameRule.FindStringSubmatch(name)
	if m == nil {
		return "", &PreconditionError{
			Subject: "entity",
			Name:    name,
			Reason:  "name does not match expected pattern PREFIX-NAME",
		}
	}
	return VariantPrefix + m[1], nil
}

// DeriveEntity renames src and hands it to the GIRL unit. Only the first name="..."
// occurrence of the original name is rewritten; every owning unit reference is.
func DeriveEntity(src SourceEntity) (Entity, error) {
	name, err := DeriveName(src.Name)
	if err != nil {
		return Entity{}, err
	}
	markup := strings.Replace(src.Markup, `name="`+src.Name+`"`, `name="`+name+`"`, 1)
	markup = ownerUnitRef.ReplaceAllLiteralString(markup, variantOwnerRef)
	return Entity{SourceName: src.Name, Name: name, Markup: markup}, nil
}

// DeriveEntities derives a GIRL entity for every base entity in markup. Entities that
// already carry the GIRL- prefix are skipped. The first malformed name fails the run.
func DeriveEntities(markup string) ([]Entity, error) {
	var out []Entity
	for _, src := range ParseEntities(markup) {
		if strings.HasPrefix(src.Name, VariantPrefix) {
			continue
		}
		e, err := DeriveEntity(src)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// RenderEntities wraps derived entities in an <Entities> document, one indented
// entity per block separated by a blank line.
func RenderEntities(entities []Entity) string {
	var sb strings.Builder
	sb.WriteString("<Entities>\n")
	for _, e := range entities {
		sb.WriteString(indent)
		sb.WriteString(e.Markup)
		sb.WriteString("\n\n")
	}
	sb.WriteString("</Entities>\n")
	return sb.String()
}
