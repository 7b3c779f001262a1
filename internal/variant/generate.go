package variant

import (
	"fmt"
	"os"

	"gflmod/internal/logging"
	"gflmod/internal/markup"
)

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// GenerateEntities derives GIRL entities from the entity file at in and delivers them to
// sink as out. Nothing is written when any source entity fails derivation.
func GenerateEntities(sink *markup.Sink, in, out string) ([]Entity, error) {
	timer := logging.StartTimer(logging.CategoryVariant, "GenerateEntities")
	defer timer.Stop()

	log := logging.Get(logging.CategoryVariant)

	src, err := readSource(in)
	if err != nil {
		return nil, err
	}
	entities, err := DeriveEntities(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}
	for _, e := range entities {
		log.Debug("%s -> %s", e.SourceName, e.Name)
	}

	if err := sink.WriteFile(out, []byte(RenderEntities(entities))); err != nil {
		return nil, err
	}
	log.Debug("rendered %d GIRL entities for %s", len(entities), out)
	return entities, nil
}

// GenerateUnit collects every class from the unit file at in and delivers the
// GFL-UNIT-GIRL definition to sink as out.
func GenerateUnit(sink *markup.Sink, in, out string) ([]ClassFragment, error) {
	timer := logging.StartTimer(logging.CategoryVariant, "GenerateUnit")
	defer timer.Stop()

	log := logging.Get(logging.CategoryVariant)

	src, err := readSource(in)
	if err != nil {
		return nil, err
	}
	classes, err := CollectClasses(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in, err)
	}

	rendered, err := RenderUnit(classes)
	if err != nil {
		return nil, err
	}
	if err := sink.WriteFile(out, []byte(rendered)); err != nil {
		return nil, err
	}
	log.Debug("rendered %s with %d classes for %s", VariantUnit, len(classes), out)
	return classes, nil
}
