package inferschema

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwerner/schemaprobe/pkg/jsonval"
)

// FieldStat contains per-field statistics computed across multiple samples.
type FieldStat struct {
	Path          string   `json:"path"`                  // dotted path, "[]" marks array items
	Type          string   `json:"type"`                  // JSON-Schema type, "a|b" for unions
	Frequency     float64  `json:"frequency"`             // fraction of samples containing this field
	Required      bool     `json:"required"`              // present in all samples and never null
	Nullable      bool     `json:"nullable"`              // null in at least one sample
	DistinctCount int      `json:"distinct_count"`        // distinct non-null values observed
	Examples      []any    `json:"examples,omitzero"`     // up to 3 example scalar values
	Format        string   `json:"format,omitempty"`      // uuid, iso8601, url, email, enum
	EnumValues    []string `json:"enum_values,omitempty"` // distinct values when format is "enum"
}

const (
	// DefaultStatsMaxDepth bounds recursion into nested objects.
	DefaultStatsMaxDepth = 5

	maxExamples           = 3
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var (
	uuidRegex    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	iso8601Regex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlRegex     = regexp.MustCompile(`^https?://`)
	emailRegex   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// ComputeFieldStats walks a merged schema fragment and cross-references the
// raw samples to produce a flat per-field statistics table. maxDepth <= 0
// uses DefaultStatsMaxDepth.
func ComputeFieldStats(frag *Fragment, samples []jsonval.Value, maxDepth int) []FieldStat {
	if frag == nil || len(samples) == 0 {
		return nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultStatsMaxDepth
	}

	var stats []FieldStat
	walkFragment(frag, "", samples, 0, maxDepth, &stats)
	return stats
}

func walkFragment(frag *Fragment, path string, samples []jsonval.Value, depth, maxDepth int, stats *[]FieldStat) {
	if frag == nil {
		return
	}
	if depth > maxDepth {
		if path != "" {
			*stats = append(*stats, FieldStat{
				Path: path + " (truncated at depth limit)",
				Type: "...",
			})
		}
		return
	}

	if !frag.Type.Contains(TypeObject) || frag.Properties == nil {
		return
	}

	for pair := frag.Properties.Oldest(); pair != nil; pair = pair.Next() {
		propName := pair.Key
		propFrag := pair.Value

		fieldPath := propName
		if path != "" {
			fieldPath = path + "." + propName
		}

		*stats = append(*stats, fieldStat(fieldPath, propFrag, propName, samples))

		if propFrag.Type.Contains(TypeObject) && propFrag.Properties != nil {
			nested := nestedSamples(propName, samples)
			walkFragment(propFrag, fieldPath, nested, depth+1, maxDepth, stats)
		}

		if propFrag.Type.Contains(TypeArray) && propFrag.Items != nil &&
			propFrag.Items.Type.Contains(TypeObject) && propFrag.Items.Properties != nil {
			items := arrayItemSamples(propName, samples)
			walkFragment(propFrag.Items, fieldPath+"[]", items, depth+1, maxDepth, stats)
		}
	}
}

func fieldStat(path string, frag *Fragment, fieldName string, samples []jsonval.Value) FieldStat {
	totalSamples := len(samples)
	stat := FieldStat{
		Path:     path,
		Type:     resolveType(frag),
		Examples: []any{},
	}

	presentCount := 0
	nullCount := 0
	distinct := make(map[string]bool)
	var stringValues []string

	for _, sample := range samples {
		if sample.Kind() != jsonval.KindObject {
			continue
		}
		val, exists := sample.Obj().Get(fieldName)
		if !exists {
			continue
		}
		presentCount++

		if val.Kind() == jsonval.KindNull {
			nullCount++
			continue
		}

		// Distinct values keyed by serialized form. Objects and arrays
		// count as distinct but are not collected as examples; the child
		// field stats describe their structure.
		b, err := val.MarshalJSON()
		if err != nil {
			continue
		}
		if !distinct[string(b)] {
			distinct[string(b)] = true
			switch val.Kind() {
			case jsonval.KindObject, jsonval.KindArray:
			default:
				if len(stat.Examples) < maxExamples {
					stat.Examples = append(stat.Examples, val.Interface())
				}
			}
		}

		if val.Kind() == jsonval.KindString {
			stringValues = append(stringValues, val.Str())
		}
	}

	if totalSamples > 0 {
		stat.Frequency = float64(presentCount) / float64(totalSamples)
	}
	stat.Required = presentCount == totalSamples && nullCount == 0
	stat.Nullable = nullCount > 0
	stat.DistinctCount = len(distinct)

	if stat.Type == string(TypeString) && len(stringValues) >= minSamplesForFormat {
		stat.Format, stat.EnumValues = detectFormat(stringValues)
	}

	return stat
}

// detectFormat detects common value formats for string fields.
func detectFormat(values []string) (string, []string) {
	if len(values) == 0 {
		return "", nil
	}

	for _, probe := range []struct {
		name string
		re   *regexp.Regexp
	}{
		{"uuid", uuidRegex},
		{"iso8601", iso8601Regex},
		{"url", urlRegex},
		{"email", emailRegex},
	} {
		allMatch := true
		for _, v := range values {
			if !probe.re.MatchString(v) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return probe.name, nil
		}
	}

	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) <= maxEnumDistinctValues {
		enumValues := make([]string, 0, len(distinct))
		for v := range distinct {
			enumValues = append(enumValues, v)
		}
		sort.Strings(enumValues)
		return "enum", enumValues
	}

	return "", nil
}

// nestedSamples extracts the non-null values of a field from each sample.
func nestedSamples(fieldName string, samples []jsonval.Value) []jsonval.Value {
	var nested []jsonval.Value
	for _, sample := range samples {
		if sample.Kind() != jsonval.KindObject {
			continue
		}
		if val, exists := sample.Obj().Get(fieldName); exists && val.Kind() != jsonval.KindNull {
			nested = append(nested, val)
		}
	}
	return nested
}

// arrayItemSamples flattens the non-null array items of a field across samples.
func arrayItemSamples(fieldName string, samples []jsonval.Value) []jsonval.Value {
	var items []jsonval.Value
	for _, sample := range samples {
		if sample.Kind() != jsonval.KindObject {
			continue
		}
		val, exists := sample.Obj().Get(fieldName)
		if !exists || val.Kind() != jsonval.KindArray {
			continue
		}
		for _, item := range val.Elems() {
			if item.Kind() != jsonval.KindNull {
				items = append(items, item)
			}
		}
	}
	return items
}

// resolveType renders a fragment's type for the stats table, folding
// TypeSet members and anyOf branches into a "a|b" union string.
func resolveType(frag *Fragment) string {
	if len(frag.Type) > 0 {
		names := make([]string, 0, len(frag.Type))
		for _, t := range frag.Type {
			names = append(names, string(t))
		}
		return strings.Join(names, "|")
	}
	if len(frag.AnyOf) > 0 {
		var names []string
		for _, a := range frag.AnyOf {
			for _, t := range a.Type {
				names = append(names, string(t))
			}
		}
		return strings.Join(names, "|")
	}
	return "unknown"
}
