package domain

import (
	"context"
	"log/slog"
	"strings"
)

// DefaultMaxVariants caps the typonym list, original name included.
const DefaultMaxVariants = 5

// VariantGenerator produces alternate place names ("typonyms") for a
// location. Implementations may fail or return nothing; both degrade to the
// deterministic fallback transforms.
type VariantGenerator interface {
	GenerateVariants(ctx context.Context, name string) ([]string, error)
}

// abbreviations maps leading place-name abbreviations to their expansions.
// Weather providers index the expanded forms.
var abbreviations = map[string]string{
	"Mt.": "Mount",
	"Mt":  "Mount",
	"St.": "Saint",
	"Ft.": "Fort",
	"Pt.": "Point",
}

// adminSuffixes are administrative designations that weather providers
// frequently fail to resolve. Stripping them yields the underlying place name.
var adminSuffixes = []string{
	"State Park",
	"National Park",
	"National Forest",
	"State Forest",
	"Recreation Area",
	"Wilderness Area",
	"Wilderness",
	"County Park",
	"Nature Reserve",
}

// ResolveLocation expands a raw location string into an ordered,
// de-duplicated list of candidate names to try against a weather provider:
// the normalized original first, then collaborator variants, then
// deterministic fallback transforms, capped at maxVariants. Collaborator
// failure never propagates; the fallback list is always produced.
func ResolveLocation(ctx context.Context, raw string, gen VariantGenerator, maxVariants int, logger *slog.Logger) []string {
	if maxVariants <= 0 {
		maxVariants = DefaultMaxVariants
	}

	original := normalizeWhitespace(raw)
	candidates := []string{original}

	if gen != nil {
		variants, err := gen.GenerateVariants(ctx, original)
		if err != nil {
			logger.Warn("typonym generation failed, using fallback transforms",
				"location", original,
				"error", err,
			)
		} else {
			candidates = append(candidates, variants...)
		}
	}

	candidates = append(candidates, fallbackVariants(original)...)

	return dedupeAndCap(candidates, maxVariants)
}

// fallbackVariants derives place-name candidates without any collaborator:
// comma narrowing from most to least specific, administrative-suffix
// stripping, and abbreviation expansion on the leading segment.
func fallbackVariants(name string) []string {
	var variants []string

	parts := splitTrim(name, ",")
	if len(parts) >= 2 {
		first, last := parts[0], parts[len(parts)-1]
		variants = append(variants,
			first+", "+last, // drop middle segments
			first,           // place name alone
			last,            // region alone
		)
	}

	base := name
	if len(parts) > 0 {
		base = parts[0]
	}
	if stripped := stripAdminSuffix(base); stripped != base {
		variants = append(variants, stripped)
		if len(parts) >= 2 {
			variants = append(variants, stripped+", "+parts[len(parts)-1])
		}
	}
	if expanded := expandAbbreviation(base); expanded != base {
		variants = append(variants, expanded)
	}

	return variants
}

// expandAbbreviation rewrites the leading token of a place name when it is a
// known abbreviation, e.g. "Mt. Whitney" → "Mount Whitney".
func expandAbbreviation(name string) string {
	token, rest, found := strings.Cut(name, " ")
	if !found {
		return name
	}
	if full, ok := abbreviations[token]; ok {
		return full + " " + rest
	}
	return name
}

func stripAdminSuffix(name string) string {
	for _, suffix := range adminSuffixes {
		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(suffix)) {
			trimmed := strings.TrimSpace(name[:len(name)-len(suffix)])
			if trimmed != "" {
				return trimmed
			}
		}
	}
	return name
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitTrim(s, sep string) []string {
	raw := strings.Split(s, sep)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if t := strings.TrimSpace(p); t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

// dedupeAndCap removes case-insensitive duplicates and empty entries while
// preserving first-seen order, then truncates to max entries.
func dedupeAndCap(names []string, max int) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, max)
	for _, n := range names {
		n = normalizeWhitespace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
		if len(out) == max {
			break
		}
	}
	return out
}
