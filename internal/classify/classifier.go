package classify

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSimilarityFloor is the minimum fuzzy similarity for the technician
// fallback tier when no floor is configured.
const DefaultSimilarityFloor = 0.85

// Options tunes classifier behavior.
type Options struct {
	// SimilarityFloor is the minimum levenshtein similarity (0..1) for the
	// fuzzy technician fallback. Zero selects [DefaultSimilarityFloor].
	SimilarityFloor float64
}

type locationKeyword struct {
	norm    string
	display string
}

// Classifier resolves raw technician, task-plan and site strings to
// canonical group names. Build one with [New] and share it freely; it is
// immutable and safe for concurrent use.
type Classifier struct {
	floor float64

	techExact map[string]string
	techKeys  []string

	taskExact map[string]string

	keywords []locationKeyword
}

// New builds a Classifier from the built-in dictionaries, normalizing every
// dictionary key once up front.
func New(opts Options) *Classifier {
	floor := opts.SimilarityFloor
	if floor <= 0 {
		floor = DefaultSimilarityFloor
	}

	c := &Classifier{
		floor:     floor,
		techExact: make(map[string]string),
		taskExact: make(map[string]string),
	}

	for group, raws := range technicianGroups {
		for _, raw := range raws {
			key := NormalizeText(raw)
			if key == "" {
				continue
			}
			c.techExact[key] = group
		}
	}
	c.techKeys = make([]string, 0, len(c.techExact))
	for key := range c.techExact {
		c.techKeys = append(c.techKeys, key)
	}
	// Deterministic order so substring and fuzzy ties always resolve the
	// same way across runs.
	sort.Strings(c.techKeys)

	for group, plans := range taskTypeGroups {
		for _, plan := range plans {
			c.taskExact[collapseLower(plan)] = group
		}
	}

	titler := cases.Title(language.BrazilianPortuguese)
	c.keywords = make([]locationKeyword, 0, len(locationKeywords))
	for _, kw := range locationKeywords {
		c.keywords = append(c.keywords, locationKeyword{
			norm:    NormalizeText(kw),
			display: titler.String(strings.ToLower(kw)),
		})
	}

	return c
}

// TechnicianGroup maps a raw technician string to its canonical group.
// Blank input yields [GroupUnmapped]; recognizable-but-unmatched input
// yields [GroupOther]. Matching runs in three tiers: exact normalized
// lookup, substring containment in either direction, then fuzzy similarity
// against every dictionary key with the configured floor.
func (c *Classifier) TechnicianGroup(raw string) string {
	key := NormalizeText(raw)
	if key == "" {
		return GroupUnmapped
	}

	if group, ok := c.techExact[key]; ok {
		return group
	}

	for _, dict := range c.techKeys {
		if strings.Contains(dict, key) || strings.Contains(key, dict) {
			return c.techExact[dict]
		}
	}

	best, bestScore := "", c.floor
	for _, dict := range c.techKeys {
		if score := levenshtein.Similarity(key, dict, nil); score >= bestScore {
			best, bestScore = dict, score
		}
	}
	if best != "" {
		return c.techExact[best]
	}

	return GroupOther
}

// TaskTypeGroup maps a raw task-plan string to its canonical category.
// Lookup is exact after lowercasing and whitespace collapsing; accents are
// significant. Blank input yields [GroupUncategorized], unmatched input
// [GroupOther].
func (c *Classifier) TaskTypeGroup(raw string) string {
	key := collapseLower(raw)
	if key == "" {
		return GroupUncategorized
	}
	if group, ok := c.taskExact[key]; ok {
		return group
	}
	return GroupOther
}

// LocationGroup maps a raw site string to its parent location group.
// Umbrella indicators win first: any mention of Gerdau collapses to
// [GroupGerdau] and any labor-court mention to [GroupTRT]. Otherwise the
// earliest keyword occurrence in the text decides; not the longest match.
func (c *Classifier) LocationGroup(site string) string {
	norm := NormalizeText(site)
	if norm == "" {
		return GroupOther
	}
	if strings.Contains(norm, NormalizeText(gerdauIndicator)) {
		return GroupGerdau
	}
	if c.hasTRTIndicator(norm) {
		return GroupTRT
	}
	if kw := c.leftmostKeyword(norm); kw != nil {
		return kw.display
	}
	return GroupOther
}

// LocationDetail resolves the specific site under a parent group. Gerdau
// sites resolve to the individual mill keyword, TRT sites go through the
// court-site table, and every other group is its own detail.
func (c *Classifier) LocationDetail(group, site string) string {
	switch group {
	case GroupGerdau:
		norm := NormalizeText(site)
		if kw := c.leftmostKeyword(norm); kw != nil && strings.HasPrefix(kw.norm, "gerdau") {
			return kw.display
		}
		return GroupGerdau
	case GroupTRT:
		return c.TRTDetail(site)
	default:
		return group
	}
}

// TRTDetail resolves a specific labor-court site from free text, falling
// back to [TRTDetailOther] when no known court token appears.
func (c *Classifier) TRTDetail(text string) string {
	norm := NormalizeText(text)
	for _, entry := range trtDetailTable {
		if strings.Contains(norm, entry.token) {
			return entry.display
		}
	}
	return TRTDetailOther
}

// EscalateFromAsset refines a work order's location using the asset text
// of one of its tasks. A hospital mention overrides everything; a
// labor-court mention only upgrades orders that are not yet pinned to a
// specific court site.
func (c *Classifier) EscalateFromAsset(group, detail string, asset *string) (string, string) {
	if asset == nil || *asset == "" {
		return group, detail
	}
	if c.HasHospitalIndicator(*asset) {
		return GroupHospital, GroupHospital
	}
	if c.HasTRTIndicator(*asset) && (group != GroupTRT || detail == TRTDetailOther) {
		if refined := c.TRTDetail(*asset); refined != TRTDetailOther {
			return GroupTRT, refined
		}
	}
	return group, detail
}

// HasHospitalIndicator reports whether text mentions the Hospital de
// Clínicas site. Tasks carrying this marker escalate the parent work
// order's location to [GroupHospital].
func (c *Classifier) HasHospitalIndicator(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(NormalizeText(text), NormalizeText(hospitalIndicator))
}

// HasTRTIndicator reports whether text mentions the labor court. Used to
// refine a generic court detail from task asset text.
func (c *Classifier) HasTRTIndicator(text string) bool {
	if text == "" {
		return false
	}
	return c.hasTRTIndicator(NormalizeText(text))
}

// Plain containment: the court acronym also shows up glued to digits or
// room codes ("TRT4", "TRT-POA"), and no Portuguese word embeds "trt".
func (c *Classifier) hasTRTIndicator(norm string) bool {
	if strings.Contains(norm, strings.ToLower(trtIndicator)) {
		return true
	}
	for _, frag := range trtRegionFragments {
		if strings.Contains(norm, frag) {
			return true
		}
	}
	return false
}

func (c *Classifier) leftmostKeyword(norm string) *locationKeyword {
	bestAt := -1
	var best *locationKeyword
	for i := range c.keywords {
		kw := &c.keywords[i]
		if kw.norm == "" {
			continue
		}
		at := strings.Index(norm, kw.norm)
		if at < 0 {
			continue
		}
		if bestAt == -1 || at < bestAt {
			bestAt, best = at, kw
		}
	}
	return best
}
