// Package tailoring merges a structured resume with a classified keyword set,
// injecting missing keywords into the resume and scoring the match.
package tailoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/ats-tailor/internal/types"
)

// Injection caps. Bullets take at most two keywords each to avoid stuffing;
// skills absorb up to fifteen leftovers per call; the summary takes up to
// five beyond that.
const (
	maxKeywordsPerBullet = 2
	maxSkillInjections   = 15
	maxSummaryInjections = 5
)

// Tailor produces a tailored copy of the resume with missing keywords
// injected, plus a match score and provenance. The caller's resume is never
// mutated. Experience bullets are filled first, then skills, then the
// summary, so every discovered keyword lands somewhere even on a sparse
// resume.
func Tailor(resume *types.StructuredResume, keywords *types.KeywordSet) *types.TailorResult {
	if resume == nil || keywords.IsEmpty() {
		return &types.TailorResult{
			Tailored: resume,
			Score:    0,
			Matched:  []string{},
			Missing:  []string{},
			Injected: []string{},
		}
	}

	tailored := resume.Clone()
	missing := missingKeywords(resume, keywords.All)
	injected := make([]string, 0, len(missing))

	// Priority 1: experience bullets
	idx := 0
	for e := range tailored.Experience {
		entry := &tailored.Experience[e]
		for b := 0; b < len(entry.Bullets) && idx < len(missing); b++ {
			take := maxKeywordsPerBullet
			if remaining := len(missing) - idx; remaining < take {
				take = remaining
			}
			toAdd := missing[idx : idx+take]
			idx += take

			entry.Bullets[b] = injectIntoBullet(entry.Bullets[b], toAdd)
			injected = append(injected, toAdd...)
		}
	}

	// Priority 2: skills
	remaining := missing[idx:]
	if len(remaining) > 0 {
		take := len(remaining)
		if take > maxSkillInjections {
			take = maxSkillInjections
		}
		tailored.Skills = append(tailored.Skills, remaining[:take]...)
		injected = append(injected, remaining[:take]...)
		remaining = remaining[take:]
	}

	// Priority 3: summary
	if len(remaining) > 0 && tailored.Summary != "" {
		take := len(remaining)
		if take > maxSummaryInjections {
			take = maxSummaryInjections
		}
		tailored.Summary += fmt.Sprintf(". Expertise includes %s.", strings.Join(remaining[:take], ", "))
		injected = append(injected, remaining[:take]...)
	}

	// Final score is re-evaluated against the tailored serialization
	matched := matchedKeywords(tailored, keywords.All)
	score := int(math.Round(float64(len(matched)) / float64(len(keywords.All)) * 100))

	return &types.TailorResult{
		Tailored: tailored,
		Score:    score,
		Matched:  matched,
		Missing:  subtract(missing, injected),
		Injected: injected,
	}
}

// injectIntoBullet appends a natural-language clause carrying one or two
// keywords, replacing any trailing period before re-appending one.
func injectIntoBullet(bullet string, keywords []string) string {
	var phrase string
	if len(keywords) == 1 {
		phrase = fmt.Sprintf(", leveraging %s", keywords[0])
	} else {
		phrase = fmt.Sprintf(", utilizing %s", strings.Join(keywords, " and "))
	}

	trimmed := strings.TrimRight(bullet, " \t")
	trimmed = strings.TrimSuffix(trimmed, ".")
	return trimmed + phrase + "."
}

// missingKeywords returns the keywords whose lowercase form does not appear
// as a substring of the lowercase JSON-serialized resume.
func missingKeywords(resume *types.StructuredResume, all []string) []string {
	serialized := serializeLower(resume)
	missing := make([]string, 0, len(all))
	for _, k := range all {
		if !strings.Contains(serialized, strings.ToLower(k)) {
			missing = append(missing, k)
		}
	}
	return missing
}

// matchedKeywords returns the keywords present in the serialized resume
func matchedKeywords(resume *types.StructuredResume, all []string) []string {
	serialized := serializeLower(resume)
	matched := make([]string, 0, len(all))
	for _, k := range all {
		if strings.Contains(serialized, strings.ToLower(k)) {
			matched = append(matched, k)
		}
	}
	return matched
}

// serializeLower is the canonical membership-test form of a resume
func serializeLower(resume *types.StructuredResume) string {
	data, err := json.Marshal(resume)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(data))
}

// subtract returns the members of a not present in b, preserving order
func subtract(a, b []string) []string {
	drop := make(map[string]bool, len(b))
	for _, s := range b {
		drop[s] = true
	}
	out := make([]string, 0, len(a))
	for _, s := range a {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}
