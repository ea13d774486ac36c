// Package fields classifies upload fields on an application page as resume
// or cover letter targets.
package fields

import (
	"regexp"
	"strings"
)

// Kind is the classification of an upload field.
type Kind int

const (
	// KindNone is a field with no recognizable purpose
	KindNone Kind = iota
	// KindResume is a resume/CV upload target
	KindResume
	// KindCover is a cover letter upload target
	KindCover
)

func (k Kind) String() string {
	switch k {
	case KindResume:
		return "resume"
	case KindCover:
		return "cover"
	default:
		return "none"
	}
}

// Ancestor text inspection limits. Five levels up covers every ATS form
// nesting observed in practice; 200 characters keeps a page-level container
// from polluting the signal.
const (
	maxAncestorDepth   = 5
	maxAncestorTextLen = 200
)

var (
	resumePattern = regexp.MustCompile(`(?i)(resume|cv|curriculum)`)
	coverPattern  = regexp.MustCompile(`(?i)cover`)
)

// FieldContext carries everything known about one upload field: its own
// attributes and label text, plus the text of up to five ancestors ordered
// innermost first, each lowercased and truncated.
type FieldContext struct {
	Label         string
	Name          string
	ID            string
	AriaLabel     string
	AncestorTexts []string
}

// Classify decides what a field is for. Ancestor text is inspected innermost
// to outermost: a "cover" mention wins at any level, otherwise a resume/cv
// mention does. When no ancestor matches, the field's own attribute text
// decides, with cover again taking precedence over resume so a combined
// "resume and cover letter" field is never fed the wrong document.
func Classify(fc FieldContext) Kind {
	ancestors := fc.AncestorTexts
	if len(ancestors) > maxAncestorDepth {
		ancestors = ancestors[:maxAncestorDepth]
	}
	for _, raw := range ancestors {
		text := normalizeAncestorText(raw)
		switch {
		case strings.Contains(text, "cover"):
			return KindCover
		case strings.Contains(text, "resume"), strings.Contains(text, "cv"):
			return KindResume
		}
	}

	own := strings.ToLower(fc.Label + fc.Name + fc.ID + fc.AriaLabel)
	switch {
	case coverPattern.MatchString(own):
		return KindCover
	case resumePattern.MatchString(own):
		return KindResume
	default:
		return KindNone
	}
}

// normalizeAncestorText lowercases and truncates one ancestor's text
func normalizeAncestorText(text string) string {
	text = strings.ToLower(text)
	if len(text) > maxAncestorTextLen {
		runes := []rune(text)
		if len(runes) > maxAncestorTextLen {
			text = string(runes[:maxAncestorTextLen])
		}
	}
	return text
}
