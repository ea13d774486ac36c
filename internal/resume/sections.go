package resume

import "regexp"

// section identifies which resume section the parser is currently filling
type section int

const (
	sectionNone section = iota
	sectionSummary
	sectionExperience
	sectionEducation
	sectionSkills
	sectionCertifications
)

// headerPattern pairs a section with its header regex. Patterns are tested
// in this fixed order, anchored at line start, synonyms included.
type headerPattern struct {
	section section
	pattern *regexp.Regexp
}

var headerPatterns = []headerPattern{
	{sectionSummary, regexp.MustCompile(`(?i)^(professional\s+summary|summary|profile|objective|about)`)},
	{sectionExperience, regexp.MustCompile(`(?i)^(work\s+experience|experience|employment|professional\s+experience|career)`)},
	{sectionEducation, regexp.MustCompile(`(?i)^(education|academic|qualifications)`)},
	{sectionSkills, regexp.MustCompile(`(?i)^(skills|technical\s+skills|core\s+competencies|key\s+skills)`)},
	{sectionCertifications, regexp.MustCompile(`(?i)^(certifications|certificates|licenses)`)},
}

// matchSection returns the section whose header pattern matches the line,
// or sectionNone.
func matchSection(line string) section {
	for _, hp := range headerPatterns {
		if hp.pattern.MatchString(line) {
			return hp.section
		}
	}
	return sectionNone
}

// isSectionHeader reports whether a line matches any section header pattern
func isSectionHeader(line string) bool {
	return matchSection(line) != sectionNone
}
