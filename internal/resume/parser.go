// Package resume parses raw resume text into a StructuredResume using
// line-oriented heuristics. The parser is best-effort: it never fails, and
// unparseable text yields a resume with empty fields rather than an error.
package resume

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-tailor/internal/types"
)

// maxRoleLineLength bounds delimiter-split lines treated as role boundaries
const maxRoleLineLength = 100

var (
	// delimiterPattern splits role header lines: pipe, en/em dash, hyphen
	delimiterPattern = regexp.MustCompile(`[|–—-]`)
	// datePattern marks role boundaries by year or an ongoing-role token
	datePattern = regexp.MustCompile(`(?i)\b(20\d{2}|19\d{2}|Present|Current)\b`)
	// bulletPrefixPattern strips leading bullet glyphs from content lines
	bulletPrefixPattern = regexp.MustCompile(`^[•\-*]\s*`)
	// eduDelimiterPattern splits the institution segment of education lines
	eduDelimiterPattern = regexp.MustCompile(`[|–]`)

	institutionPattern = regexp.MustCompile(`(?i)university|college|institute|school|academy`)
	degreePattern      = regexp.MustCompile(`(?i)bachelor|master|phd|degree|diploma`)
	gpaPattern         = regexp.MustCompile(`(?i)GPA[:\s]*(\d+\.?\d*)`)

	skillSplitPattern = regexp.MustCompile(`[,;]`)
)

// Parse turns resume plain text into a StructuredResume in a single forward
// pass. Calling it twice on identical text yields structurally identical
// results.
func Parse(text string) *types.StructuredResume {
	result := types.NewStructuredResume()

	lines := normalizeLines(text)
	if len(lines) == 0 {
		return result
	}

	// The first line is the candidate name unless it is a section header
	if !isSectionHeader(lines[0]) {
		result.Personal.Name = lines[0]
	}

	// Contact extraction is independent of the main pass
	scanContact(lines, &result.Personal)

	current := sectionNone
	var curExp *types.ExperienceEntry
	var curEdu *types.EducationEntry

	flushEntries := func() {
		if curExp != nil {
			result.Experience = append(result.Experience, *curExp)
			curExp = nil
		}
		if curEdu != nil {
			result.Education = append(result.Education, *curEdu)
			curEdu = nil
		}
	}

	for _, line := range lines {
		if found := matchSection(line); found != sectionNone {
			flushEntries()
			current = found
			continue
		}

		switch current {
		case sectionSummary:
			if result.Summary != "" {
				result.Summary += " "
			}
			result.Summary += line

		case sectionExperience:
			isRoleLine := delimiterPattern.MatchString(line) && len(line) < maxRoleLineLength
			switch {
			case isRoleLine || datePattern.MatchString(line):
				if curExp != nil {
					result.Experience = append(result.Experience, *curExp)
				}
				curExp = newExperienceEntry(line)
			case curExp != nil && bulletPrefixPattern.MatchString(line):
				curExp.Bullets = append(curExp.Bullets, bulletPrefixPattern.ReplaceAllString(line, ""))
			case curExp != nil && len(curExp.Bullets) > 0:
				// Continuation of the previous bullet
				curExp.Bullets[len(curExp.Bullets)-1] += " " + line
			default:
				// Continuation with no open bullet is dropped
			}

		case sectionEducation:
			if institutionPattern.MatchString(line) || degreePattern.MatchString(line) {
				if curEdu != nil {
					result.Education = append(result.Education, *curEdu)
				}
				curEdu = newEducationEntry(line)
			}

		case sectionSkills:
			stripped := bulletPrefixPattern.ReplaceAllString(line, "")
			for _, token := range skillSplitPattern.Split(stripped, -1) {
				token = strings.TrimSpace(token)
				if len(token) > 1 {
					result.Skills = append(result.Skills, token)
				}
			}

		case sectionCertifications:
			if len(line) > 3 {
				result.Certifications = append(result.Certifications, bulletPrefixPattern.ReplaceAllString(line, ""))
			}
		}
	}

	flushEntries()
	result.Skills = dedupeSkills(result.Skills)
	return result
}

// newExperienceEntry splits a role boundary line into its parts: the first
// part is the company, the second the title, the first part carrying a date
// token the dates, and the last part the location.
func newExperienceEntry(line string) *types.ExperienceEntry {
	parts := delimiterPattern.Split(line, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	entry := &types.ExperienceEntry{Bullets: []string{}}
	if len(parts) > 0 {
		entry.Company = parts[0]
		entry.Location = parts[len(parts)-1]
	}
	if len(parts) > 1 {
		entry.Title = parts[1]
	}
	for _, part := range parts {
		if datePattern.MatchString(part) {
			entry.Dates = part
			break
		}
	}
	return entry
}

// newEducationEntry builds an education record from a line carrying
// institution or degree vocabulary.
func newEducationEntry(line string) *types.EducationEntry {
	entry := &types.EducationEntry{}
	if institutionPattern.MatchString(line) {
		entry.Institution = strings.TrimSpace(eduDelimiterPattern.Split(line, 2)[0])
	}
	if degreePattern.MatchString(line) {
		entry.Degree = line
	}
	if m := gpaPattern.FindStringSubmatch(line); m != nil {
		entry.GPA = m[1]
	}
	return entry
}

// normalizeLines splits text into trimmed, non-empty lines
func normalizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// dedupeSkills removes duplicates preserving first-seen order
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if !seen[skill] {
			seen[skill] = true
			out = append(out, skill)
		}
	}
	return out
}
