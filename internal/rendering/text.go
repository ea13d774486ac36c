// Package rendering serializes a structured resume into the canonical
// ATS-plain-text layout and, when a PDF capability is available, into PDF
// bytes.
package rendering

import (
	"strings"

	"github.com/jonathan/ats-tailor/internal/types"
)

// maxDisplayedSkills caps the skills line in the rendered document
const maxDisplayedSkills = 25

// fallbackName is used when the resume carries no candidate name
const fallbackName = "APPLICANT NAME"

// RenderText serializes a resume into the canonical plain-text layout with
// fixed section order. Sections with no content are omitted entirely.
func RenderText(resume *types.StructuredResume) string {
	if resume == nil {
		return ""
	}

	lines := make([]string, 0, 32)
	p := resume.Personal

	name := p.Name
	if name == "" {
		name = fallbackName
	}
	lines = append(lines, strings.ToUpper(name))

	if contact := joinNonEmpty(" | ", p.Phone, p.Email, p.Location); contact != "" {
		lines = append(lines, contact)
	}
	if links := joinNonEmpty(" | ", p.LinkedIn, p.GitHub); links != "" {
		lines = append(lines, links)
	}
	lines = append(lines, "")

	if resume.Summary != "" {
		lines = append(lines, "PROFESSIONAL SUMMARY", resume.Summary, "")
	}

	if len(resume.Experience) > 0 {
		lines = append(lines, "WORK EXPERIENCE")
		for _, job := range resume.Experience {
			lines = append(lines, joinNonEmpty(" | ", job.Company, job.Title, job.Dates, job.Location), "")
			for _, bullet := range job.Bullets {
				lines = append(lines, "• "+bullet)
			}
			lines = append(lines, "")
		}
	}

	if len(resume.Education) > 0 {
		lines = append(lines, "EDUCATION")
		for _, edu := range resume.Education {
			gpa := ""
			if edu.GPA != "" {
				gpa = "GPA: " + edu.GPA
			}
			lines = append(lines, joinNonEmpty(" | ", edu.Institution, edu.Degree, edu.Dates, gpa))
		}
		lines = append(lines, "")
	}

	if len(resume.Skills) > 0 {
		skills := resume.Skills
		if len(skills) > maxDisplayedSkills {
			skills = skills[:maxDisplayedSkills]
		}
		lines = append(lines, "SKILLS", strings.Join(skills, ", "), "")
	}

	if len(resume.Certifications) > 0 {
		lines = append(lines, "CERTIFICATIONS", strings.Join(resume.Certifications, ", "))
	}

	return strings.Join(lines, "\n")
}

// joinNonEmpty joins the non-empty parts with the separator
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}
