package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/ats-tailor/internal/types"
)

var nonLetterPattern = regexp.MustCompile(`[^a-zA-Z]`)

// fileNameSuffix maps a document kind to its file name tail
var fileNameSuffix = map[types.DocumentKind]string{
	types.DocumentCV:    "ATS_CV.pdf",
	types.DocumentCover: "Cover_Letter.pdf",
}

// DeriveFileName builds the attachment file name from the candidate name,
// keeping letters only so the result is safe on every upload portal.
func DeriveFileName(resume *types.StructuredResume, kind types.DocumentKind) string {
	first, last := splitName(resume)
	suffix, ok := fileNameSuffix[kind]
	if !ok {
		suffix = fileNameSuffix[types.DocumentCV]
	}

	if last == "" {
		return first + "_" + suffix
	}
	return first + "_" + last + "_" + suffix
}

// splitName yields sanitized first and last name segments, falling back to
// "Applicant" when the resume has no usable name.
func splitName(resume *types.StructuredResume) (string, string) {
	name := ""
	if resume != nil {
		name = strings.TrimSpace(resume.Personal.Name)
	}
	if name == "" {
		return "Applicant", ""
	}

	parts := strings.Fields(name)
	first := nonLetterPattern.ReplaceAllString(parts[0], "")
	last := ""
	if len(parts) > 1 {
		last = nonLetterPattern.ReplaceAllString(strings.Join(parts[1:], ""), "")
	}
	if first == "" && last == "" {
		return "Applicant", ""
	}
	if first == "" {
		first = last
		last = ""
	}
	return first, last
}
