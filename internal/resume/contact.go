package resume

import (
	"regexp"

	"github.com/jonathan/ats-tailor/internal/types"
)

// contactScanLines is how many leading lines are scanned for contact details
const contactScanLines = 5

var (
	emailPattern    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern    = regexp.MustCompile(`[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
)

// scanContact extracts email, phone, LinkedIn and GitHub from the first few
// lines of the resume. The first match per field wins; later lines never
// overwrite an already-found value.
func scanContact(lines []string, personal *types.PersonalInfo) {
	limit := contactScanLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := lines[i]
		if personal.Email == "" {
			personal.Email = emailPattern.FindString(line)
		}
		if personal.Phone == "" {
			personal.Phone = phonePattern.FindString(line)
		}
		if personal.LinkedIn == "" {
			personal.LinkedIn = linkedinPattern.FindString(line)
		}
		if personal.GitHub == "" {
			personal.GitHub = githubPattern.FindString(line)
		}
	}
}
