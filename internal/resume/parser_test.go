package resume

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@x.com | (555) 123-4567 | linkedin.com/in/janedoe
PROFESSIONAL SUMMARY
Engineer with ten years of experience
building distributed systems
EXPERIENCE
Acme Inc | Engineer | 2020-Present
• Built things
• Shipped features
that users loved
EDUCATION
State University | BS Computer Science | GPA: 3.8
SKILLS
Go, Python; Kubernetes, Go
CERTIFICATIONS
• AWS Certified Solutions Architect
`

func TestParse_Scenario(t *testing.T) {
	parsed := Parse("Jane Doe\njane@x.com\nEXPERIENCE\nAcme Inc | Engineer | 2020-Present\n• Built things")

	assert.Equal(t, "Jane Doe", parsed.Personal.Name)
	assert.Equal(t, "jane@x.com", parsed.Personal.Email)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, "Acme Inc", parsed.Experience[0].Company)
	require.Len(t, parsed.Experience[0].Bullets, 1)
	assert.Equal(t, "Built things", parsed.Experience[0].Bullets[0])
}

func TestParse_FullResume(t *testing.T) {
	parsed := Parse(sampleResume)

	assert.Equal(t, "Jane Doe", parsed.Personal.Name)
	assert.Equal(t, "jane@x.com", parsed.Personal.Email)
	assert.Equal(t, "(555) 123-4567", parsed.Personal.Phone)
	assert.Equal(t, "linkedin.com/in/janedoe", parsed.Personal.LinkedIn)

	assert.Equal(t, "Engineer with ten years of experience building distributed systems", parsed.Summary)

	require.Len(t, parsed.Experience, 1)
	entry := parsed.Experience[0]
	assert.Equal(t, "Acme Inc", entry.Company)
	assert.Equal(t, "Engineer", entry.Title)
	require.Len(t, entry.Bullets, 2)
	assert.Equal(t, "Built things", entry.Bullets[0])
	// Non-bullet line continues the previous bullet
	assert.Equal(t, "Shipped features that users loved", entry.Bullets[1])

	require.Len(t, parsed.Education, 1)
	assert.Equal(t, "State University", parsed.Education[0].Institution)
	assert.Equal(t, "3.8", parsed.Education[0].GPA)

	// Skills split on comma/semicolon and deduplicated first-seen
	assert.Equal(t, []string{"Go", "Python", "Kubernetes"}, parsed.Skills)

	require.Len(t, parsed.Certifications, 1)
	assert.Equal(t, "AWS Certified Solutions Architect", parsed.Certifications[0])
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(sampleResume)
	second := Parse(sampleResume)
	assert.Equal(t, first, second)
}

func TestParse_EmptyInput(t *testing.T) {
	parsed := Parse("")
	require.NotNil(t, parsed)
	assert.Empty(t, parsed.Personal.Name)
	assert.Empty(t, parsed.Experience)
	assert.Empty(t, parsed.Skills)
}

func TestParse_HeaderFirstLineIsNotName(t *testing.T) {
	parsed := Parse("EXPERIENCE\nAcme | Dev | 2021")
	assert.Empty(t, parsed.Personal.Name)
	require.Len(t, parsed.Experience, 1)
}

func TestParse_SectionSynonyms(t *testing.T) {
	parsed := Parse("Jane Doe\nProfile\nSeasoned engineer\nEmployment\nAcme | Dev | 2021\n• Did work")

	assert.Equal(t, "Seasoned engineer", parsed.Summary)
	require.Len(t, parsed.Experience, 1)
	assert.Equal(t, []string{"Did work"}, parsed.Experience[0].Bullets)
}

func TestParse_ContinuationWithNoOpenBulletIsDropped(t *testing.T) {
	parsed := Parse("Jane Doe\nEXPERIENCE\nAcme Inc | Engineer | 2020\nworked on many projects")

	require.Len(t, parsed.Experience, 1)
	assert.Empty(t, parsed.Experience[0].Bullets)
}

func TestParse_FirstContactMatchWins(t *testing.T) {
	parsed := Parse("Jane Doe\njane@x.com\nother@y.com")
	assert.Equal(t, "jane@x.com", parsed.Personal.Email)
}

func TestParse_NeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"\n\n\n",
		strings.Repeat("|", 500),
		"• • • •\n—\n;;;,,,",
		"GPA: 3.9",
	}
	for _, input := range inputs {
		parsed := Parse(input)
		require.NotNil(t, parsed)
	}
}

func TestReadFileText_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleResume), 0644))

	text, err := ReadFileText(path)
	require.NoError(t, err)
	assert.Equal(t, sampleResume, text)
}

func TestReadFileText_UnsupportedExtension(t *testing.T) {
	_, err := ReadFileText("resume.docx")
	require.Error(t, err)

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Contains(t, fileErr.Message, "unsupported")
}
