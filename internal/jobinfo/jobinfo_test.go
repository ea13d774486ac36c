package jobinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const greenhouseHTML = `<html><head><title>Backend Engineer | Acme</title></head><body>
<h1 class="app-title">Backend Engineer</h1>
<span id="company-name">Acme Inc</span>
<div class="location">Remote, US</div>
<div id="content">We are looking for a backend engineer with Go and PostgreSQL experience
to build distributed systems. You will own services end to end and work with Kubernetes.</div>
</body></html>`

const workdayHTML = `<html><body>
<h1 data-automation-id="jobPostingHeader">Staff Engineer</h1>
<div data-automation-id="jobPostingCompany">Globex</div>
<div data-automation-id="locations">Berlin</div>
<div data-automation-id="jobPostingDescription">Design and operate large scale data pipelines
using Python, Kafka and AWS. Mentor engineers and drive architecture decisions across teams.</div>
</body></html>`

func TestSupportedHost(t *testing.T) {
	cases := []struct {
		url       string
		supported bool
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", true},
		{"https://acme.greenhouse.io/jobs/123", true},
		{"https://acme.wd5.myworkdayjobs.com/careers", true},
		{"https://jobs.smartrecruiters.com/Acme/123", true},
		{"https://apply.workable.com/acme/j/ABC", true},
		{"https://careers.icims.com/jobs", true},
		{"https://example.com/jobs", false},
		{"https://notgreenhouse.io.evil.com/", false},
		{"not a url at all ://", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.supported, SupportedHost(tc.url), tc.url)
	}
}

func TestDetectPlatform(t *testing.T) {
	assert.Equal(t, PlatformGreenhouse, DetectPlatform("https://boards.greenhouse.io/acme/jobs/123"))
	assert.Equal(t, PlatformWorkday, DetectPlatform("https://acme.wd5.myworkdayjobs.com/careers"))
	assert.Equal(t, PlatformSmartRecruiters, DetectPlatform("https://jobs.smartrecruiters.com/Acme/123"))
	assert.Equal(t, PlatformWorkable, DetectPlatform("https://apply.workable.com/acme/j/ABC"))
	assert.Equal(t, PlatformUnknown, DetectPlatform("https://careers.teamtailor.com/jobs/1"))
}

func TestExtract_Greenhouse(t *testing.T) {
	info := Extract("https://boards.greenhouse.io/acme/jobs/123", greenhouseHTML)

	assert.Equal(t, "Backend Engineer", info.Title)
	assert.Equal(t, "Acme Inc", info.Company)
	assert.Equal(t, "Remote, US", info.Location)
	assert.Contains(t, info.Description, "backend engineer")
	assert.Equal(t, "greenhouse", info.Platform)
	assert.True(t, info.HasDescription())
}

func TestExtract_Workday(t *testing.T) {
	info := Extract("https://acme.wd5.myworkdayjobs.com/careers/job/123", workdayHTML)

	assert.Equal(t, "Staff Engineer", info.Title)
	assert.Equal(t, "Globex", info.Company)
	assert.Equal(t, "Berlin", info.Location)
	assert.Contains(t, info.Description, "Kafka")
}

func TestExtract_ShortDescriptionDiscarded(t *testing.T) {
	html := `<html><body><h1 class="app-title">Engineer</h1><div id="content">Apply now</div></body></html>`
	info := Extract("https://boards.greenhouse.io/acme/jobs/1", html)

	assert.Equal(t, "Engineer", info.Title)
	assert.Empty(t, info.Description)
	assert.False(t, info.HasDescription())
}

func TestExtract_DescriptionCapped(t *testing.T) {
	long := strings.Repeat("requirements and responsibilities ", 200)
	html := `<html><body><div id="content">` + long + `</div></body></html>`
	info := Extract("https://boards.greenhouse.io/acme/jobs/1", html)

	assert.Len(t, info.Description, 3000)
}

func TestExtract_MetaFallbacks(t *testing.T) {
	html := `<html><head>
<title>Platform Engineer at Initech | Careers</title>
<meta property="og:title" content="Platform Engineer">
</head><body></body></html>`
	info := Extract("https://jobs.teamtailor.com/initech/1", html)

	assert.Equal(t, "Platform Engineer", info.Title)
	assert.Equal(t, "Initech", info.Company)
	// No platform selectors for this host, the hostname stands in
	assert.Equal(t, "jobs.teamtailor.com", info.Platform)
}

func TestExtract_TitleTagFallback(t *testing.T) {
	html := `<html><head><title>Data Engineer - Hooli Careers</title></head><body></body></html>`
	info := Extract("https://example.org/jobs/1", html)

	assert.Equal(t, "Data Engineer", info.Title)
	assert.Empty(t, info.Company)
}

func TestExtract_EmptyHTML(t *testing.T) {
	info := Extract("https://boards.greenhouse.io/acme/jobs/1", "")

	assert.Empty(t, info.Title)
	assert.Empty(t, info.Description)
	assert.Equal(t, "greenhouse", info.Platform)
}
