// Package jobinfo detects job board platforms and extracts posting details
// from page HTML.
package jobinfo

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformSmartRecruiters is the SmartRecruiters ATS platform
	PlatformSmartRecruiters Platform = "smartrecruiters"
	// PlatformWorkable is the Workable ATS platform
	PlatformWorkable Platform = "workable"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// supportedHosts lists the ATS hosts the agent activates on. A hostname is
// supported if it equals an entry or is a subdomain of one.
var supportedHosts = []string{
	"greenhouse.io", "job-boards.greenhouse.io", "boards.greenhouse.io",
	"workday.com", "myworkdayjobs.com", "smartrecruiters.com",
	"bullhornstaffing.com", "bullhorn.com", "teamtailor.com",
	"workable.com", "apply.workable.com", "icims.com",
	"oracle.com", "oraclecloud.com", "taleo.net",
}

// SupportedHost reports whether the URL points at a known ATS host.
func SupportedHost(urlStr string) bool {
	host := hostname(urlStr)
	if host == "" {
		return false
	}
	for _, h := range supportedHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// DetectPlatform identifies the job board platform from a URL. Supported
// hosts without platform-specific selectors come back as PlatformUnknown and
// fall through to the meta-tag extraction path.
func DetectPlatform(urlStr string) Platform {
	host := hostname(urlStr)

	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "workday.com"), strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	case strings.Contains(host, "smartrecruiters.com"):
		return PlatformSmartRecruiters
	case strings.Contains(host, "workable.com"):
		return PlatformWorkable
	default:
		return PlatformUnknown
	}
}

func hostname(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// platformSelectors maps each known platform to its extraction selectors,
// ordered most-specific first.
type selectorSet struct {
	title       []string
	company     []string
	location    []string
	description []string
}

var platformSelectors = map[Platform]selectorSet{
	PlatformGreenhouse: {
		title:       []string{"h1.app-title", "h1.posting-headline", "h1", `[data-test="posting-title"]`},
		company:     []string{"#company-name", ".company-name", ".posting-categories strong"},
		location:    []string{".location", ".posting-categories .location"},
		description: []string{"#content", ".posting", ".posting-description"},
	},
	PlatformWorkday: {
		title:       []string{`h1[data-automation-id="jobPostingHeader"]`, "h1"},
		company:     []string{`div[data-automation-id="jobPostingCompany"]`},
		location:    []string{`div[data-automation-id="locations"]`},
		description: []string{`div[data-automation-id="jobPostingDescription"]`},
	},
	PlatformSmartRecruiters: {
		title:       []string{`h1[data-test="job-title"]`, "h1"},
		company:     []string{`[data-test="job-company-name"]`},
		location:    []string{`[data-test="job-location"]`},
		description: []string{`[data-test="job-description"]`},
	},
	PlatformWorkable: {
		title:       []string{"h1", `[data-ui="job-title"]`},
		company:     []string{`[data-ui="company-name"]`},
		location:    []string{`[data-ui="job-location"]`},
		description: []string{`[data-ui="job-description"]`},
	},
}
