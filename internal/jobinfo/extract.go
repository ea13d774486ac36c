package jobinfo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/ats-tailor/internal/types"
)

// Description heuristics: anything shorter than minDescriptionLength is
// navigation chrome rather than a job description, and everything past
// maxDescriptionLength is truncated before keyword extraction.
const (
	minDescriptionLength = 80
	maxDescriptionLength = 3000
)

// Extract pulls the job posting details out of page HTML. Platform-specific
// selectors are tried first; title and company fall back to meta tags and the
// document title. Extraction is best-effort and never fails, but the result
// may carry empty fields.
func Extract(urlStr, pageHTML string) *types.JobInfo {
	info := &types.JobInfo{URL: urlStr, Platform: string(DetectPlatform(urlStr))}
	if info.Platform == string(PlatformUnknown) {
		if host := hostname(urlStr); host != "" {
			info.Platform = host
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return info
	}

	selectors, hasSelectors := platformSelectors[DetectPlatform(urlStr)]
	if hasSelectors {
		info.Title = firstText(doc, selectors.title)
		info.Company = firstText(doc, selectors.company)
		info.Location = firstText(doc, selectors.location)
		if raw := firstText(doc, selectors.description); len(raw) > minDescriptionLength {
			info.Description = truncate(raw, maxDescriptionLength)
		}
	}

	if info.Title == "" {
		info.Title = metaContent(doc, "og:title")
	}
	if info.Title == "" {
		info.Title = splitTitle(doc.Find("title").First().Text())
	}

	if info.Company == "" {
		info.Company = metaContent(doc, "og:site_name")
	}
	if info.Company == "" {
		if docTitle := doc.Find("title").First().Text(); strings.Contains(docTitle, " at ") {
			parts := strings.Split(docTitle, " at ")
			info.Company = splitTitle(parts[len(parts)-1])
		}
	}

	return info
}

// firstText returns the trimmed text of the first selector that matches a
// non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// metaContent reads a meta tag by name or property attribute
func metaContent(doc *goquery.Document, name string) string {
	sel := `meta[name="` + name + `"], meta[property="` + name + `"]`
	content, _ := doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// splitTitle strips the site-name tail from a document title, cutting at the
// first pipe and then the first dash.
func splitTitle(title string) string {
	title = strings.Split(title, "|")[0]
	title = strings.Split(title, "-")[0]
	return strings.TrimSpace(title)
}

// truncate cuts at a rune boundary so multibyte text stays valid
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
