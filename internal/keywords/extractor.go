// Package keywords extracts and classifies ATS keywords from job description text.
package keywords

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/ats-tailor/internal/types"
)

// MaxKeywords caps the combined keyword set, in discovery order.
const MaxKeywords = 50

// Tier cut points. High and medium counts round up; low takes the remainder.
const (
	highShare   = 0.4
	mediumShare = 0.35
)

// vocabularyPatterns is the fixed battery of domain-vocabulary classes run
// against the description. Matches keep their first-seen casing.
var vocabularyPatterns = []*regexp.Regexp{
	// Programming languages
	regexp.MustCompile(`(?i)\b(Python|JavaScript|TypeScript|Java|C\+\+|C#|Ruby|Go|Rust|Swift|Kotlin|PHP|Scala|R)\b`),
	// Frameworks
	regexp.MustCompile(`(?i)\b(React|Angular|Vue|Next\.js|Node\.js|Express|Django|Flask|Spring|Rails|Laravel|\.NET)\b`),
	// Databases
	regexp.MustCompile(`(?i)\b(SQL|PostgreSQL|MySQL|MongoDB|Redis|Elasticsearch|DynamoDB|Cassandra|Oracle|SQLite)\b`),
	// Cloud
	regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Google Cloud|S3|EC2|Lambda|Kubernetes|Docker|Terraform|CloudFormation)\b`),
	// Tools
	regexp.MustCompile(`(?i)\b(Git|GitHub|GitLab|Jenkins|CircleCI|Travis|Jira|Confluence|Slack|VS Code)\b`),
	// Process and concepts
	regexp.MustCompile(`(?i)\b(API|REST|GraphQL|Microservices|CI/CD|DevOps|Agile|Scrum|TDD|BDD|OOP)\b`),
	// Data and ML
	regexp.MustCompile(`(?i)\b(Machine Learning|ML|AI|Data Science|Analytics|ETL|Spark|Hadoop|Tableau|Power BI)\b`),
}

// bulletPhrasePattern extracts capitalized one- or two-word phrases from
// bullet-point requirement lines as supplementary keyword candidates.
var bulletPhrasePattern = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9\-\.]+(?:\s+[A-Z][a-zA-Z0-9\-\.]+)?\b`)

// bulletGlyphs mark requirement lines in job descriptions
var bulletGlyphs = []string{"•", "-", "*"}

// Extract turns free-text job description into a classified, deduplicated,
// ranked keyword list. Comparison is case-insensitive and the first-seen
// form wins on duplicates. Empty input yields an empty set, not an error.
// The function is pure: identical input always produces identical output.
func Extract(description string) *types.KeywordSet {
	set := types.NewKeywordSet()
	if description == "" {
		return set
	}

	seen := make(map[string]bool)
	all := make([]string, 0, MaxKeywords)

	add := func(keyword string) {
		key := strings.ToLower(keyword)
		if seen[key] {
			return
		}
		seen[key] = true
		all = append(all, keyword)
	}

	for _, pattern := range vocabularyPatterns {
		for _, match := range pattern.FindAllString(description, -1) {
			add(match)
		}
	}

	// Supplementary scan of bullet-point requirement lines
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if !isBulletLine(trimmed) {
			continue
		}
		requirement := strings.TrimSpace(trimmed[len(bulletGlyph(trimmed)):])
		for _, phrase := range bulletPhrasePattern.FindAllString(requirement, -1) {
			if len(phrase) >= 2 && len(phrase) <= 30 {
				add(phrase)
			}
		}
	}

	if len(all) > MaxKeywords {
		all = all[:MaxKeywords]
	}

	return Classify(all)
}

// Classify partitions a ranked keyword list into high/medium/low tiers at
// proportional cut points. The partitions are contiguous, disjoint, and
// together reproduce the input.
func Classify(all []string) *types.KeywordSet {
	set := types.NewKeywordSet()
	set.All = append(set.All, all...)

	highCount := int(math.Ceil(float64(len(all)) * highShare))
	mediumCount := int(math.Ceil(float64(len(all)) * mediumShare))

	mediumEnd := highCount + mediumCount
	if mediumEnd > len(all) {
		mediumEnd = len(all)
	}

	set.High = append(set.High, all[:highCount]...)
	set.Medium = append(set.Medium, all[highCount:mediumEnd]...)
	set.Low = append(set.Low, all[mediumEnd:]...)
	return set
}

// isBulletLine reports whether a trimmed line starts with a bullet glyph
func isBulletLine(line string) bool {
	return bulletGlyph(line) != ""
}

// bulletGlyph returns the leading bullet glyph of a line, or ""
func bulletGlyph(line string) string {
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, glyph) {
			return glyph
		}
	}
	return ""
}
