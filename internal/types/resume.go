// Package types provides type definitions for structured data used throughout the ats-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact block parsed from the top of a resume
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// ExperienceEntry represents a single role with its bullet points.
// Entries are owned exclusively by the StructuredResume they belong to.
type ExperienceEntry struct {
	Company  string   `json:"company"`
	Title    string   `json:"title"`
	Dates    string   `json:"dates"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

// EducationEntry represents a single education record
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates"`
	GPA         string `json:"gpa"`
}

// StructuredResume is the canonical parsed form of a candidate resume.
// Skills have set semantics for membership but preserve first-seen order for display.
type StructuredResume struct {
	Personal       PersonalInfo      `json:"personal"`
	Summary        string            `json:"summary"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications"`
}

// NewStructuredResume returns an empty resume with non-nil collections,
// so an unparseable input still yields a usable structure.
func NewStructuredResume() *StructuredResume {
	return &StructuredResume{
		Experience:     []ExperienceEntry{},
		Education:      []EducationEntry{},
		Skills:         []string{},
		Certifications: []string{},
	}
}

// Clone returns a deep copy of the resume. Tailoring operates on the copy
// and must never mutate the caller's structure.
func (r *StructuredResume) Clone() *StructuredResume {
	if r == nil {
		return nil
	}
	out := &StructuredResume{
		Personal:       r.Personal,
		Summary:        r.Summary,
		Experience:     make([]ExperienceEntry, len(r.Experience)),
		Education:      make([]EducationEntry, len(r.Education)),
		Skills:         append([]string{}, r.Skills...),
		Certifications: append([]string{}, r.Certifications...),
	}
	for i, entry := range r.Experience {
		copied := entry
		copied.Bullets = append([]string{}, entry.Bullets...)
		out.Experience[i] = copied
	}
	copy(out.Education, r.Education)
	return out
}

// IsEmpty reports whether the resume carries no parsed content at all
func (r *StructuredResume) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Personal == (PersonalInfo{}) &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Certifications) == 0
}
