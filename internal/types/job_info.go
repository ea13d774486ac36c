package types

// JobInfo holds the job posting details extracted from an ATS page
type JobInfo struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Platform    string `json:"platform"`
}

// HasDescription reports whether a usable job description was found
func (j *JobInfo) HasDescription() bool {
	return j != nil && j.Description != ""
}

// UserProfile is the candidate profile sent to the tailoring backend.
// Field names mirror the backend contract.
type UserProfile struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	LinkedIn       string   `json:"linkedin"`
	GitHub         string   `json:"github"`
	Portfolio      string   `json:"portfolio"`
	CoverLetter    string   `json:"coverLetter"`
	WorkExperience []string `json:"workExperience"`
	Education      []string `json:"education"`
	Skills         []string `json:"skills"`
	Certifications []string `json:"certifications"`
	Achievements   []string `json:"achievements"`
	ATSStrategy    string   `json:"atsStrategy"`
	City           string   `json:"city,omitempty"`
	Country        string   `json:"country,omitempty"`
	Address        string   `json:"address,omitempty"`
	State          string   `json:"state,omitempty"`
	ZipCode        string   `json:"zipCode,omitempty"`
}
