package types

// DocumentKind distinguishes the two attachable document types
type DocumentKind string

const (
	// DocumentCV is a tailored CV document
	DocumentCV DocumentKind = "cv"
	// DocumentCover is a tailored cover letter document
	DocumentCover DocumentKind = "cover"
)

// GeneratedDocuments is the per-job cache of tailored output, persisted so a
// revisit does not re-run the pipeline. PDF bytes serialize as base64.
type GeneratedDocuments struct {
	CV            string `json:"cv"`
	CoverLetter   string `json:"coverLetter"`
	CVPDF         []byte `json:"cvPdf,omitempty"`
	CoverPDF      []byte `json:"coverPdf,omitempty"`
	CVFileName    string `json:"cvFileName"`
	CoverFileName string `json:"coverFileName"`
	MatchScore    int    `json:"matchScore"`
}

// Attachment is a document ready to be placed into a page upload field.
// PDF holds raw bytes when a PDF was rendered; Text is always present and
// serves both the plain-text fallback and textarea cover-letter fields.
type Attachment struct {
	Kind     DocumentKind `json:"kind"`
	FileName string       `json:"fileName"`
	PDF      []byte       `json:"pdf,omitempty"`
	Text     string       `json:"text,omitempty"`
}

// HasContent reports whether the attachment carries anything to attach
func (a *Attachment) HasContent() bool {
	return a != nil && (len(a.PDF) > 0 || a.Text != "")
}

// Preferences holds user-level toggles persisted across sessions
type Preferences struct {
	AutoTailor bool   `json:"autoTailor"`
	Theme      string `json:"theme"`
	Template   string `json:"template"`
}

// DefaultPreferences mirrors the defaults a fresh install starts with
func DefaultPreferences() Preferences {
	return Preferences{
		AutoTailor: true,
		Theme:      "light",
		Template:   "professional",
	}
}
