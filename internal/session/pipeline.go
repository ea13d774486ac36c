package session

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-tailor/internal/backend"
	"github.com/jonathan/ats-tailor/internal/jobinfo"
	"github.com/jonathan/ats-tailor/internal/keywords"
	"github.com/jonathan/ats-tailor/internal/rendering"
	"github.com/jonathan/ats-tailor/internal/resume"
	"github.com/jonathan/ats-tailor/internal/store"
	"github.com/jonathan/ats-tailor/internal/tailoring"
	"github.com/jonathan/ats-tailor/internal/types"
)

// Tailorer is the remote generation capability. *backend.Client satisfies it.
type Tailorer interface {
	Tailor(ctx context.Context, req *backend.TailorRequest) (*backend.TailorResponse, error)
}

// Capabilities are the pipeline's collaborators. Store is required. Without
// a Backend the pipeline tailors locally; without a Renderer documents stay
// text-only.
type Capabilities struct {
	Store    store.Store
	Backend  Tailorer
	Renderer rendering.Renderer
}

// PageInput describes the page a run operates on.
type PageInput struct {
	URL  string
	HTML string
	// Auto marks runs triggered by page detection rather than the user;
	// they respect the auto-tailor switch and the per-URL cache.
	Auto bool
}

// Outcome is the result of one completed run.
type Outcome struct {
	RunID       string                    `json:"runId"`
	Job         *types.JobInfo            `json:"job"`
	Keywords    *types.KeywordSet         `json:"keywords,omitempty"`
	Result      *types.TailorResult       `json:"result,omitempty"`
	Documents   *types.GeneratedDocuments `json:"documents"`
	FromBackend bool                      `json:"fromBackend"`
	Cached      bool                      `json:"cached"`
}

// Pipeline runs tailoring sessions one at a time.
type Pipeline struct {
	caps     Capabilities
	inFlight atomic.Bool
}

// NewPipeline builds a pipeline over the capabilities.
func NewPipeline(caps Capabilities) *Pipeline {
	return &Pipeline{caps: caps}
}

// Run executes one session against the page. Concurrent calls beyond the
// first fail fast with ErrTailoringInFlight.
func (p *Pipeline) Run(ctx context.Context, input PageInput) (*Outcome, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTailoringInFlight
	}
	defer p.inFlight.Store(false)

	runID := uuid.NewString()

	if input.Auto {
		if enabled, err := p.autoTailorEnabled(ctx); err != nil {
			return nil, err
		} else if !enabled {
			return nil, ErrAutoTailorDisabled
		}
	}

	job := jobinfo.Extract(input.URL, input.HTML)
	if !job.HasDescription() {
		return nil, ErrNoJobDescription
	}

	// Auto runs skip URLs that already produced documents
	if input.Auto {
		if done, err := store.IsTailored(ctx, p.caps.Store, input.URL); err != nil {
			return nil, err
		} else if done {
			return p.cachedOutcome(ctx, runID, job)
		}
	}

	rawCV, parsed, err := p.loadUserResume(ctx)
	if err != nil {
		return nil, err
	}

	// Keyword extraction and resume parsing are independent
	var kw *types.KeywordSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kw = keywords.Extract(job.Description)
		return gctx.Err()
	})
	if rawCV != "" {
		g.Go(func() error {
			parsed = resume.Parse(rawCV)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outcome := &Outcome{RunID: runID, Job: job, Keywords: kw}

	if p.caps.Backend != nil {
		// Backend errors go back to the caller verbatim, never retried
		docs, err := p.tailorRemote(ctx, job, parsed)
		if err != nil {
			return nil, err
		}
		outcome.Documents = docs
		outcome.FromBackend = true
	} else {
		result := tailoring.Tailor(parsed, kw)
		att := rendering.RenderDocument(ctx, p.caps.Renderer, result.Tailored, types.DocumentCV)

		outcome.Result = result
		outcome.Documents = &types.GeneratedDocuments{
			CV:         att.Text,
			CVPDF:      att.PDF,
			CVFileName: att.FileName,
			MatchScore: result.Score,
		}
	}

	if err := p.persist(ctx, input.URL, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// autoTailorEnabled defaults to on when the switch was never set
func (p *Pipeline) autoTailorEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	err := store.GetJSON(ctx, p.caps.Store, store.KeyAutoTailor, &enabled)
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return enabled, nil
}

// loadUserResume prefers the stored raw CV text, which the caller re-parses
// for freshness, and falls back to the stored structured form when no raw
// text exists.
func (p *Pipeline) loadUserResume(ctx context.Context) (string, *types.StructuredResume, error) {
	data, err := p.caps.Store.Get(ctx, store.KeyUserCVText)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", nil, err
	}
	if err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, nil, nil
		}
	}

	var parsed types.StructuredResume
	err = store.GetJSON(ctx, p.caps.Store, store.KeyUserCV, &parsed)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrNoUserDocument
	}
	if err != nil {
		return "", nil, err
	}
	return "", &parsed, nil
}

// cachedOutcome replays the last generated documents for an already-handled
// URL so attachment can proceed without regenerating anything.
func (p *Pipeline) cachedOutcome(ctx context.Context, runID string, job *types.JobInfo) (*Outcome, error) {
	outcome := &Outcome{RunID: runID, Job: job, Cached: true}

	var docs types.GeneratedDocuments
	err := store.GetJSON(ctx, p.caps.Store, store.KeyLastDocuments, &docs)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if err == nil {
		outcome.Documents = &docs
	}

	var kw types.KeywordSet
	if err := store.GetJSON(ctx, p.caps.Store, store.KeyKeywords, &kw); err == nil {
		outcome.Keywords = &kw
	}
	return outcome, nil
}

// tailorRemote asks the backend for generated documents
func (p *Pipeline) tailorRemote(ctx context.Context, job *types.JobInfo, parsed *types.StructuredResume) (*types.GeneratedDocuments, error) {
	resp, err := p.caps.Backend.Tailor(ctx, &backend.TailorRequest{
		JobTitle:     job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Description:  job.Description,
		Requirements: []string{},
		UserProfile:  profileFromResume(parsed),
	})
	if err != nil {
		return nil, err
	}

	docs := &types.GeneratedDocuments{
		CV:          resp.TailoredResume,
		CoverLetter: firstNonEmpty(resp.TailoredCoverLetter, resp.CoverLetter),
		CVFileName:  resp.CVFileName,
		CoverFileName: firstNonEmpty(resp.CoverLetterFileName,
			rendering.DeriveFileName(parsed, types.DocumentCover)),
		MatchScore: resp.MatchScore,
	}
	if docs.CVFileName == "" {
		docs.CVFileName = rendering.DeriveFileName(parsed, types.DocumentCV)
	}

	if resp.ResumePDF != "" {
		pdf, err := base64.StdEncoding.DecodeString(resp.ResumePDF)
		if err != nil {
			return nil, err
		}
		docs.CVPDF = pdf
	}
	if resp.CoverLetterPDF != "" {
		pdf, err := base64.StdEncoding.DecodeString(resp.CoverLetterPDF)
		if err != nil {
			return nil, err
		}
		docs.CoverPDF = pdf
	}
	return docs, nil
}

// persist stores the artifacts and marks the URL handled
func (p *Pipeline) persist(ctx context.Context, url string, outcome *Outcome) error {
	if err := store.SetJSON(ctx, p.caps.Store, store.KeyLastDocuments, outcome.Documents); err != nil {
		return err
	}
	if outcome.Keywords != nil {
		if err := store.SetJSON(ctx, p.caps.Store, store.KeyKeywords, outcome.Keywords); err != nil {
			return err
		}
	}
	return store.MarkTailored(ctx, p.caps.Store, url)
}

// profileFromResume maps the parsed resume onto the backend profile
// contract, which carries experience and education as display strings.
func profileFromResume(r *types.StructuredResume) types.UserProfile {
	first, last := splitFullName(r.Personal.Name)

	experience := make([]string, 0, len(r.Experience))
	for _, job := range r.Experience {
		entry := strings.Join([]string{job.Company, job.Title, job.Dates}, " | ")
		if len(job.Bullets) > 0 {
			entry += ": " + strings.Join(job.Bullets, "; ")
		}
		experience = append(experience, entry)
	}

	education := make([]string, 0, len(r.Education))
	for _, edu := range r.Education {
		education = append(education, strings.Join([]string{edu.Institution, edu.Degree, edu.Dates}, " | "))
	}

	return types.UserProfile{
		FirstName:      first,
		LastName:       last,
		Email:          r.Personal.Email,
		Phone:          r.Personal.Phone,
		LinkedIn:       r.Personal.LinkedIn,
		GitHub:         r.Personal.GitHub,
		WorkExperience: experience,
		Education:      education,
		Skills:         r.Skills,
		Certifications: r.Certifications,
	}
}

func splitFullName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
