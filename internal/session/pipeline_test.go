package session

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-tailor/internal/backend"
	"github.com/jonathan/ats-tailor/internal/store"
	"github.com/jonathan/ats-tailor/internal/types"
)

const jobPageHTML = `<html><body>
<h1 class="app-title">Backend Engineer</h1>
<span id="company-name">Acme Inc</span>
<div id="content">We are looking for a backend engineer with Python and Kubernetes experience
to build distributed systems on AWS. You will own services end to end.</div>
</body></html>`

const jobPageURL = "https://boards.greenhouse.io/acme/jobs/123"

const userCV = `Jane Doe
jane@x.com | (555) 123-4567
PROFESSIONAL SUMMARY
Engineer building distributed systems
EXPERIENCE
Initech | Engineer | 2019
• Built the billing pipeline
SKILLS
Go, PostgreSQL
`

func newPipeline(t *testing.T, b Tailorer) (*Pipeline, store.Store) {
	t.Helper()
	s := store.NewMemory()
	require.NoError(t, s.Set(context.Background(), store.KeyUserCVText, []byte(userCV)))
	return NewPipeline(Capabilities{Store: s, Backend: b}), s
}

func TestRun_LocalTailoring(t *testing.T) {
	p, s := newPipeline(t, nil)

	outcome, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", outcome.Job.Title)
	assert.False(t, outcome.FromBackend)
	require.NotNil(t, outcome.Result)
	assert.NotEmpty(t, outcome.RunID)
	assert.Contains(t, outcome.Keywords.All, "Python")

	require.NotNil(t, outcome.Documents)
	assert.Equal(t, "Jane_Doe_ATS_CV.pdf", outcome.Documents.CVFileName)
	assert.Contains(t, outcome.Documents.CV, "JANE DOE")
	assert.Equal(t, outcome.Result.Score, outcome.Documents.MatchScore)

	// Artifacts persisted and the URL marked handled
	var docs types.GeneratedDocuments
	require.NoError(t, store.GetJSON(context.Background(), s, store.KeyLastDocuments, &docs))
	assert.Equal(t, outcome.Documents.CV, docs.CV)

	done, err := store.IsTailored(context.Background(), s, jobPageURL)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestRun_NoDescription(t *testing.T) {
	p, _ := newPipeline(t, nil)

	_, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: "<html><body><h1 class=\"app-title\">Engineer</h1></body></html>"})
	assert.ErrorIs(t, err, ErrNoJobDescription)
}

func TestRun_NoUserCV(t *testing.T) {
	p := NewPipeline(Capabilities{Store: store.NewMemory()})

	_, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	assert.ErrorIs(t, err, ErrNoUserDocument)
}

func TestRun_AutoDisabled(t *testing.T) {
	p, s := newPipeline(t, nil)
	require.NoError(t, store.SetJSON(context.Background(), s, store.KeyAutoTailor, false))

	_, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML, Auto: true})
	assert.ErrorIs(t, err, ErrAutoTailorDisabled)
}

func TestRun_AutoUsesCacheForHandledURL(t *testing.T) {
	p, _ := newPipeline(t, nil)
	ctx := context.Background()

	first, err := p.Run(ctx, PageInput{URL: jobPageURL, HTML: jobPageHTML, Auto: true})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.Run(ctx, PageInput{URL: jobPageURL, HTML: jobPageHTML, Auto: true})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	require.NotNil(t, second.Documents)
	assert.Equal(t, first.Documents.CV, second.Documents.CV)
}

func TestRun_ManualRerunsHandledURL(t *testing.T) {
	p, _ := newPipeline(t, nil)
	ctx := context.Background()

	_, err := p.Run(ctx, PageInput{URL: jobPageURL, HTML: jobPageHTML})
	require.NoError(t, err)

	again, err := p.Run(ctx, PageInput{URL: jobPageURL, HTML: jobPageHTML})
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.NotNil(t, again.Result)
}

type stubBackend struct {
	resp    *backend.TailorResponse
	err     error
	entered chan struct{}
	block   chan struct{}
	request *backend.TailorRequest
}

func (s *stubBackend) Tailor(ctx context.Context, req *backend.TailorRequest) (*backend.TailorResponse, error) {
	s.request = req
	if s.entered != nil {
		close(s.entered)
		s.entered = nil
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.resp, s.err
}

func TestRun_BackendPath(t *testing.T) {
	pdf := []byte("%PDF-1.4 tailored")
	stub := &stubBackend{resp: &backend.TailorResponse{
		TailoredResume:      "JANE DOE tailored",
		TailoredCoverLetter: "Dear team",
		ResumePDF:           base64.StdEncoding.EncodeToString(pdf),
		MatchScore:          91,
		CVFileName:          "Jane_Doe_ATS_CV.pdf",
	}}
	p, _ := newPipeline(t, stub)

	outcome, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	require.NoError(t, err)

	assert.True(t, outcome.FromBackend)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, "JANE DOE tailored", outcome.Documents.CV)
	assert.Equal(t, "Dear team", outcome.Documents.CoverLetter)
	assert.Equal(t, pdf, outcome.Documents.CVPDF)
	assert.Equal(t, 91, outcome.Documents.MatchScore)

	// The request carried the parsed profile
	require.NotNil(t, stub.request)
	assert.Equal(t, "Jane", stub.request.UserProfile.FirstName)
	assert.Equal(t, "Doe", stub.request.UserProfile.LastName)
	assert.Equal(t, "Backend Engineer", stub.request.JobTitle)
}

func TestRun_BackendErrorSurfaces(t *testing.T) {
	stub := &stubBackend{err: &backend.Error{StatusCode: 500, Body: "quota exceeded"}}
	p, s := newPipeline(t, stub)

	outcome, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	assert.Nil(t, outcome)

	var be *backend.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 500, be.StatusCode)
	assert.Equal(t, "quota exceeded", be.Body)

	// A failed run leaves no artifacts and the URL unhandled
	err = store.GetJSON(context.Background(), s, store.KeyLastDocuments, &types.GeneratedDocuments{})
	assert.ErrorIs(t, err, store.ErrNotFound)

	done, err := store.IsTailored(context.Background(), s, jobPageURL)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRun_UsesStoredStructuredResume(t *testing.T) {
	s := store.NewMemory()
	parsed := &types.StructuredResume{
		Personal: types.PersonalInfo{Name: "Jane Doe", Email: "jane@x.com"},
		Summary:  "Engineer building distributed systems",
		Skills:   []string{"Go", "PostgreSQL"},
	}
	require.NoError(t, store.SetJSON(context.Background(), s, store.KeyUserCV, parsed))
	p := NewPipeline(Capabilities{Store: s})

	outcome, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	require.NoError(t, err)

	require.NotNil(t, outcome.Documents)
	assert.Contains(t, outcome.Documents.CV, "JANE DOE")
	assert.Equal(t, "Jane_Doe_ATS_CV.pdf", outcome.Documents.CVFileName)
}

func TestRun_RejectsOverlappingRuns(t *testing.T) {
	stub := &stubBackend{
		resp:    &backend.TailorResponse{TailoredResume: "ok"},
		entered: make(chan struct{}),
		block:   make(chan struct{}),
	}
	p, _ := newPipeline(t, stub)

	entered := stub.entered
	finished := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
		finished <- err
	}()

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first run never reached the backend")
	}

	_, err := p.Run(context.Background(), PageInput{URL: jobPageURL, HTML: jobPageHTML})
	assert.ErrorIs(t, err, ErrTailoringInFlight)

	close(stub.block)
	require.NoError(t, <-finished)
}
