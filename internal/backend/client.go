// Package backend is the HTTP client for the tailoring service. The service
// owns profile data and PDF generation; this client only moves requests and
// responses and never reinterprets server failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/ats-tailor/internal/types"
)

// DefaultTimeout bounds one tailoring call end to end. Generation renders
// two PDFs server-side, so this is deliberately generous.
const DefaultTimeout = 120 * time.Second

// Error is a non-2xx response from the service. The body is surfaced
// verbatim so the caller can show the service's own message.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// TailorRequest is the generation request contract.
type TailorRequest struct {
	JobTitle     string            `json:"jobTitle"`
	Company      string            `json:"company"`
	Location     string            `json:"location"`
	Description  string            `json:"description"`
	Requirements []string          `json:"requirements"`
	UserProfile  types.UserProfile `json:"userProfile"`
}

// TailorResponse is the generation result. PDFs arrive base64-encoded.
type TailorResponse struct {
	TailoredResume      string `json:"tailoredResume"`
	TailoredCoverLetter string `json:"tailoredCoverLetter"`
	CoverLetter         string `json:"coverLetter"`
	ResumePDF           string `json:"resumePdf"`
	CoverLetterPDF      string `json:"coverLetterPdf"`
	MatchScore          int    `json:"matchScore"`
	CVFileName          string `json:"cvFileName"`
	CoverLetterFileName string `json:"coverLetterFileName"`
	Error               string `json:"error"`
}

// Client talks to the tailoring service.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for the service at baseURL. The API key
// identifies the deployment; the token authenticates the user session.
func NewClient(baseURL, apiKey, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Tailor submits a generation request. Server failures come back as *Error
// and are never retried here; the caller decides whether to fall back to
// local tailoring.
func (c *Client) Tailor(ctx context.Context, req *TailorRequest) (*TailorResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding tailor request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/functions/v1/tailor-application", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building tailor request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if c.apiKey != "" {
		httpReq.Header.Set("apikey", c.apiKey)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling tailoring service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tailor response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var result TailorResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding tailor response: %w", err)
	}
	if result.Error != "" {
		return nil, &Error{StatusCode: resp.StatusCode, Body: result.Error}
	}
	return &result, nil
}
