package rendering

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/ats-tailor/internal/types"
)

// Renderer converts canonical plain text into PDF bytes. Implementations
// may need a headless browser, so rendering takes a context.
type Renderer interface {
	Render(ctx context.Context, text string) ([]byte, error)
}

// RenderError represents a PDF rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rendering: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rendering: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// RenderDocument serializes the resume to its canonical text and, when a
// renderer is available, to PDF bytes. A rendering failure degrades to a
// text-only attachment rather than aborting the session.
func RenderDocument(ctx context.Context, r Renderer, resume *types.StructuredResume, kind types.DocumentKind) types.Attachment {
	text := RenderText(resume)
	att := types.Attachment{
		Kind:     kind,
		FileName: DeriveFileName(resume, kind),
		Text:     text,
	}

	if r == nil {
		return att
	}

	pdf, err := r.Render(ctx, text)
	if err != nil {
		log.Printf("[RENDER] PDF rendering failed, keeping text-only attachment: %v", err)
		return att
	}
	att.PDF = pdf
	return att
}
