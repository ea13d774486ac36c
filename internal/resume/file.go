package resume

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/ats-tailor/internal/types"
)

// FileError represents a failure to load a resume file. Parsing itself
// never fails, but reading and text extraction can.
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume file %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("resume file %s: %s", e.Path, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// ParseFile loads a resume from disk and parses it. Plain-text files are
// read directly; PDF files go through text extraction first.
func ParseFile(path string) (*types.StructuredResume, error) {
	text, err := ReadFileText(path)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}

// ReadFileText returns the plain text content of a resume file.
// Supported extensions: .txt, .md, .text, .pdf.
func ReadFileText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &FileError{Path: path, Message: "failed to read file", Cause: err}
		}
		return string(content), nil
	case ".pdf":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &FileError{Path: path, Message: "failed to read file", Cause: err}
		}
		text, err := extractPDFText(content)
		if err != nil {
			return "", &FileError{Path: path, Message: "failed to extract PDF text", Cause: err}
		}
		return text, nil
	default:
		return "", &FileError{Path: path, Message: "unsupported file type (use .txt, .md or .pdf)"}
	}
}

// extractPDFText pulls plain text out of PDF bytes, page by page
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", err
	}
	return sb.String(), nil
}
