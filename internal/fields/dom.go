package fields

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxShortLabelLen bounds label text treated as an upload hint when the page
// has no file inputs at all.
const maxShortLabelLen = 50

// Field is one located upload target with its classification.
type Field struct {
	Kind     Kind
	Selector string
	Context  FieldContext
}

// LocateFields finds every upload candidate in the page and classifies it.
// File inputs and textareas are both considered; textareas cover the paste-in
// cover letter boxes some ATS forms use instead of an upload.
func LocateFields(pageHTML string) ([]Field, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	var located []Field
	doc.Find(`input[type="file"], textarea`).Each(func(i int, sel *goquery.Selection) {
		fc := buildContext(doc, sel)
		located = append(located, Field{
			Kind:     Classify(fc),
			Selector: elementSelector(sel),
			Context:  fc,
		})
	})
	return located, nil
}

// HasUploadFields reports whether the page looks like an application form
// worth attaching to. Checked in order: file inputs, upload widget markers,
// an autofill banner, and short resume-flavored labels.
func HasUploadFields(pageHTML string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return false
	}

	if doc.Find(`input[type="file"]`).Length() > 0 {
		return true
	}
	if doc.Find(`[data-qa-upload], [data-qa="upload"], [data-qa="attach"]`).Length() > 0 {
		return true
	}
	if strings.Contains(doc.Find("body").Text(), "Autofill application") {
		return true
	}

	found := false
	doc.Find("label, h3, h4, span").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if (strings.Contains(text, "resume") || strings.Contains(text, "cv")) && len(text) < maxShortLabelLen {
			found = true
			return false
		}
		return true
	})
	return found
}

// buildContext collects the classification signals for one element
func buildContext(doc *goquery.Document, sel *goquery.Selection) FieldContext {
	fc := FieldContext{
		Name:      sel.AttrOr("name", ""),
		ID:        sel.AttrOr("id", ""),
		AriaLabel: sel.AttrOr("aria-label", ""),
	}

	// Explicit label via for=, or an enclosing label element
	if id := fc.ID; id != "" {
		fc.Label = strings.TrimSpace(doc.Find(`label[for="` + id + `"]`).First().Text())
	}
	if fc.Label == "" {
		fc.Label = strings.TrimSpace(sel.Closest("label").Text())
	}

	parent := sel.Parent()
	for depth := 0; depth < maxAncestorDepth && parent.Length() > 0; depth++ {
		fc.AncestorTexts = append(fc.AncestorTexts, parent.Text())
		parent = parent.Parent()
	}
	return fc
}

// elementSelector derives a stable selector for re-finding the element in a
// live page, preferring id, then name, then the bare tag.
func elementSelector(sel *goquery.Selection) string {
	tag := goquery.NodeName(sel)
	if id := sel.AttrOr("id", ""); id != "" {
		return tag + `[id="` + id + `"]`
	}
	if name := sel.AttrOr("name", ""); name != "" {
		return tag + `[name="` + name + `"]`
	}
	return tag
}
