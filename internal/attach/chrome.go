package attach

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/ats-tailor/internal/types"
)

// payload is the document bundle handed to the in-page scripts
type payload struct {
	CVBase64      string `json:"cvBase64"`
	CVFileName    string `json:"cvFileName"`
	CoverBase64   string `json:"coverBase64"`
	CoverFileName string `json:"coverFileName"`
	CoverText     string `json:"coverText"`
}

// ChromePage drives attachment inside a live browser tab. All methods expect
// a chromedp tab context and evaluate scripts in the page, since file inputs
// can only be populated from inside the document via DataTransfer.
type ChromePage struct {
	docs payload
}

// NewChromePage bundles the generated documents for in-page attachment.
func NewChromePage(docs *types.GeneratedDocuments) *ChromePage {
	p := payload{
		CVFileName:    docs.CVFileName,
		CoverFileName: docs.CoverFileName,
		CoverText:     docs.CoverLetter,
	}
	if len(docs.CVPDF) > 0 {
		p.CVBase64 = base64.StdEncoding.EncodeToString(docs.CVPDF)
	}
	if len(docs.CoverPDF) > 0 {
		p.CoverBase64 = base64.StdEncoding.EncodeToString(docs.CoverPDF)
	}
	return &ChromePage{docs: p}
}

// ForceAttach populates every matching empty upload field.
func (p *ChromePage) ForceAttach(ctx context.Context) error {
	return p.evaluate(ctx, forceAttachScript)
}

// RevealHidden unhides invisible file inputs and clicks upload widgets that
// have not produced an input yet.
func (p *ChromePage) RevealHidden(ctx context.Context) error {
	return p.evaluate(ctx, revealHiddenScript)
}

// ClearStale clicks remove buttons near upload fields so stale attachments
// from an earlier visit do not block ours.
func (p *ChromePage) ClearStale(ctx context.Context) error {
	return p.evaluate(ctx, clearStaleScript)
}

// Verify reports whether every pending document is present on the page.
func (p *ChromePage) Verify(ctx context.Context) (bool, error) {
	data, err := json.Marshal(p.docs)
	if err != nil {
		return false, err
	}

	var ok bool
	script := fmt.Sprintf("(%s)(%s)", verifyScript, data)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return false, fmt.Errorf("verify evaluation failed: %w", err)
	}
	return ok, nil
}

func (p *ChromePage) evaluate(ctx context.Context, script string) error {
	data, err := json.Marshal(p.docs)
	if err != nil {
		return err
	}

	expr := fmt.Sprintf("(%s)(%s)", script, data)
	var discard any
	if err := chromedp.Run(ctx, chromedp.Evaluate(expr, &discard)); err != nil {
		return fmt.Errorf("page script failed: %w", err)
	}
	return nil
}

// The in-page scripts share the field heuristics with the fields package:
// own label/name/id/aria text plus five ancestors of up to 200 characters,
// cover mentions taking precedence over resume mentions.
const fieldHelpers = `
  const fieldText = (input) => (
    (input.labels && input.labels[0] && input.labels[0].textContent || '') +
    (input.name || '') + (input.id || '') +
    (input.getAttribute('aria-label') || '') +
    ((input.closest('label') || {}).textContent || '')
  ).toLowerCase();

  const ancestorKind = (input) => {
    let parent = input.parentElement;
    for (let i = 0; i < 5 && parent; i++) {
      const t = (parent.textContent || '').toLowerCase().substring(0, 200);
      if (t.includes('cover')) return 'cover';
      if (t.includes('resume') || t.includes('cv')) return 'resume';
      parent = parent.parentElement;
    }
    return '';
  };

  const classify = (input) => {
    const byAncestor = ancestorKind(input);
    if (byAncestor) return byAncestor;
    const own = fieldText(input);
    if (/cover/.test(own)) return 'cover';
    if (/(resume|cv|curriculum)/.test(own)) return 'resume';
    return '';
  };

  const toFile = (b64, name) => {
    const bin = atob(b64);
    const bytes = new Uint8Array(bin.length);
    for (let i = 0; i < bin.length; i++) bytes[i] = bin.charCodeAt(i);
    return new File([bytes], name, { type: 'application/pdf' });
  };

  const fireEvents = (el) => {
    ['change', 'input'].forEach((type) =>
      el.dispatchEvent(new Event(type, { bubbles: true })));
  };
`

const forceAttachScript = `(payload) => {` + fieldHelpers + `
  const attach = (input, file) => {
    if (input.files && input.files.length > 0) return;
    const dt = new DataTransfer();
    dt.items.add(file);
    input.files = dt.files;
    fireEvents(input);
  };

  const cvFile = payload.cvBase64 ? toFile(payload.cvBase64, payload.cvFileName) : null;
  const coverFile = payload.coverBase64 ? toFile(payload.coverBase64, payload.coverFileName) : null;

  document.querySelectorAll('input[type="file"]').forEach((input) => {
    const kind = classify(input);
    if (kind === 'resume' && cvFile) attach(input, cvFile);
    if (kind === 'cover' && coverFile) attach(input, coverFile);
  });

  if (payload.coverText) {
    document.querySelectorAll('textarea').forEach((ta) => {
      const label = (ta.labels && ta.labels[0] && ta.labels[0].textContent) || ta.name || ta.id || '';
      if (!/cover/i.test(label)) return;
      if ((ta.value || '').trim() === payload.coverText.trim()) return;
      ta.value = payload.coverText;
      fireEvents(ta);
    });
  }
  return true;
}`

const revealHiddenScript = `(payload) => {
  document.querySelectorAll('[data-qa-upload], [data-qa="upload"], [data-qa="attach"]').forEach((btn) => {
    const parent = btn.closest('.field') || btn.closest('[class*="upload"]') || btn.parentElement;
    const existing = parent && parent.querySelector('input[type="file"]');
    if (!existing || existing.offsetParent === null) {
      try { btn.click(); } catch (e) {}
    }
  });

  document.querySelectorAll('input[type="file"]').forEach((input) => {
    if (input.offsetParent === null) {
      input.style.cssText = 'display:block !important; visibility:visible !important; opacity:1 !important; position:relative !important;';
    }
  });
  return true;
}`

const clearStaleScript = `(payload) => {
  const nearFileInput = (el) => {
    const root = el.closest('form') || document.body;
    const containers = [
      el.closest('[data-qa-upload]'),
      el.closest('[data-qa="upload"]'),
      el.closest('[data-qa="attach"]'),
      el.closest('.field'),
      el.closest('[class*="upload" i]'),
      el.closest('[class*="attachment" i]'),
    ].filter(Boolean);
    for (const c of containers) {
      const t = (c.textContent || '').toLowerCase();
      if (t.includes('resume') || t.includes('cv') || t.includes('cover')) return true;
    }
    return !!root.querySelector('input[type="file"]');
  };

  const selectors = [
    'button[aria-label*="remove" i]',
    'button[aria-label*="delete" i]',
    'button[aria-label*="clear" i]',
    '.remove-file',
    '[data-qa-remove]',
    '[data-qa*="remove"]',
    '[data-qa*="delete"]',
    '.file-preview button',
    '.file-upload-remove',
    '.attachment-remove',
  ];
  document.querySelectorAll(selectors.join(', ')).forEach((btn) => {
    try { if (nearFileInput(btn)) btn.click(); } catch (e) {}
  });

  document.querySelectorAll('button, [role="button"]').forEach((btn) => {
    const text = (btn.textContent || '').trim();
    if (text === '×' || text === 'x' || text === 'X' || text === '✕') {
      try { if (nearFileInput(btn)) btn.click(); } catch (e) {}
    }
  });
  return true;
}`

const verifyScript = `(payload) => {` + fieldHelpers + `
  const inputs = Array.from(document.querySelectorAll('input[type="file"]'));
  const filled = (kind) => inputs.some((i) => classify(i) === kind && i.files && i.files.length > 0);

  const cvOk = !payload.cvBase64 || filled('resume');
  const coverOk = (!payload.coverBase64 && !payload.coverText) ||
    filled('cover') ||
    Array.from(document.querySelectorAll('textarea')).some((ta) => {
      const label = (ta.labels && ta.labels[0] && ta.labels[0].textContent) || ta.name || ta.id || '';
      return /cover/i.test(label) && (ta.value || '').trim().length > 0;
    });

  return cvOk && coverOk;
}`
