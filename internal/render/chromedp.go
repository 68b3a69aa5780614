package render

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// DefaultPrintTimeout bounds one headless print, browser startup included.
const DefaultPrintTimeout = 60 * time.Second

// A4 in inches, 210mm x 297mm.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// PDFRenderer prints themed HTML through headless Chrome.
type PDFRenderer struct {
	themes   ThemeStore
	execPath string
	timeout  time.Duration
}

// NewPDFRenderer creates a renderer. execPath optionally points at a Chrome
// binary; when empty chromedp locates one itself.
func NewPDFRenderer(themes ThemeStore, execPath string) *PDFRenderer {
	return &PDFRenderer{themes: themes, execPath: execPath, timeout: DefaultPrintTimeout}
}

func (r *PDFRenderer) Render(ctx context.Context, doc *cvdata.Document, themeID string) ([]byte, error) {
	if themeID == "" {
		themeID = DefaultThemeID
	}
	theme, err := r.themes.Load(themeID)
	if err != nil {
		return nil, err
	}

	html, err := BuildHTML(doc, theme)
	if err != nil {
		return nil, err
	}

	pdf, err := r.print(ctx, html)
	if err != nil {
		return nil, &RenderError{Message: "headless print failed", Cause: err}
	}
	return pdf, nil
}

func (r *PDFRenderer) RenderLetter(ctx context.Context, doc *cvdata.Document, letter *Letter, themeID string) ([]byte, error) {
	if themeID == "" {
		themeID = DefaultThemeID
	}
	theme, err := r.themes.Load(themeID)
	if err != nil {
		return nil, err
	}

	html, err := BuildLetterHTML(doc, letter, theme)
	if err != nil {
		return nil, err
	}

	pdf, err := r.print(ctx, html)
	if err != nil {
		return nil, &RenderError{Message: "headless print failed", Cause: err}
	}
	return pdf, nil
}

func (r *PDFRenderer) print(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	printCtx, cancelPrint := context.WithTimeout(browserCtx, r.timeout)
	defer cancelPrint()

	// The page is fully self-contained, so a file:// navigation needs no
	// assets beyond the one temp file.
	tmpDir, err := os.MkdirTemp("", "cv-wizard-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdf []byte
	err = chromedp.Run(printCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
