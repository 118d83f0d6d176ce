package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// subprocess strategies get their own deadline so a hung converter
// cannot pin the request forever.
const toolTimeout = 60 * time.Second

// PDF renders Markdown to a PDF document. Chain: headless Chrome
// print-to-PDF, then wkhtmltopdf, then the raw HTML page as a degraded
// best-effort result.
func PDF(ctx context.Context, title, markdown string) ([]byte, error) {
	html, err := HTML(title, markdown)
	if err != nil {
		return nil, err
	}
	return RunWithFallbacks(ctx, "pdf", []Strategy{
		{Name: "chromedp", Run: func(ctx context.Context) ([]byte, error) {
			return chromePDF(ctx, html)
		}},
		{Name: "wkhtmltopdf", Run: func(ctx context.Context) ([]byte, error) {
			return wkhtmltoPDF(ctx, html)
		}},
		{Name: "raw-html", Run: func(ctx context.Context) ([]byte, error) {
			return []byte(html), nil
		}},
	})
}

func chromePDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	actx, acancel := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer acancel()
	cctx, ccancel := chromedp.NewContext(actx)
	defer ccancel()

	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var pdf []byte
	err := chromedp.Run(cctx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print: %w", err)
	}
	return pdf, nil
}

func wkhtmltoPDF(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wkhtmltopdf", "--quiet", "--encoding", "utf-8", "-", "-")
	cmd.Stdin = strings.NewReader(html)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("wkhtmltopdf: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("wkhtmltopdf: empty output")
	}
	return out, nil
}
