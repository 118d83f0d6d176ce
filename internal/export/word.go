package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/fumiama/go-docx"
)

// Word renders Markdown to a Word document. Chain: native docx
// generation, then pandoc, then the HTML page served as a .doc (Word
// opens HTML directly).
func Word(ctx context.Context, title, markdown string) ([]byte, error) {
	return RunWithFallbacks(ctx, "word", []Strategy{
		{Name: "go-docx", Run: func(ctx context.Context) ([]byte, error) {
			return nativeDocx(markdown)
		}},
		{Name: "pandoc", Run: func(ctx context.Context) ([]byte, error) {
			return pandocDocx(ctx, markdown)
		}},
		{Name: "html-doc", Run: func(ctx context.Context) ([]byte, error) {
			html, err := HTML(title, markdown)
			if err != nil {
				return nil, err
			}
			return []byte(html), nil
		}},
	})
}

var (
	tableSepRe = regexp.MustCompile(`^\|[\s:|-]+\|$`)
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// nativeDocx does a line-oriented translation of the report Markdown:
// headings become sized runs, table rows become tab-joined lines. Good
// enough for the fixed structure the formatter emits.
func nativeDocx(markdown string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, " ")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "# "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "# ")).Size("36").Color("000000")
		case strings.HasPrefix(line, "## "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "## ")).Size("30").Color("1a1a1a")
		case strings.HasPrefix(line, "### "):
			doc.AddParagraph().AddText(strings.TrimPrefix(line, "### ")).Size("26").Color("1a1a1a")
		case tableSepRe.MatchString(line):
			continue
		case strings.HasPrefix(line, "|"):
			cells := splitTableRow(line)
			doc.AddParagraph().AddText(strings.Join(cells, "    ")).Size("22")
		case strings.HasPrefix(line, "- "):
			doc.AddParagraph().AddText("• " + strings.TrimPrefix(line, "- ")).Size("22")
		default:
			doc.AddParagraph().AddText(boldRe.ReplaceAllString(line, "$1")).Size("22")
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func pandocDocx(ctx context.Context, markdown string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pandoc", "-f", "gfm", "-t", "docx", "-o", "-")
	cmd.Stdin = strings.NewReader(markdown)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pandoc: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pandoc: empty output")
	}
	return out, nil
}
