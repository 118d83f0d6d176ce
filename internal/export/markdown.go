package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithHardWraps()),
)

// ToHTML renders GFM Markdown (tables included) to an HTML fragment.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

const pageCSS = `body{font-family:"PingFang SC","Microsoft YaHei",sans-serif;max-width:800px;margin:40px auto;padding:0 20px;color:#222;line-height:1.7}
h1{border-bottom:2px solid #444;padding-bottom:8px}
h2{border-bottom:1px solid #ccc;padding-bottom:4px;margin-top:28px}
table{border-collapse:collapse;width:100%;margin:12px 0}
th,td{border:1px solid #999;padding:6px 10px;text-align:left}
th{background:#f0f0f0}`

// HTMLPage wraps a rendered fragment in a standalone printable page.
func HTMLPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
%s
</body>
</html>`, html.EscapeString(title), pageCSS, body)
}

// HTML renders a full standalone page from Markdown.
func HTML(title, markdown string) (string, error) {
	body, err := ToHTML(markdown)
	if err != nil {
		return "", err
	}
	return HTMLPage(title, body), nil
}
