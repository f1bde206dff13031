package doctext

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// extractHTML returns the text-only content of a page. Script and style
// subtrees are skipped entirely; runs of whitespace collapse to single
// spaces with block boundaries preserved as newlines.
func extractHTML(raw []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(raw))

	var sb strings.Builder
	skipDepth := 0
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if skippedTag(tag) && skipDepth > 0 {
				skipDepth--
			}
			if skipDepth == 0 && blockTag(tag) && sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text == "" {
				continue
			}
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
}

func skippedTag(name string) bool {
	switch name {
	case "script", "style", "noscript":
		return true
	}
	return false
}

func blockTag(name string) bool {
	switch name {
	case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "section", "article":
		return true
	}
	return false
}
