package builder

import (
	"fmt"
	"html"
	"path"
	"strings"

	"github.com/mkoster/codeatlas/internal/parser"
)

const (
	scopeDefaultFileSize = 15
	tooltipSigLimit      = 60
)

func htmlEscape(s string) string {
	return html.EscapeString(s)
}

// fileTooltip renders the hover summary for a scoped file: its basename
// in bold, then one row per definition up to the configured cap, each
// with the definition kind and a length-capped one-line signature.
func fileTooltip(relPath string, defs []parser.Definition, maxRows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b><br>", htmlEscape(path.Base(relPath)))

	if len(defs) == 0 {
		sb.WriteString("<i>No structures found</i>")
		return sb.String()
	}

	shown := defs
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, d := range shown {
		sig := firstLine(d.Signature)
		if r := []rune(sig); len(r) > tooltipSigLimit {
			sig = string(r[:tooltipSigLimit]) + "…"
		}
		fmt.Fprintf(&sb, "<i>%s</i> %s<br>", htmlEscape(d.Kind), htmlEscape(sig))
	}
	if extra := len(defs) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, "<i>… and %d more</i>", extra)
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
