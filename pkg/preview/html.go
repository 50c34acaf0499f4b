package preview

import (
	"bytes"
	"html"
	"io"
)

var voidTags = map[string]bool{
	"input": true, "hr": true, "br": true, "img": true, "meta": true,
	"circle": true, "rect": true, "line": true, "path": true, "polyline": true,
}

// WriteHTML writes e as markup. The output is well-formed XML as well as
// HTML, so it can be embedded in an SVG foreignObject.
func WriteHTML(w io.Writer, e *Element) error {
	var buf bytes.Buffer
	writeElement(&buf, e)
	_, err := w.Write(buf.Bytes())
	return err
}

// HTML returns the markup of e.
func HTML(e *Element) []byte {
	var buf bytes.Buffer
	writeElement(&buf, e)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, e *Element) {
	if e == nil {
		return
	}
	if e.Tag == "" {
		buf.WriteString(html.EscapeString(e.Text))
		return
	}
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(a.Val))
		buf.WriteByte('"')
	}
	if voidTags[e.Tag] && e.Text == "" && len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	buf.WriteString(html.EscapeString(e.Text))
	for _, c := range e.Children {
		writeElement(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}

// Stylesheet is the CSS the preview markup is written against.
const Stylesheet = `
body { margin: 0; font-family: Inter, system-ui, sans-serif; color: #0f172a; background: #f8fafc; }
.dashboard { padding: 24px; }
.dashboard-title { font-size: 24px; font-weight: 700; margin: 0 0 4px; }
.dashboard-description { color: #64748b; margin: 0 0 16px; }
.card { background: #fff; border: 1px solid #e2e8f0; border-radius: 12px; padding: 16px; }
.card-header { margin-bottom: 8px; }
.card-title { font-size: 14px; font-weight: 500; color: #64748b; }
.stat-value { font-size: 28px; font-weight: 700; }
.stat-change { font-size: 12px; margin: 4px 0 0; }
.change-positive { color: #16a34a; } .change-negative { color: #dc2626; } .change-neutral { color: #64748b; }
.mini-stat-label { font-size: 12px; color: #64748b; }
.mini-stat-row { display: flex; justify-content: space-between; align-items: baseline; }
.mini-stat-value { font-size: 20px; font-weight: 600; }
.trend-up { color: #16a34a; } .trend-down { color: #dc2626; }
.alert { border-radius: 8px; padding: 12px 16px; border: 1px solid; }
.alert-info { background: #eff6ff; border-color: #bfdbfe; } .alert-success { background: #f0fdf4; border-color: #bbf7d0; }
.alert-warning { background: #fffbeb; border-color: #fde68a; } .alert-error { background: #fef2f2; border-color: #fecaca; }
.alert-message { margin: 4px 0 0; font-size: 14px; }
.chart { width: 100%; height: 200px; }
.chart-legend { list-style: none; padding: 0; display: flex; gap: 12px; font-size: 12px; }
.legend-swatch { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-right: 4px; }
.data-table { width: 100%; border-collapse: collapse; font-size: 14px; }
.data-table th { text-align: left; color: #64748b; font-weight: 500; border-bottom: 1px solid #e2e8f0; padding: 8px; }
.data-table td { border-bottom: 1px solid #f1f5f9; padding: 8px; }
.badge { display: inline-block; border-radius: 9999px; padding: 2px 8px; font-size: 12px; background: #0f172a; color: #fff; }
.badge-secondary, .status-inactive { background: #f1f5f9; color: #0f172a; }
.badge-destructive { background: #dc2626; } .badge-outline { background: transparent; color: #0f172a; border: 1px solid #e2e8f0; }
.status-active { background: #dcfce7; color: #166534; }
.btn { border-radius: 6px; padding: 8px 16px; border: 1px solid transparent; background: #0f172a; color: #fff; }
.btn-secondary { background: #f1f5f9; color: #0f172a; } .btn-outline { background: #fff; color: #0f172a; border-color: #e2e8f0; }
.btn-ghost { background: transparent; color: #0f172a; }
.input, .select { border: 1px solid #e2e8f0; border-radius: 6px; padding: 8px 12px; width: 100%; }
.text-muted { color: #64748b; }
.divider { border: 0; border-top: 1px solid #e2e8f0; width: 100%; }
.unknown-component { border: 2px dashed #f87171; border-radius: 8px; padding: 16px; color: #b91c1c; background: #fef2f2; }
`

// WritePage writes a standalone HTML document containing body.
func WritePage(w io.Writer, title string, body *Element) error {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\"/>\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n<style>")
	buf.WriteString(Stylesheet)
	buf.WriteString("</style>\n</head>\n<body>\n")
	writeElement(&buf, body)
	buf.WriteString("\n</body>\n</html>\n")
	_, err := w.Write(buf.Bytes())
	return err
}
