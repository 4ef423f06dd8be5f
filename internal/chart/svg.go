package chart

import (
	"bytes"
	"fmt"
	"html"
)

const fontFamily = `'Segoe UI', Ubuntu, 'Helvetica Neue', Sans-Serif`

// document accumulates the markup of one SVG image.
type document struct {
	buf bytes.Buffer
	pal palette
}

func newDocument(pal palette) *document {
	return &document{pal: pal}
}

func (d *document) printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.buf, format, args...)
}

// open writes the root element, the style sheet and the card background.
func (d *document) open(hideBorder bool) {
	d.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" fill="none" role="img">`, Width, Height, Width, Height)
	d.printf("\n<style>\n%s</style>\n", d.style())
	borderOpacity := 1
	if hideBorder {
		borderOpacity = 0
	}
	d.printf(`<rect class="card" x="0.5" y="0.5" rx="4.5" width="%d" height="%d" fill="%s" stroke="%s" stroke-opacity="%d"/>`+"\n",
		Width-1, Height-1, d.pal.Background, d.pal.Border, borderOpacity)
}

func (d *document) close() []byte {
	d.buf.WriteString("</svg>\n")
	return d.buf.Bytes()
}

// text writes a text element; content is escaped.
func (d *document) text(class string, x, y float64, anchor, content string) {
	d.printf(`<text class="%s" x="%s" y="%s" text-anchor="%s">%s</text>`+"\n",
		class, px(x), px(y), anchor, html.EscapeString(content))
}

func (d *document) style() string {
	p := d.pal
	return fmt.Sprintf(`.header { font: 600 18px %[1]s; fill: %[2]s; animation: fadeIn 0.8s ease-in-out forwards; }
.subheader { font: 400 12px %[1]s; fill: %[3]s; }
.axis { font: 400 11px %[1]s; fill: %[3]s; }
.grid { stroke: %[4]s; stroke-width: 1; stroke-dasharray: 3 3; }
.baseline { stroke: %[3]s; stroke-width: 1; stroke-opacity: 0.6; }
.line { fill: none; stroke: %[5]s; stroke-width: 2; stroke-linejoin: round; stroke-dasharray: 4000; stroke-dashoffset: 4000; animation: drawLine 1.6s ease-out forwards; }
.area { fill: %[6]s; fill-opacity: 0.18; opacity: 0; animation: fadeIn 1s ease-in 0.4s forwards; }
.point { fill: %[7]s; stroke: %[8]s; stroke-width: 1.5; opacity: 0; animation: fadeIn 0.4s ease-in 1.2s forwards; }
.bar { transform-box: fill-box; animation: growBar 0.8s ease-out forwards; }
.bar-add { fill: %[9]s; transform-origin: bottom; }
.bar-del { fill: %[10]s; transform-origin: top; }
.no-data { font: 400 16px %[1]s; fill: %[3]s; }
.error-title { font: 600 18px %[1]s; fill: %[2]s; }
.error-detail { font: 400 13px %[1]s; fill: %[3]s; }
@keyframes fadeIn { from { opacity: 0; } to { opacity: 1; } }
@keyframes drawLine { to { stroke-dashoffset: 0; } }
@keyframes growBar { from { transform: scaleY(0); } to { transform: scaleY(1); } }
`, fontFamily, p.Title, p.Text, p.Grid, p.Line, p.Area, p.Point, p.Background, p.Addition, p.Deletion)
}
