// Package export renders a paper to PDF.
package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"InkBoard/internal/paper"
)

// pxPerMM converts surface units to millimetres on the A4 page.
const pxPerMM = 3.0

func build(p *paper.Paper) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(p.Name, true)
	doc.AddPage()

	for _, el := range p.Elements {
		switch e := el.(type) {
		case *paper.Stroke:
			r, g, b := hexRGB(e.Color)
			doc.SetDrawColor(r, g, b)
			doc.SetLineWidth(float64(e.Width) / pxPerMM)
			for i := 1; i < len(e.Points); i++ {
				doc.Line(
					float64(e.Points[i-1].X)/pxPerMM, float64(e.Points[i-1].Y)/pxPerMM,
					float64(e.Points[i].X)/pxPerMM, float64(e.Points[i].Y)/pxPerMM,
				)
			}
		case *paper.Rectangle:
			r, g, b := hexRGB(e.Color)
			style := "D"
			if e.Filled {
				doc.SetFillColor(r, g, b)
				style = "F"
			} else {
				doc.SetDrawColor(r, g, b)
				doc.SetLineWidth(float64(e.StrokeWidth) / pxPerMM)
			}
			doc.Rect(
				float64(e.X)/pxPerMM, float64(e.Y)/pxPerMM,
				float64(e.Width)/pxPerMM, float64(e.Height)/pxPerMM,
				style,
			)
		case *paper.Text:
			r, g, b := hexRGB(e.Color)
			doc.SetTextColor(r, g, b)
			doc.SetFont("Helvetica", "", float64(e.FontSize))
			// Text elements anchor at the top-left; gofpdf wants a baseline.
			doc.Text(float64(e.X)/pxPerMM, float64(e.Y+e.FontSize)/pxPerMM, e.Content)
		}
	}
	return doc
}

// PDF writes the paper as a PDF document to w.
func PDF(w io.Writer, p *paper.Paper) error {
	return build(p).Output(w)
}

// PDFFile writes the paper as a PDF document at path.
func PDFFile(path string, p *paper.Paper) error {
	return build(p).OutputFileAndClose(path)
}

// hexRGB parses "#rrggbb" (or "#rgb"); anything else is black.
func hexRGB(s string) (int, int, int) {
	hex := func(c byte) (int, bool) {
		switch {
		case c >= '0' && c <= '9':
			return int(c - '0'), true
		case c >= 'a' && c <= 'f':
			return int(c-'a') + 10, true
		case c >= 'A' && c <= 'F':
			return int(c-'A') + 10, true
		}
		return 0, false
	}
	if len(s) == 7 && s[0] == '#' {
		var v [6]int
		for i := 0; i < 6; i++ {
			n, ok := hex(s[i+1])
			if !ok {
				return 0, 0, 0
			}
			v[i] = n
		}
		return v[0]<<4 | v[1], v[2]<<4 | v[3], v[4]<<4 | v[5]
	}
	if len(s) == 4 && s[0] == '#' {
		var v [3]int
		for i := 0; i < 3; i++ {
			n, ok := hex(s[i+1])
			if !ok {
				return 0, 0, 0
			}
			v[i] = n
		}
		return v[0] * 17, v[1] * 17, v[2] * 17
	}
	return 0, 0, 0
}
