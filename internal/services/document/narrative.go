package document

import (
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// renderNarrative writes the AI-written presentation into the PDF. Summaries
// come back as light markdown (short subheadings over prose), so the text is
// parsed block by block: headings become bold subheads, paragraphs are
// justified, list items become bullets.
func renderNarrative(pdf *fpdf.Fpdf, tr func(string) string, narrative string) {
	source := []byte(narrative)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		renderBlock(pdf, tr, source, node)
	}
	pdf.Ln(3)
}

func renderBlock(pdf *fpdf.Fpdf, tr func(string) string, source []byte, node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		size := 11.0
		if n.Level <= 2 {
			size = 12.0
		}
		pdf.SetFont("Arial", "B", size)
		pdf.CellFormat(0, 7, tr(blockText(source, n)), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	case *ast.Paragraph:
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(blockText(source, n)), "", "J", false)
		pdf.Ln(2)
	case *ast.List:
		pdf.SetFont("Arial", "", 10)
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			pdf.MultiCell(0, 5, tr("- "+blockText(source, item)), "", "L", false)
		}
		pdf.Ln(2)
	case *ast.ThematicBreak:
		pdf.Ln(1)
		pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
		pdf.Ln(3)
	default:
		flat := blockText(source, node)
		if flat != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(flat), "", "J", false)
			pdf.Ln(2)
		}
	}
}

// blockText flattens a block node to plain text, joining nested segments
// with spaces.
func blockText(source []byte, node ast.Node) string {
	var sb strings.Builder
	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		if textNode, ok := n.(*ast.Text); ok {
			sb.Write(textNode.Segment.Value(source))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				sb.WriteByte(' ')
			}
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(node)
	return strings.TrimSpace(sb.String())
}
