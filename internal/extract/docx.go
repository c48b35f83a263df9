package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// wordprocessingML main namespace; text boxes, tables and paragraphs all
// live under it inside word/document.xml.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// xmlNode is a generic DOM node for walking word/document.xml.
type xmlNode struct {
	XMLName  xml.Name
	Chardata string    `xml:",chardata"`
	Children []xmlNode `xml:",any"`
}

func (n *xmlNode) is(local string) bool {
	return n.XMLName.Space == wordNS && n.XMLName.Local == local
}

// descendants appends to out every node under n (n excluded) with the
// given local name in the wordprocessingML namespace, in document order.
func (n *xmlNode) descendants(local string, out *[]*xmlNode) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.is(local) {
			*out = append(*out, child)
		}
		child.descendants(local, out)
	}
}

// docxText extracts text from a DOCX file in three passes over the
// document body: floating text boxes (exact-match de-duplicated), table
// cells (stripped, empty skipped), then body paragraphs in document order.
func docxText(path string) (string, error) {
	root, err := readDocumentXML(path)
	if err != nil {
		return "", err
	}

	var parts []string

	if block := textboxText(root); block != "" {
		parts = append(parts, block)
	}

	body := findBody(root)
	if body == nil {
		return "", fmt.Errorf("document has no body")
	}

	for i := range body.Children {
		tbl := &body.Children[i]
		if !tbl.is("tbl") {
			continue
		}
		parts = append(parts, tableCellTexts(tbl)...)
	}

	for i := range body.Children {
		p := &body.Children[i]
		if p.is("p") {
			parts = append(parts, paragraphText(p))
		}
	}

	return strings.Join(parts, "\n"), nil
}

func readDocumentXML(path string) (*xmlNode, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read document.xml: %w", err)
		}

		var root xmlNode
		if err := xml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}
		return &root, nil
	}
	return nil, fmt.Errorf("docx has no word/document.xml")
}

func findBody(root *xmlNode) *xmlNode {
	for i := range root.Children {
		if root.Children[i].is("body") {
			return &root.Children[i]
		}
	}
	return nil
}

// textboxText collects the runs of every floating text box anywhere in
// the document, de-duplicated by exact string in first-seen order.
func textboxText(root *xmlNode) string {
	var boxes []*xmlNode
	root.descendants("txbxContent", &boxes)

	var lines []string
	seen := make(map[string]struct{})
	for _, box := range boxes {
		var paragraphs []*xmlNode
		box.descendants("p", &paragraphs)
		for _, p := range paragraphs {
			var runs []*xmlNode
			p.descendants("t", &runs)
			for _, t := range runs {
				if t.Chardata == "" {
					continue
				}
				if _, dup := seen[t.Chardata]; dup {
					continue
				}
				seen[t.Chardata] = struct{}{}
				lines = append(lines, t.Chardata)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// tableCellTexts returns the stripped text of every cell of tbl, row by
// row, skipping empty cells.
func tableCellTexts(tbl *xmlNode) []string {
	var texts []string
	for i := range tbl.Children {
		row := &tbl.Children[i]
		if !row.is("tr") {
			continue
		}
		for j := range row.Children {
			cell := &row.Children[j]
			if !cell.is("tc") {
				continue
			}
			var cellParts []string
			for k := range cell.Children {
				p := &cell.Children[k]
				if p.is("p") {
					cellParts = append(cellParts, paragraphText(p))
				}
			}
			cellText := strings.TrimSpace(strings.Join(cellParts, "\n"))
			if cellText != "" {
				texts = append(texts, cellText)
			}
		}
	}
	return texts
}

// paragraphText concatenates the run text of a paragraph. Text-box
// content nested inside the paragraph's drawings is excluded; it is
// handled by the text-box pass.
func paragraphText(p *xmlNode) string {
	var b strings.Builder
	var walk func(n *xmlNode)
	walk = func(n *xmlNode) {
		for i := range n.Children {
			child := &n.Children[i]
			if child.is("txbxContent") {
				continue
			}
			if child.is("t") {
				b.WriteString(child.Chardata)
			}
			walk(child)
		}
	}
	walk(p)
	return b.String()
}
