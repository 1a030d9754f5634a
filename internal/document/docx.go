// Package document reads .docx inspection reports.
//
// A .docx file is a zip archive; the body lives in word/document.xml as
// w:p (paragraph), w:tbl/w:tr/w:tc (table structure) and w:t (text run)
// elements. The reader walks that XML once and exposes ordered paragraph
// texts and table cell texts. Malformed interior content degrades to
// fewer paragraphs or tables, never to a hard failure.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Document holds the extracted text structure of one report file.
type Document struct {
	paragraphs []string
	tables     [][][]string
}

// Open reads and parses the .docx file at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Parse parses raw .docx bytes.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open document archive: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return nil, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := body.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open document body: %w", err)
	}
	defer rc.Close()

	return decodeBody(rc)
}

// Paragraphs returns the trimmed, non-empty top-level paragraph texts in
// document order. Paragraphs inside table cells are not included.
func (d *Document) Paragraphs() []string {
	return d.paragraphs
}

// Tables returns every table as rows of cell texts, in document order.
func (d *Document) Tables() [][][]string {
	return d.tables
}

func decodeBody(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var (
		doc        Document
		tableDepth int
		curTable   [][]string
		curRow     []string
		cellText   strings.Builder
		paraText   strings.Builder
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document body: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					curTable = nil
				}
			case "tr":
				if tableDepth == 1 {
					curRow = nil
				}
			case "tc":
				if tableDepth == 1 {
					cellText.Reset()
				}
			case "t":
				inText = true
			}
		case xml.CharData:
			if inText {
				if tableDepth > 0 {
					cellText.Write(el)
				} else {
					paraText.Write(el)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if tableDepth == 0 {
					if text := strings.TrimSpace(paraText.String()); text != "" {
						doc.paragraphs = append(doc.paragraphs, text)
					}
					paraText.Reset()
				} else if tableDepth == 1 {
					// Paragraph break inside a cell.
					cellText.WriteString("\n")
				}
			case "tc":
				if tableDepth == 1 {
					curRow = append(curRow, strings.TrimSpace(cellText.String()))
					cellText.Reset()
				}
			case "tr":
				if tableDepth == 1 && curRow != nil {
					curTable = append(curTable, curRow)
					curRow = nil
				}
			case "tbl":
				if tableDepth == 1 && len(curTable) > 0 {
					doc.tables = append(doc.tables, curTable)
					curTable = nil
				}
				if tableDepth > 0 {
					tableDepth--
				}
			}
		}
	}

	return &doc, nil
}
