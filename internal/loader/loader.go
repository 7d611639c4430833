// Package loader reads narrative documents from the file-storage boundary.
// The pipeline itself never manages storage; it receives plain text.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// ErrUnsupportedType is returned for file extensions the loader cannot read.
var ErrUnsupportedType = fmt.Errorf("unsupported input file type")

// Read loads the plain-text content of a story file.
//
// Supported: .txt and .md (raw text, latin-1 fallback for non-UTF-8 files),
// .html/.htm (visible text extracted, script/style skipped), .pdf (text
// layer extracted).
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return decodeText(data), nil
	case ".html", ".htm":
		return ExtractHTML(decodeText(data))
	case ".pdf":
		return ExtractPDF(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
}

// Supported reports whether the loader can read the given filename.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".html", ".htm", ".pdf":
		return true
	}
	return false
}

// decodeText returns the file content as a UTF-8 string, treating invalid
// UTF-8 input as latin-1.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// ExtractPDF extracts the text layer of a PDF document. Scanned PDFs
// carry no text layer and come back empty; the segmenter then rejects
// the empty document.
func ExtractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	text, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, text); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

// ExtractHTML extracts the visible text of an HTML document, skipping
// script, style, noscript and iframe subtrees. Block-level elements become
// line breaks so chapter headings survive extraction.
func ExtractHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "h1", "h2", "h3", "h4", "li", "section", "article":
				buf.WriteString("\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
