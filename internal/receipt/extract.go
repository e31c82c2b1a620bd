// Package receipt extracts a short text snippet from uploaded receipt
// files and applies a naive total-amount heuristic. Everything here is
// best effort: a corrupt PDF or undecodable bytes yields an empty
// snippet, never an error.
package receipt

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// snippetLimit caps the extracted snippet length in characters.
	snippetLimit = 500
	// maxPDFPages bounds how deep into a PDF extraction reads.
	maxPDFPages = 2
	// maxReadBytes bounds how much of a text-like upload is read.
	maxReadBytes = 64 * 1024
)

// totalPattern matches lines like "Total: $42.50", "amount due 19,99"
// or "Balance - £7". A match only sets a boolean hint; it is a
// heuristic, not a financial guarantee.
var totalPattern = regexp.MustCompile(`(?i)(total|amount due|balance)\s*[:\-]?\s*[$€£₹]?\s*[0-9]+([.,][0-9]{1,2})?`)

// Extract reads a snippet of up to 500 characters from r based on the
// declared content type: PDFs get the text of their first two pages,
// text-like types get a bounded raw read, anything else yields "".
// The caller owns the stream position; rewind after calling.
func Extract(r io.ReadSeeker, size int64, contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return clamp(pdfText(r, size))
	case strings.HasPrefix(ct, "text/"), strings.Contains(ct, "json"), strings.Contains(ct, "csv"):
		return clamp(plainText(r))
	default:
		return ""
	}
}

// VerifyTotal reports whether the snippet contains something that looks
// like a receipt total. An empty snippet never verifies.
func VerifyTotal(snippet string) bool {
	return snippet != "" && totalPattern.MatchString(snippet)
}

func pdfText(r io.ReadSeeker, size int64) string {
	defer func() {
		// The pdf package panics on some malformed inputs; extraction
		// fails open either way.
		_ = recover()
	}()

	reader, err := pdf.NewReader(readerAtFor(r, size), size)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	pages := reader.NumPage()
	if pages > maxPDFPages {
		pages = maxPDFPages
	}
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		if sb.Len() >= snippetLimit {
			break
		}
	}
	return sb.String()
}

func plainText(r io.Reader) string {
	buf := make([]byte, maxReadBytes)
	n, _ := io.ReadFull(r, buf)
	raw := buf[:n]
	if !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}

// readerAtFor adapts a ReadSeeker into the ReaderAt the pdf package
// needs, buffering only when the stream cannot seek-read directly.
func readerAtFor(r io.ReadSeeker, size int64) io.ReaderAt {
	if ra, ok := r.(io.ReaderAt); ok {
		return ra
	}
	data, err := io.ReadAll(io.LimitReader(r, size))
	if err != nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(data)
}

func clamp(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:snippetLimit])
}
