// Package docimport turns an uploaded resume document into wizard prefill
// data. It extracts plain text from PDF and DOCX uploads, pulls an embedded
// photo out of DOCX files when one exists, and asks the model to structure
// the text into resume sections.
package docimport

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Format identifies a supported upload type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// MinTextChars is the smallest extraction that still counts as a readable
// document. Anything shorter is treated as a scan or an empty file.
const MinTextChars = 40

// UnreadableError reports an upload no text could be pulled from.
type UnreadableError struct {
	Reason string
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("document is not readable: %s", e.Reason)
}

// DetectFormat sniffs the upload by content. DOCX files are zip archives
// carrying word/document.xml; PDFs start with the %PDF marker.
func DetectFormat(data []byte) (Format, error) {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return FormatPDF, nil
	}
	if bytes.HasPrefix(data, []byte("PK")) {
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err == nil && findZipFile(zr, "word/document.xml") != nil {
			return FormatDOCX, nil
		}
	}
	return "", &UnreadableError{Reason: "unsupported file format, expected PDF or DOCX"}
}

// ExtractText returns the plain text of an uploaded document. Extractions
// below MinTextChars fail with an UnreadableError so the wizard can tell the
// user the file could not be read instead of feeding noise to the model.
func ExtractText(data []byte) (string, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to extract %s text: %w", format, err)
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextChars {
		return "", &UnreadableError{Reason: "no extractable text, the file may be a scan"}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	docFile := findZipFile(zr, "word/document.xml")
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return flattenDocxXML(raw), nil
}

// flattenDocxXML walks the WordprocessingML token stream and keeps the
// character data, turning paragraph and line-break ends into newlines.
func flattenDocxXML(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return string(raw)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func findZipFile(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == name {
			return f
		}
	}
	return nil
}
