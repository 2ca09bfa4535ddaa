package extract

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePlain = "text/plain"
)

// MimeForFilename maps a supported document filename to the mime type used by
// Text. Legacy .doc files are read as plain text, which recovers enough of the
// body for keyword matching.
func MimeForFilename(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MimePDF, nil
	case ".docx":
		return MimeDocx, nil
	case ".txt", ".doc":
		return MimePlain, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(name))
	}
}

// Text extracts the raw text of a document by mime type.
func Text(mime string, data []byte) (string, error) {
	switch mime {
	case MimePlain:
		return string(data), nil

	case MimePDF:
		return pdfText(bytes.NewReader(data), int64(len(data)))

	case MimeDocx:
		return docxText(data)

	default:
		return "", fmt.Errorf("unsupported file type: %s", mime)
	}
}

func pdfText(reader io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

func docxText(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
