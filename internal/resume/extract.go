package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

// MaxTextLength caps the text returned to clients, in runes.
const MaxTextLength = 20000

var ErrEmpty = errors.New("no text could be extracted")

// ExtractText pulls plain text out of a resume by file extension: PDF, DOCX,
// or anything else decoded as UTF-8. Whitespace is collapsed.
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		text = strings.ToValidUTF8(string(data), "")
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}

	text = shared.CleanText(text)
	if text == "" {
		return "", ErrEmpty
	}
	return shared.Truncate(text, MaxTextLength), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// docxText reads the paragraphs of word/document.xml, one per line.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return documentParagraphs(rc)
	}
	return "", errors.New("word/document.xml not found")
}

func documentParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		b       strings.Builder
		inText  bool
		started bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if started {
					b.WriteString("\n")
				}
				started = true
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
}
