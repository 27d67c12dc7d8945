// Package extract turns stored resume documents into plain text for analysis.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Mareenraj/ATS/internal/shared/metrics"
	"github.com/Mareenraj/ATS/internal/shared/storage/object"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

// Outcome tags what an extraction produced.
type Outcome string

const (
	OutcomeText     Outcome = "text"
	OutcomeNotFound Outcome = "not_found"
	OutcomeEmpty    Outcome = "empty"
	OutcomeError    Outcome = "error"
)

const (
	msgNotFound = "Resume file not found."
	msgEmpty    = "Unable to extract text from resume."
	msgError    = "Error reading resume: %s"
)

// Result is the outcome of one extraction. Only OutcomeText carries usable text.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

// Usable reports whether the result holds extracted text.
func (r Result) Usable() bool {
	return r.Outcome == OutcomeText
}

// String returns the extracted text or the user-facing diagnostic.
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeText:
		return r.Text
	case OutcomeNotFound:
		return msgNotFound
	case OutcomeEmpty:
		return msgEmpty
	default:
		reason := "unknown error"
		if r.Err != nil {
			reason = r.Err.Error()
		}
		return fmt.Sprintf(msgError, reason)
	}
}

// IsPDF reports whether a resume locator names a PDF document.
func IsPDF(locator string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(locator)), ".pdf")
}

// Extractor reads resumes from an object store.
type Extractor struct {
	Store object.ObjectStore
}

// Extract reads the document stored under key and returns its text.
// It never fails: every fault is folded into the returned Result.
func (e Extractor) Extract(ctx context.Context, key string) Result {
	res := e.extract(ctx, key)
	metrics.IncExtraction(string(res.Outcome))
	if res.Outcome == OutcomeError {
		telemetry.Warn("extract.failed", map[string]any{
			"key":   key,
			"error": res.Err,
		})
	}
	return res
}

func (e Extractor) extract(ctx context.Context, key string) Result {
	if strings.TrimSpace(key) == "" || e.Store == nil {
		return Result{Outcome: OutcomeNotFound}
	}
	if err := ctx.Err(); err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}

	body, err := e.Store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Result{Outcome: OutcomeNotFound}
		}
		return Result{Outcome: OutcomeError, Err: err}
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}

	text, err := pdfText(raw)
	if err != nil {
		return Result{Outcome: OutcomeError, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Outcome: OutcomeEmpty}
	}
	return Result{Outcome: OutcomeText, Text: text}
}

// pdfText joins the plain text of every page with newlines.
// The parser panics on some malformed inputs, so panics become errors here.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := page.Font(name)
				fonts[name] = &f
			}
		}
		content, err := page.GetPlainText(fonts)
		if err != nil {
			return "", err
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}
