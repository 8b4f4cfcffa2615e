package extract

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"pageforge/internal/config"
	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/services/extract"
	"pageforge/internal/utils"
)

// textProcessor handles plain text and markdown uploads. Markdown is the
// native plan format, so the content passes through unchanged.
type textProcessor struct{}

// NewTextProcessor creates the passthrough processor for text uploads.
func NewTextProcessor() extract.SourceProcessor {
	return &textProcessor{}
}

func (p *textProcessor) Name() string { return "text" }

func (p *textProcessor) CanProcess(src extract.Source) bool {
	if src.Kind != "file" {
		return false
	}
	switch strings.ToLower(filepath.Ext(src.Name)) {
	case ".txt", ".text", ".md", ".markdown", "":
		return true
	}
	return false
}

func (p *textProcessor) Process(ctx context.Context, src extract.Source) (*wizard.ProcessedDocument, error) {
	raw, err := readCapped(src.Content)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, fmt.Errorf("source %q is empty", src.Name)
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("source %q is not valid UTF-8 text", src.Name)
	}
	return newDocument(src, p.Name(), text), nil
}

// readCapped reads at most the configured upload limit and rejects sources
// that exceed it rather than truncating them silently.
func readCapped(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("source has no content")
	}
	raw, err := io.ReadAll(io.LimitReader(r, config.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	if len(raw) > config.MaxUploadBytes {
		return nil, fmt.Errorf("source exceeds the %d byte upload limit", config.MaxUploadBytes)
	}
	return raw, nil
}

func newDocument(src extract.Source, processor, text string) *wizard.ProcessedDocument {
	return &wizard.ProcessedDocument{
		ID:         uuid.NewString(),
		SourceName: src.Name,
		SourceKind: src.Kind,
		Processor:  processor,
		Text:       text,
		Metadata: map[string]string{
			"word_count": strconv.Itoa(utils.CountWords(text)),
		},
		ProcessedAt: time.Now().UTC(),
	}
}
