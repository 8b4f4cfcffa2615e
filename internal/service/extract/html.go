package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/services/extract"
)

// htmlProcessor converts uploaded HTML files to markdown in two stages:
// 1. Sanitize the HTML to remove scripts, event handlers and javascript: URLs
// 2. Convert the sanitized HTML to markdown
type htmlProcessor struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLProcessor creates the processor for HTML uploads. The sanitizer
// uses a UGC policy so common formatting survives while XSS vectors are
// stripped.
func NewHTMLProcessor() extract.SourceProcessor {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &htmlProcessor{
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

func (p *htmlProcessor) Name() string { return "html" }

func (p *htmlProcessor) CanProcess(src extract.Source) bool {
	if src.Kind != "file" {
		return false
	}
	switch strings.ToLower(filepath.Ext(src.Name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func (p *htmlProcessor) Process(ctx context.Context, src extract.Source) (*wizard.ProcessedDocument, error) {
	raw, err := readCapped(src.Content)
	if err != nil {
		return nil, err
	}

	sanitized := p.policy.Sanitize(string(raw))
	markdown, err := p.converter.ConvertString(sanitized)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	text := strings.TrimSpace(markdown)
	if text == "" {
		return nil, fmt.Errorf("source %q has no extractable content", src.Name)
	}
	return newDocument(src, p.Name(), text), nil
}
