package extract

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"pageforge/internal/domain"
	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/services/extract"
)

// Registry routes sources to the first processor that accepts them.
// Registration order is the match order, so more specific processors go
// first.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	processors []extract.SourceProcessor
	logger     *slog.Logger
}

// NewRegistry creates a registry with the standard processors
// pre-registered: webpage scraping, HTML files, and plain text/markdown as
// the fallback.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{logger: logger}
	r.Register(NewWebpageProcessor(nil))
	r.Register(NewHTMLProcessor())
	r.Register(NewTextProcessor())
	return r
}

// Register appends a processor to the match chain.
func (r *Registry) Register(p extract.SourceProcessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors = append(r.processors, p)
}

// Extract resolves a processor for the source and runs it. Any failure,
// including no processor matching, comes back as a DocumentProcessingError
// naming the source.
func (r *Registry) Extract(ctx context.Context, src extract.Source) (*wizard.ProcessedDocument, error) {
	p := r.resolve(src)
	if p == nil {
		return nil, &domain.DocumentProcessingError{
			Source: src.Name,
			Err:    errors.New("no processor accepts this source"),
		}
	}

	doc, err := p.Process(ctx, src)
	if err != nil {
		var dpe *domain.DocumentProcessingError
		if errors.As(err, &dpe) {
			return nil, err
		}
		return nil, &domain.DocumentProcessingError{
			Source:    src.Name,
			Processor: p.Name(),
			Err:       err,
		}
	}

	r.logger.Debug("source extracted",
		"source", src.Name,
		"processor", p.Name(),
		"chars", len(doc.Text),
	)
	return doc, nil
}

func (r *Registry) resolve(src extract.Source) extract.SourceProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.processors {
		if p.CanProcess(src) {
			return p
		}
	}
	return nil
}
