package extract

import (
	"context"
	"io"

	"pageforge/internal/domain/models/wizard"
)

// Source is one piece of raw material handed to the extraction layer:
// either an uploaded file's bytes or a URL to scrape.
type Source struct {
	Name    string    // filename or URL, used in error reporting
	Kind    string    // "file" or "webpage"
	Content io.Reader // file bytes; nil for webpage sources
	URL     string    // set for webpage sources
}

// SourceProcessor is the strategy interface for turning one kind of source
// into extracted text. Processors register with the extractor; the first
// processor whose CanProcess matches wins. Mirrors a plugin registry
// without dynamic loading: adding a format means registering a processor.
type SourceProcessor interface {
	// CanProcess reports whether this processor handles the given source.
	CanProcess(src Source) bool

	// Process extracts text and metadata from the source.
	Process(ctx context.Context, src Source) (*wizard.ProcessedDocument, error)

	// Name returns the processor name for logging and error reporting.
	Name() string
}

// SourceExtractor resolves a processor for a source and runs it. A failure
// is fatal for that one source only; batch policy belongs to the caller.
type SourceExtractor interface {
	Extract(ctx context.Context, src Source) (*wizard.ProcessedDocument, error)
}
