package wizard

import "time"

// ProcessedDocument is one extracted source attached to a session: the
// text pulled out of an uploaded file or a scraped web page, plus where it
// came from. The original binary never enters the session.
type ProcessedDocument struct {
	ID          string            `json:"id"`
	SourceName  string            `json:"source_name"`          // filename or URL
	SourceKind  string            `json:"source_kind"`          // "file" or "webpage"
	Processor   string            `json:"processor"`            // processor that extracted the text
	Text        string            `json:"text"`                 // extracted plain/markdown text
	Metadata    map[string]string `json:"metadata,omitempty"`   // processor-specific extras
	ProcessedAt time.Time         `json:"processed_at"`
}
