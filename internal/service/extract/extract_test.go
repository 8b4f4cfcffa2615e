package extract

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pageforge/internal/domain"
	"pageforge/internal/domain/services/extract"
)

func testRegistry() *Registry {
	return NewRegistry(slog.New(slog.DiscardHandler))
}

func TestExtractMarkdownPassthrough(t *testing.T) {
	r := testRegistry()
	doc, err := r.Extract(context.Background(), extract.Source{
		Name:    "notes.md",
		Kind:    "file",
		Content: strings.NewReader("# Heading\n\nbody text"),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Processor != "text" {
		t.Fatalf("expected text processor, got %q", doc.Processor)
	}
	if doc.Text != "# Heading\n\nbody text" {
		t.Fatalf("markdown altered: %q", doc.Text)
	}
	if doc.SourceKind != "file" || doc.SourceName != "notes.md" {
		t.Fatalf("source identity lost: %+v", doc)
	}
	if doc.Metadata["word_count"] == "" {
		t.Fatal("word count metadata missing")
	}
	if doc.ID == "" || doc.ProcessedAt.IsZero() {
		t.Fatal("document identity not stamped")
	}
}

func TestExtractHTMLStripsScriptsAndConverts(t *testing.T) {
	r := testRegistry()
	html := `<html><body>
		<h1>Welcome</h1>
		<script>alert("xss")</script>
		<p onclick="steal()">Plain <strong>rich</strong> text.</p>
	</body></html>`

	doc, err := r.Extract(context.Background(), extract.Source{
		Name:    "page.html",
		Kind:    "file",
		Content: strings.NewReader(html),
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Processor != "html" {
		t.Fatalf("expected html processor, got %q", doc.Processor)
	}
	if strings.Contains(doc.Text, "alert") || strings.Contains(doc.Text, "onclick") {
		t.Fatalf("dangerous markup survived: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "# Welcome") {
		t.Fatalf("heading not converted to markdown: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "**rich**") {
		t.Fatalf("emphasis not converted: %q", doc.Text)
	}
}

func TestExtractWebpage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Release Notes</title></head><body>
			<nav>Home | About</nav>
			<main><h2>What changed</h2><p>Faster everything.</p></main>
			<footer>Copyright</footer>
		</body></html>`))
	}))
	defer srv.Close()

	r := testRegistry()
	doc, err := r.Extract(context.Background(), extract.Source{
		Name: srv.URL,
		Kind: "webpage",
		URL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Processor != "webpage" {
		t.Fatalf("expected webpage processor, got %q", doc.Processor)
	}
	if doc.Metadata["page_title"] != "Release Notes" {
		t.Fatalf("page title not captured: %+v", doc.Metadata)
	}
	if !strings.Contains(doc.Text, "What changed") {
		t.Fatalf("main content missing: %q", doc.Text)
	}
	if strings.Contains(doc.Text, "Home | About") || strings.Contains(doc.Text, "Copyright") {
		t.Fatalf("page chrome survived: %q", doc.Text)
	}
}

func TestExtractWebpageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := testRegistry()
	_, err := r.Extract(context.Background(), extract.Source{Name: srv.URL, Kind: "webpage", URL: srv.URL})
	if !errors.Is(err, domain.ErrDocumentProcessing) {
		t.Fatalf("expected document processing error, got %v", err)
	}
	var dpe *domain.DocumentProcessingError
	if !errors.As(err, &dpe) || dpe.Processor != "webpage" {
		t.Fatalf("processor not named in error: %v", err)
	}
}

func TestExtractUnsupportedSource(t *testing.T) {
	r := testRegistry()
	_, err := r.Extract(context.Background(), extract.Source{
		Name:    "deck.pdf",
		Kind:    "file",
		Content: strings.NewReader("%PDF-1.4"),
	})
	if !errors.Is(err, domain.ErrDocumentProcessing) {
		t.Fatalf("expected document processing error, got %v", err)
	}
}

func TestExtractEmptyTextRejected(t *testing.T) {
	r := testRegistry()
	_, err := r.Extract(context.Background(), extract.Source{
		Name:    "blank.txt",
		Kind:    "file",
		Content: strings.NewReader("   \n\t  "),
	})
	if !errors.Is(err, domain.ErrDocumentProcessing) {
		t.Fatalf("expected document processing error, got %v", err)
	}
}
