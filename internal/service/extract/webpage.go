package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"pageforge/internal/domain/models/wizard"
	"pageforge/internal/domain/services/extract"
)

// webpageProcessor scrapes a URL and extracts its readable content as
// markdown. Navigation chrome and scripts are dropped before conversion;
// the page <title> lands in the document metadata.
type webpageProcessor struct {
	client    *http.Client
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewWebpageProcessor creates the processor for webpage sources. A nil
// client gets a default with a request timeout.
func NewWebpageProcessor(client *http.Client) extract.SourceProcessor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()
	return &webpageProcessor{
		client:    client,
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

func (p *webpageProcessor) Name() string { return "webpage" }

func (p *webpageProcessor) CanProcess(src extract.Source) bool {
	if src.Kind != "webpage" || src.URL == "" {
		return false
	}
	u, err := url.Parse(src.URL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func (p *webpageProcessor) Process(ctx context.Context, src extract.Source) (*wizard.ProcessedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", src.URL, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", src.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: unexpected status %d", src.URL, resp.StatusCode)
	}

	raw, err := readCapped(resp.Body)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", src.URL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	// Drop page chrome; only the readable content should reach the plan.
	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe").Remove()

	content := doc.Find("main, article").First()
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	html, err := content.Html()
	if err != nil {
		return nil, fmt.Errorf("extracting content from %q: %w", src.URL, err)
	}

	markdown, err := p.converter.ConvertString(p.policy.Sanitize(html))
	if err != nil {
		return nil, fmt.Errorf("converting %q to markdown: %w", src.URL, err)
	}
	text := strings.TrimSpace(markdown)
	if text == "" {
		return nil, fmt.Errorf("page %q has no extractable content", src.URL)
	}

	d := newDocument(src, p.Name(), text)
	if d.SourceName == "" {
		d.SourceName = src.URL
	}
	if title != "" {
		d.Metadata["page_title"] = title
	}
	return d, nil
}
