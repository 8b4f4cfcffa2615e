package ai

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"pageforge/internal/config"
	aiSvc "pageforge/internal/domain/services/ai"
)

func TestResolveLoremIsCached(t *testing.T) {
	r := NewProviderRegistry(&config.Config{})

	first, err := r.Resolve("lorem")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := r.Resolve("lorem")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatal("expected the cached provider instance")
	}
}

func TestResolveUnknownProvider(t *testing.T) {
	r := NewProviderRegistry(&config.Config{})
	if _, err := r.Resolve("bedrock"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
	if _, err := r.Resolve(""); err == nil {
		t.Fatal("expected error for empty provider")
	}
}

func TestResolveAnthropicRequiresKey(t *testing.T) {
	r := NewProviderRegistry(&config.Config{})
	if _, err := r.Resolve("anthropic"); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestLoremCompleteYieldsPlanShapedJSON(t *testing.T) {
	p := NewLoremProvider()
	if p.SupportsModel("claude-haiku-4-5-20251001") {
		t.Fatal("lorem provider should only claim lorem models")
	}

	resp, err := p.Complete(context.Background(), &aiSvc.CompletionRequest{
		Model:  "lorem-fast",
		Prompt: "generate a plan",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.StopReason != "end_turn" {
		t.Fatalf("unexpected stop reason %q", resp.StopReason)
	}

	var payload struct {
		Title    string `json:"title"`
		Sections []struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"sections"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &payload); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, resp.Text)
	}
	if payload.Title == "" || len(payload.Sections) == 0 {
		t.Fatalf("response missing plan fields: %s", resp.Text)
	}
	for _, s := range payload.Sections {
		if strings.TrimSpace(s.Content) == "" {
			t.Fatalf("section without content: %s", resp.Text)
		}
	}
}

func TestLoremCompleteRejectsForeignModel(t *testing.T) {
	p := NewLoremProvider()
	if _, err := p.Complete(context.Background(), &aiSvc.CompletionRequest{Model: "claude-haiku-4-5-20251001"}); err == nil {
		t.Fatal("expected model rejection")
	}
}
