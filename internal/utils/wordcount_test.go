package utils

import "testing"

func TestCountWords(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		if got := CountWords("one two three"); got != 3 {
			t.Errorf("expected 3 words, got %d", got)
		}
	})

	t.Run("empty string", func(t *testing.T) {
		if got := CountWords(""); got != 0 {
			t.Errorf("expected 0 words, got %d", got)
		}
	})

	t.Run("markdown punctuation is stripped", func(t *testing.T) {
		text := "# Heading\n\n**bold** and _italic_ words\n\n- item one\n- item two"
		if got := CountWords(text); got != 9 {
			t.Errorf("expected 9 words, got %d", got)
		}
	})

	t.Run("fenced code blocks are excluded", func(t *testing.T) {
		text := "before\n```\ncode stuff here\n```\nafter"
		if got := CountWords(text); got != 2 {
			t.Errorf("expected 2 words, got %d", got)
		}
	})

	t.Run("whitespace only", func(t *testing.T) {
		if got := CountWords("  \n\t  "); got != 0 {
			t.Errorf("expected 0 words, got %d", got)
		}
	})
}

func TestEstimateReadMinutes(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, c := range cases {
		if got := EstimateReadMinutes(c.words); got != c.want {
			t.Errorf("EstimateReadMinutes(%d) = %d, want %d", c.words, got, c.want)
		}
	}
}
