package goldmark

import (
	"context"
	"testing"
)

// FuzzParse checks that every reference and skip region lies within the body.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"[[link]] and [[a|b]] and [[c#d]]",
		"#tag #[[multi word]] a#b",
		"```\n[[code]]\n```",
		"`[[span]]`",
		"[link](url) and ![image](src)",
		"---\nalias: [a, b]\n---\nalias:: c\n\nbody",
		"---\nalias: [\n---\n",
		"[[unclosed",
		"<div>[[html]]</div>",
		"line1\r\nline2 https://x.com/y",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		page, err := New(FlavorGFM).Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			return
		}

		if err := page.Validate(); err != nil {
			t.Fatalf("invalid page: %v", err)
		}
		for _, s := range page.Skip {
			if s.Start < 0 || s.End > len(data) || s.End < s.Start {
				t.Fatalf("skip span %v outside %d bytes", s, len(data))
			}
		}
	})
}
