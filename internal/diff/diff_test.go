package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedEqual(t *testing.T) {
	assert.Empty(t, Unified("a", "b", "same\n", "same\n"))
}

func TestUnified(t *testing.T) {
	got := Unified("old.md", "new.md", "one\ntwo\n", "one\n2\n")

	assert.Contains(t, got, "--- old.md")
	assert.Contains(t, got, "+++ new.md")
	assert.Contains(t, got, "-two")
	assert.Contains(t, got, "+2")
}

func TestNormalization(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		wantDiff bool
	}{
		{"already normalized", "# Title\n\n- a\n- b\n", false},
		{"star bullets become dashes", "# Title\n\n* a\n* b\n", true},
		{"bare url becomes link", "see https://example.com\n", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalization("topic.md", tt.markup)
			if (got != "") != tt.wantDiff {
				t.Errorf("Normalization(%q) = %q, wantDiff %v", tt.markup, got, tt.wantDiff)
			}
		})
	}
}

func TestRenderKeepsChanges(t *testing.T) {
	rendered := Render(Unified("a", "b", "x\n", "y\n"), 80)
	assert.True(t, strings.Contains(rendered, "x") && strings.Contains(rendered, "y"))
}
