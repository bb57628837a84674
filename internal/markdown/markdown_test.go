package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name:     "paragraph",
			source:   "Arrive ten minutes early.",
			contains: []string{"<p>Arrive ten minutes early.</p>"},
		},
		{
			name:     "list",
			source:   "- Wear loose clothing\n- Bring water",
			contains: []string{"<ul>", "<li>Wear loose clothing</li>", "<li>Bring water</li>"},
		},
		{
			name:     "task list",
			source:   "- [ ] I am pregnant",
			contains: []string{`type="checkbox"`, "I am pregnant"},
		},
		{
			name:     "heading",
			source:   "### Medical history",
			contains: []string{"<h3>Medical history</h3>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
		})
	}
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	got, err := ToHTML("Hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}
