package workspace

import "testing"

func TestExtractTitleSummary_FrontmatterWins(t *testing.T) {
	content := "---\ntitle: From Frontmatter\n---\n# From Heading\n\nThe summary paragraph.\n"
	title, summary := ExtractTitleSummary(content)
	if title != "From Frontmatter" {
		t.Errorf("title = %q, want From Frontmatter", title)
	}
	if summary != "The summary paragraph." {
		t.Errorf("summary = %q", summary)
	}
}

func TestExtractTitleSummary_HeadingFallback(t *testing.T) {
	title, summary := ExtractTitleSummary("# Release Notes\n\nShipped the thing.\n\nSecond paragraph ignored.\n")
	if title != "Release Notes" {
		t.Errorf("title = %q", title)
	}
	if summary != "Shipped the thing." {
		t.Errorf("summary = %q", summary)
	}
}

func TestExtractTitleSummary_InlineMarkup(t *testing.T) {
	title, _ := ExtractTitleSummary("# Weekly *Sync* Notes\n")
	if title != "Weekly Sync Notes" {
		t.Errorf("title = %q, want emphasis stripped", title)
	}
}

func TestExtractTitleSummary_Empty(t *testing.T) {
	title, summary := ExtractTitleSummary("")
	if title != "" || summary != "" {
		t.Errorf("got %q/%q, want empty", title, summary)
	}
}

func TestSplitFrontmatter_Unclosed(t *testing.T) {
	header, body := splitFrontmatter("---\ntitle: dangling\nno closing line\n")
	if header != "" {
		t.Errorf("header = %q, want empty for unclosed block", header)
	}
	if body == "" {
		t.Error("body lost for unclosed block")
	}
}
