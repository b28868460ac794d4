package profile

import "testing"

const sampleDoc = `# Analyst Bot

Digs through metrics and writes up findings.

| Role | Department | Focus |
| --- | --- | --- |
| Analyst | Engineering | Metrics |

## Mission

Keep the dashboards honest.

## Notes

Some other text.
`

func TestParse_FullDocument(t *testing.T) {
	p := Parse(sampleDoc)

	if p.Description != "Digs through metrics and writes up findings." {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Role != "Analyst" {
		t.Errorf("Role = %q, want Analyst", p.Role)
	}
	if p.Department != "Engineering" {
		t.Errorf("Department = %q, want Engineering", p.Department)
	}
	if p.Focus != "Metrics" {
		t.Errorf("Focus = %q, want Metrics", p.Focus)
	}
	if p.Mission != "Keep the dashboards honest." {
		t.Errorf("Mission = %q", p.Mission)
	}
}

// Every field defaults to empty for any input, without panicking.
func TestParse_Totality(t *testing.T) {
	inputs := []string{
		"",
		"no structure at all",
		"# heading only",
		"|||",
		"---\n---\n---",
		"## Mission",
		"| a | b |",
		"# \n\n## Mission\n",
	}
	for _, in := range inputs {
		p := Parse(in)
		_ = p.Description + p.Mission + p.Role + p.Department + p.Focus
	}
}

func TestParse_DescriptionSkipsTableAndRules(t *testing.T) {
	doc := "# Bot\n\n| Role | Dept | Focus |\n| --- | --- | --- |\n---\n\nActual description here.\n"
	p := Parse(doc)
	if p.Description != "Actual description here." {
		t.Errorf("Description = %q, want the first prose line", p.Description)
	}
}

func TestParse_TableSeparatorRowSkipped(t *testing.T) {
	doc := `# Bot
| Role | Department | Focus |
| ---- | ---------- | ----- |
| SRE | Operations | Uptime |
`
	p := Parse(doc)
	if p.Role != "SRE" || p.Department != "Operations" || p.Focus != "Uptime" {
		t.Errorf("table fields = %q/%q/%q, separator row leaked through", p.Role, p.Department, p.Focus)
	}
}

func TestParse_TableWithoutSeparator(t *testing.T) {
	doc := "| Role | Department | Focus |\n| Dev | Eng | APIs |\n"
	p := Parse(doc)
	if p.Role != "Dev" {
		t.Errorf("Role = %q, want Dev", p.Role)
	}
}

func TestParse_NoQualifyingTable(t *testing.T) {
	p := Parse("# Bot\n\n| only | two |\n")
	if p.Role != "" || p.Department != "" || p.Focus != "" {
		t.Errorf("fields should be empty, got %q/%q/%q", p.Role, p.Department, p.Focus)
	}
}

func TestParse_MissionCaseSensitive(t *testing.T) {
	p := Parse("## mission\nlower case heading\n")
	if p.Mission != "" {
		t.Errorf("Mission = %q, want empty for lower-case heading", p.Mission)
	}
}

func TestParse_MissionStopsAtNextHeading(t *testing.T) {
	p := Parse("## Mission\n\n## Next\ntext\n")
	if p.Mission != "" {
		t.Errorf("Mission = %q, want empty when block has no text before next heading", p.Mission)
	}
}

func TestParse_MissionFirstLineOnly(t *testing.T) {
	p := Parse("## Mission\nFirst line.\nSecond line.\n")
	if p.Mission != "First line." {
		t.Errorf("Mission = %q, want only the first line", p.Mission)
	}
}
