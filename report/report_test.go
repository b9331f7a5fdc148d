package report

import "testing"

func TestParseTraceSplitsLabelAndBody(t *testing.T) {
	trace := "expression   (+ 2 3)\nvalue        5\n"
	recs := ParseTrace(trace)
	if len(recs) != 2 {
		t.Fatalf("ParseTrace returned %d records, want 2", len(recs))
	}
	if recs[0].Label != "expression" || recs[0].Body != "(+ 2 3)" {
		t.Fatalf("record 0 = %+v", recs[0])
	}
	if recs[1].Label != "value" || recs[1].Body != "5" {
		t.Fatalf("record 1 = %+v", recs[1])
	}
}

func TestParseTraceSkipsBlankLines(t *testing.T) {
	recs := ParseTrace("expression   1\n\nvalue        1\n")
	if len(recs) != 2 {
		t.Fatalf("ParseTrace should skip blank lines, got %d records", len(recs))
	}
}

func TestRenderProducesOneCodeBlockPerRecord(t *testing.T) {
	recs := []Record{
		{Label: "expression", Body: "(+ 2 3)"},
		{Label: "value", Body: "5"},
	}
	out, err := Render("test trace", recs)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("Render returned empty output")
	}
}

func TestRenderEmptyTrace(t *testing.T) {
	out, err := Render("empty", nil)
	if err != nil {
		t.Fatalf("Render(nil): %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("Render(nil) returned empty output")
	}
}
