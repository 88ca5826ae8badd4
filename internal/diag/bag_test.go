package diag

import "testing"

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Severity: SevError}) {
		t.Error("expected first Add to succeed")
	}
	if !b.Add(Diagnostic{Severity: SevWarning}) {
		t.Error("expected second Add to succeed")
	}
	if b.Add(Diagnostic{Severity: SevInfo}) {
		t.Error("expected Add past the limit to be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected HasErrors and HasWarnings to be true")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Code: UserDiagnostic, Severity: SevInfo, Primary: Span{File: 1, Start: 5, End: 6}})
	b.Add(Diagnostic{Code: UserDiagnostic, Severity: SevError, Primary: Span{File: 0, Start: 9, End: 12}})
	b.Add(Diagnostic{Code: UserDiagnostic, Severity: SevError, Primary: Span{File: 0, Start: 2, End: 4}})
	b.Add(Diagnostic{Code: UserDiagnostic, Severity: SevError, Primary: Span{File: 0, Start: 2, End: 4}})

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics after dedup, got %d", len(items))
	}
	if items[0].Primary.Start != 2 || items[1].Primary.Start != 9 {
		t.Errorf("unexpected order: %v, %v", items[0].Primary, items[1].Primary)
	}
	if items[2].Primary.File != 1 {
		t.Errorf("expected file 1 last, got %v", items[2].Primary)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(10)
	r := BagReporter{Bag: b}

	rb := ReportError(r, UserDiagnostic, Span{File: 0, Start: 1, End: 3}, "boom").
		WithNote(Span{File: 0, Start: 0, End: 1}, "context here")
	rb.Emit()
	rb.Emit()

	if b.Len() != 1 {
		t.Fatalf("expected exactly one emission, got %d", b.Len())
	}
	d := b.Items()[0]
	if d.Severity != SevError || d.Message != "boom" || len(d.Notes) != 1 {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
}
