package decision

import "testing"

func TestParse_ExactLabels(t *testing.T) {
	d, ok := Parse("rag_search")
	if !ok || d != RAG {
		t.Fatalf("expected RAG, got %q ok=%v", d, ok)
	}

	d, ok = Parse("web_search")
	if !ok || d != Web {
		t.Fatalf("expected Web, got %q ok=%v", d, ok)
	}
}

func TestParse_NormalizesCaseAndWhitespace(t *testing.T) {
	cases := []string{
		"  rag_search  ",
		"RAG_SEARCH",
		"Rag_Search\n",
		"'rag_search'",
		"\"rag_search\"",
		"rag_search.",
	}
	for _, raw := range cases {
		d, ok := Parse(raw)
		if !ok {
			t.Errorf("Parse(%q): expected ok", raw)
			continue
		}
		if d != RAG {
			t.Errorf("Parse(%q) = %q, expected rag_search", raw, d)
		}
	}
}

func TestParse_RejectsVerboseOutput(t *testing.T) {
	cases := []string{
		"",
		"none",
		"I would use rag_search for this question",
		"rag_search or web_search depending on context",
		"web_search rag_search",
		"search",
	}
	for _, raw := range cases {
		if d, ok := Parse(raw); ok {
			t.Errorf("Parse(%q) = %q, expected no match", raw, d)
		}
	}
}

func TestValid(t *testing.T) {
	if !RAG.Valid() || !Web.Valid() {
		t.Error("enumerated decisions must be valid")
	}
	if Decision("").Valid() || Decision("hybrid").Valid() {
		t.Error("non-enumerated decisions must be invalid")
	}
}
