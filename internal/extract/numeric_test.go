package extract

import "testing"

func TestNumberExtraction(t *testing.T) {
	e := NewNumberExtractor()
	text := "Annual savings reached $2.5M last year. Processing takes 45 minutes per deck."

	nums := e.Extract(text)
	if len(nums) < 2 {
		t.Fatalf("expected at least 2 numbers, got %d: %v", len(nums), nums)
	}

	first := nums[0]
	if first.ValuePart != "2.5" || first.Suffix != "M" {
		t.Errorf("first number: got value=%q suffix=%q", first.ValuePart, first.Suffix)
	}
	if first.Sentence != "Annual savings reached $2.5M last year" {
		t.Errorf("sentence context: got %q", first.Sentence)
	}
}

func TestNumberExtractionThousandsSeparators(t *testing.T) {
	e := NewNumberExtractor()
	nums := e.Extract("We serve 12,500 customers across 3 regions.")
	if len(nums) != 2 {
		t.Fatalf("expected 2 numbers, got %d: %v", len(nums), nums)
	}
	if nums[0].ValuePart != "12,500" {
		t.Errorf("got %q", nums[0].ValuePart)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		value  string
		suffix string
		want   float64
	}{
		{"2", "M", 2e6},
		{"2.5", "m", 2.5e6},
		{"3", "K", 3000},
		{"1.2", "B", 1.2e9},
		{"4", "T", 4e12},
		{"12,500", "", 12500},
		{"-3.5", "", -3.5},
		{"garbage", "", 0},
	}
	for _, tt := range tests {
		if got := NormalizeValue(tt.value, tt.suffix); got != tt.want {
			t.Errorf("NormalizeValue(%q, %q) = %v, want %v", tt.value, tt.suffix, got, tt.want)
		}
	}
}

func TestSentenceContextFallback(t *testing.T) {
	// A single long sentence without terminators: fallback window applies.
	text := "value 42 surrounded by words with no sentence terminator at all"
	got := SentenceContext(text, 6, 8)
	if got == "" {
		t.Fatal("expected non-empty context")
	}
	if len(got) > len(text) {
		t.Errorf("context longer than text: %q", got)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("First point. Second point!\nThird bullet\n\nFourth")
	want := []string{"First point", "Second point!", "Third bullet", "Fourth"}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
