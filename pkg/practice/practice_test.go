package practice

import "testing"

func TestBundled(t *testing.T) {
	table, err := Bundled()
	if err != nil {
		t.Fatalf("Bundled error: %v", err)
	}
	for _, level := range []string{"beginner", "intermediate", "advanced"} {
		s, ok := table.Sentences(level)
		if !ok || len(s) == 0 {
			t.Errorf("level %q missing", level)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":     `nope`,
		"empty":        `{}`,
		"empty level":  `{"easy": []}`,
		"missing pair": `{"easy": [{"french": "oui"}]}`,
	}
	for name, data := range tests {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRandom_AlwaysFromLevel(t *testing.T) {
	table, err := Parse([]byte(`{"easy": [
		{"french": "un", "english": "one"},
		{"french": "deux", "english": "two"},
		{"french": "trois", "english": "three"}
	]}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		s, ok := table.Random("easy")
		if !ok {
			t.Fatal("Random returned !ok for a known level")
		}
		switch s {
		case Sentence{"un", "one"}, Sentence{"deux", "two"}, Sentence{"trois", "three"}:
			seen[s.French] = true
		default:
			t.Fatalf("unexpected sentence %+v", s)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected every sentence to be picked at least once, saw %v", seen)
	}

	if _, ok := table.Random("hard"); ok {
		t.Error("Random should fail for an unknown level")
	}
}

func TestSentences_ReturnsCopy(t *testing.T) {
	table, _ := Parse([]byte(`{"easy": [{"french": "un", "english": "one"}]}`))

	s, _ := table.Sentences("easy")
	s[0].French = "changed"

	again, _ := table.Sentences("easy")
	if again[0].French != "un" {
		t.Error("table was mutated through Sentences")
	}
}

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		submitted, expected string
		want                bool
	}{
		{" Bonjour ", "bonjour", true},
		{"HELLO, HOW ARE YOU?", "Hello, how are you?", true},
		{"\tThe cat is black.\n", "The cat is black.", true},
		{"The cat is black", "The cat is black.", false},
		{"the  cat", "the cat", false},
	}
	for _, tt := range tests {
		if got := IsCorrect(tt.submitted, tt.expected); got != tt.want {
			t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.submitted, tt.expected, got, tt.want)
		}
	}
}
