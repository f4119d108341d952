package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
cases:
  - name: opening words
    markup: '<p class="verse"><span class="verse-number">29 </span>Yea, we see that whosoever will</p>'
    start: 3
    end: 5
    want: we see that
  - name: footnote word
    markup: 'upon the <a class="study-note-ref"><sup class="marker">a</sup>word</a> of God'
    start: 3
    want: word of God
  - name: wrong expectation
    text: alpha beta gamma delta
    start: 1
    end: 3
    want: alpha beta gamma delta
  - name: out of range
    text: alpha beta
    start: 1
    end: 9
    want: alpha beta
`

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	cases, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cases) != 4 {
		t.Fatalf("Load() returned %d cases, want 4", len(cases))
	}
	if cases[1].End != nil {
		t.Errorf("cases[1].End = %v, want nil", *cases[1].End)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load(); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "cases:\n  - text: a b\n    want: a\n",
			want: "name is required",
		},
		{
			name: "duplicate name",
			yaml: "cases:\n  - name: x\n    text: a\n  - name: x\n    text: b\n",
			want: "duplicate name",
		},
		{
			name: "both markup and text",
			yaml: "cases:\n  - name: x\n    text: a\n    markup: b\n",
			want: "exactly one",
		},
		{
			name: "invalid yaml",
			yaml: "cases: [",
			want: "failed to parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	cases, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	results := Verify(cases)
	wantPass := []bool{true, true, false, false}
	for i, r := range results {
		if r.Pass != wantPass[i] {
			t.Errorf("%s: Pass = %v, want %v (got %q, err %q)", r.Name, r.Pass, wantPass[i], r.Got, r.Err)
		}
	}
	if results[2].Got != "alpha beta gamma" {
		t.Errorf("%s: Got = %q, want %q", results[2].Name, results[2].Got, "alpha beta gamma")
	}
	if results[3].Err == "" {
		t.Errorf("%s: want an offset error", results[3].Name)
	}
	if n := Failed(results); n != 2 {
		t.Errorf("Failed() = %d, want 2", n)
	}
}
