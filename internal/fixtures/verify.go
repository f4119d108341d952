package fixtures

import (
	"github.com/MrSnakeDoc/ldsnotes/internal/markup"
)

// Result is the outcome of one fixture.
type Result struct {
	Name string `json:"name"`
	Want string `json:"want"`
	Got  string `json:"got"`
	Err  string `json:"error,omitempty"`
	Pass bool   `json:"pass"`
}

// Verify resolves every case in strict mode and compares with Want.
func Verify(cases []Case) []Result {
	out := make([]Result, 0, len(cases))
	for _, c := range cases {
		text := c.Text
		if c.Markup != "" {
			text = markup.CleanIndexed(c.Markup)
		}

		r := Result{Name: c.Name, Want: c.Want}
		got, err := markup.ResolveStrict(text, offset(c.Start), offset(c.End))
		if err != nil {
			r.Err = err.Error()
		} else {
			r.Got = got
			r.Pass = got == c.Want
		}
		out = append(out, r)
	}
	return out
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Pass {
			n++
		}
	}
	return n
}

func offset(p *int) int {
	if p == nil {
		return markup.Unbounded
	}
	return *p
}
