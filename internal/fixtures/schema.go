package fixtures

// File is the top-level structure of a fixtures file.
//
//	cases:
//	  - name: helaman 3:29 opening
//	    markup: '<p class="verse">Yea, we see that whosoever will</p>'
//	    start: 2
//	    end: 4
//	    want: we see that
type File struct {
	Cases []Case `yaml:"cases"`
}

// Case is one known-good highlight. Either Markup (cleaned before resolving)
// or Text (used as is) must be set. A missing offset means unbounded.
type Case struct {
	Name   string `yaml:"name"`
	Markup string `yaml:"markup,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Start  *int   `yaml:"start,omitempty"`
	End    *int   `yaml:"end,omitempty"`
	Want   string `yaml:"want"`
}
