package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxPasses bounds the fixpoint loop in CleanIndexed. Every productive pass
// shortens the text, so real content settles after two or three passes.
const maxPasses = 16

const nbsp = "\u00a0"

// Boundary is the word boundary CleanIndexed puts between a footnoted word
// and the punctuation right after its anchor. The site counts that
// punctuation as a word of its own. Resolve treats Boundary as a delimiter
// and drops it from what it returns.
const Boundary = "\ue000"

// Clean turns a content paragraph's markup into the prose a reader sees.
//
// Footnote markers (<sup class="marker">a</sup>) are dropped together with
// their letter. The anchored word that follows a marker is kept. Entities
// are decoded, every other tag is stripped and non-breaking spaces become
// plain spaces.
//
// Decoding repeats until the text stops changing, so double-escaped input
// such as "&amp;amp;" or "&lt;b&gt;" ends up fully decoded and stripped.
// That is what makes Clean idempotent: Clean(Clean(x)) == Clean(x) for
// anything escaped fewer than maxPasses times.
func Clean(markup string) string {
	return Display(CleanIndexed(markup))
}

// CleanIndexed is Clean for offset math. The text is the same except that a
// Boundary separates a footnoted word from punctuation that directly follows
// its anchor, as in <a><sup class="marker">b</sup>are</a>, so WordCount and
// Resolve index words the way the notes API does.
func CleanIndexed(markup string) string {
	out := markup
	for i := 0; i < maxPasses; i++ {
		next := cleanOnce(out)
		if next == out {
			break
		}
		out = next
	}
	return out
}

// Display removes every Boundary from indexed text.
func Display(indexed string) string {
	return strings.ReplaceAll(indexed, Boundary, "")
}

func cleanOnce(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.ReplaceAll(s, nbsp, " ")
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))

	// depth of <sup> nesting inside a marker; > 0 means "skip text"
	markerDepth := 0
	// inside <script>/<style>
	rawSkip := false
	// a marker just closed and only word characters followed it
	footnoted := false
	// the footnoted word's </a> was the last token
	closedAnchor := false

	for {
		tt := z.Next()
		if tt != html.TextToken {
			closedAnchor = false
		}
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce.
			return strings.ReplaceAll(b.String(), nbsp, " ")

		case html.StartTagToken, html.SelfClosingTagToken:
			footnoted = false
			name, hasAttr := z.TagName()
			tag := string(name)
			switch {
			case tt == html.SelfClosingTagToken:
			case tag == "sup" && markerDepth > 0:
				markerDepth++
			case tag == "sup" && hasAttr && isMarker(z):
				markerDepth = 1
			case tag == "script" || tag == "style":
				rawSkip = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case tag == "sup" && markerDepth > 0:
				markerDepth--
				footnoted = markerDepth == 0
			case tag == "a" && footnoted:
				closedAnchor = true
				footnoted = false
			case tag == "script" || tag == "style":
				rawSkip = false
				footnoted = false
			default:
				footnoted = false
			}

		case html.TextToken:
			if markerDepth > 0 || rawSkip {
				continue
			}
			text := z.Text()
			if closedAnchor && len(text) > 0 && strings.IndexByte("!?.,", text[0]) >= 0 {
				b.WriteString(Boundary)
			}
			closedAnchor = false
			if footnoted && !isWord(text) {
				footnoted = false
			}
			b.Write(text)

		default:
			footnoted = false
		}
	}
}

// isWord reports whether p is made only of letters, digits and underscores.
func isWord(p []byte) bool {
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
		p = p[size:]
	}
	return true
}

// isMarker reports whether the current start tag carries the "marker" class.
func isMarker(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == "marker" {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
