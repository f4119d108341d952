package content

import (
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/markup"
)

// Content is a readable view of a Record: cleaned text plus the metadata the
// study site shows around it.
type Content struct {
	URI         string   `json:"uri"`
	URL         string   `json:"url"`
	Headline    string   `json:"headline"`    // ex: Helaman 3
	Reference   string   `json:"reference"`   // ex: Helaman 3:29
	Publication string   `json:"publication"` // ex: Book of Mormon
	Paragraphs  []string `json:"paragraphs"`
	Text        string   `json:"text"`
	// PStart and PEnd are the first and last verse or paragraph numbers.
	PStart int `json:"p_start"`
	PEnd   int `json:"p_end"`
}

func NewContent(r Record) Content {
	paras := make([]string, 0, len(r.Content))
	for _, p := range r.Content {
		paras = append(paras, markup.Clean(p.Markup))
	}

	c := Content{
		URI:         r.URI,
		URL:         StudyURL(r.URI),
		Headline:    r.Headline,
		Reference:   r.ReferenceURIDisplayText,
		Publication: r.Publication,
		Paragraphs:  paras,
		Text:        strings.Join(paras, "\n"),
	}
	if n := len(r.Content); n > 0 {
		c.PStart = paragraphNumber(r.Content[0].ID)
		c.PEnd = paragraphNumber(r.Content[n-1].ID)
	}
	return c
}

// StudyURL maps a content URI ("/eng/scriptures/bofm/hel/3.p29") to its page
// on the study site ("…/study/scriptures/bofm/hel/3.p29?lang=eng").
func StudyURL(uri string) string {
	parts := strings.SplitN(strings.TrimPrefix(uri, "/"), "/", 2)
	if len(parts) < 2 {
		return domain.StudyURL + "/" + parts[0]
	}
	return domain.StudyURL + "/" + parts[1] + "?lang=" + parts[0]
}

// paragraphNumber parses ids such as "p29". Anything else yields 0.
func paragraphNumber(id string) int {
	if len(id) < 2 {
		return 0
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0
	}
	return n
}
