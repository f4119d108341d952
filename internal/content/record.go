package content

// Record is one content fragment as returned by the content API, keyed in the
// response by the URI it was requested with.
type Record struct {
	URI                     string      `json:"uri"`
	Type                    string      `json:"type,omitempty"`
	Headline                string      `json:"headline"`
	ReferenceURI            string      `json:"referenceURI,omitempty"`
	ReferenceURIDisplayText string      `json:"referenceURIDisplayText"`
	Publication             string      `json:"publication"`
	Content                 []Paragraph `json:"content"`
}

// Paragraph is a single verse or paragraph of a Record.
type Paragraph struct {
	ID        string `json:"id"`        // ex: p29
	DisplayID string `json:"displayId"` // ex: 29
	Markup    string `json:"markup"`
}

// batchRequest is the POST body of the content API.
type batchRequest struct {
	URIs []string `json:"uris"`
}
