package domain

// Tag is a user tag with the number of annotations carrying it.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (t Tag) String() string { return t.Name }

// Folder is a notebook.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (f Folder) String() string { return f.Name }
