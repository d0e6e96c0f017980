package models

// Post is a content file in the posts folder, referenced by featured sections.
type Post struct {
	ID      string `json:"id"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Slug    string `json:"slug,omitempty"`
	Date    string `json:"date,omitempty"`
	IsDirty bool   `json:"is_dirty"`
}

// MediaFile is an uploaded file in the media folder. Its ID is the file name.
type MediaFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"` // Relative path for usage in markdown
	Size     int64  `json:"size"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}
