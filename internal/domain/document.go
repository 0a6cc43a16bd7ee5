package domain

// Document is a rendered report ready to download or store.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}
