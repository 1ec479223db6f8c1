package filestorage

import "mime/multipart"

// StoredFile describes a file after it has been written to storage.
type StoredFile struct {
	Filename     string // storage-assigned name
	OriginalName string // name the client uploaded it under
	MimeType     string
	Size         int64
	Path         string // relative path as recorded in the database
}

// FileStorage defines the interface for document byte storage operations.
type FileStorage interface {
	// SaveFile writes an uploaded file into the given subdirectory and
	// returns where it was stored.
	SaveFile(fileHeader *multipart.FileHeader, subDir string) (*StoredFile, error)

	// ReadFile returns the bytes stored at a path previously returned by SaveFile.
	ReadFile(path string) ([]byte, error)

	// DeleteFile removes a file from storage. Missing files are not an error.
	DeleteFile(path string) error
}
