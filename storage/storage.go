package storage

import "mime/multipart"

// Client abstracts image storage operations for dependency injection and testing.
type Client interface {
	UploadImage(file multipart.File, folder, filename, contentType string) (string, error)
	DeleteObject(objectPath string) error
}

// firebaseClient is the real implementation that delegates to package-level functions.
type firebaseClient struct{}

func NewClient() Client {
	return &firebaseClient{}
}

func (f *firebaseClient) UploadImage(file multipart.File, folder, filename, contentType string) (string, error) {
	return uploadImage(file, folder, filename, contentType)
}

func (f *firebaseClient) DeleteObject(objectPath string) error {
	return deleteObject(objectPath)
}
