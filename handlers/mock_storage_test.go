package handlers

import "mime/multipart"

type mockStorage struct {
	UploadImageFn     func(file multipart.File, folder, filename, contentType string) (string, error)
	DeleteObjectFn    func(objectPath string) error
	DeleteObjectCalls []string
	UploadCallCount   int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteObjectCalls: []string{},
	}
}

func (m *mockStorage) UploadImage(file multipart.File, folder, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadImageFn != nil {
		return m.UploadImageFn(file, folder, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/" + folder + "/test_image.jpg", nil
}

func (m *mockStorage) DeleteObject(objectPath string) error {
	m.DeleteObjectCalls = append(m.DeleteObjectCalls, objectPath)
	if m.DeleteObjectFn != nil {
		return m.DeleteObjectFn(objectPath)
	}
	return nil
}
