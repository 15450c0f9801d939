package service

import (
	"context"

	"Vista_Video/internal/cdn"

	"github.com/stretchr/testify/mock"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, data []byte, fileName, folder string) (*cdn.UploadResult, error) {
	args := m.Called(ctx, data, fileName, folder)
	res, _ := args.Get(0).(*cdn.UploadResult)
	return res, args.Error(1)
}

func (m *mockUploader) UploadThumbnail(ctx context.Context, payload, fileName string) (*cdn.UploadResult, error) {
	args := m.Called(ctx, payload, fileName)
	res, _ := args.Get(0).(*cdn.UploadResult)
	return res, args.Error(1)
}

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) Cleanup(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

type mockDeleter struct {
	mock.Mock
}

func (m *mockDeleter) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(queue string, body []byte) error {
	return m.Called(queue, body).Error(0)
}
