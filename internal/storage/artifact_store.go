package storage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// ArtifactStore persists exported translation artifacts (e.g. copies of
// translated_document.txt). A nil store disables uploads; the download
// response never depends on it.
type ArtifactStore interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

type azureArtifactStore struct {
	client    *azblob.Client
	container string
}

// NewAzureArtifactStore creates a blob-backed artifact store
func NewAzureArtifactStore(accountName, accountKey, container string) (ArtifactStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureArtifactStore{client: client, container: container}, nil
}

func (s *azureArtifactStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	_, err := s.client.UploadBuffer(ctx, s.container, name, data, nil)
	if err != nil {
		return "", fmt.Errorf("artifact upload failed: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.container, name), nil
}
