package blobstore

import "context"

// UploadResult is what the service keeps about an uploaded image: the CDN
// URL to serve and the provider id needed to delete the asset later.
type UploadResult struct {
	URL      string
	PublicID string
}

// BlobStore abstracts the external image host. Upload accepts a base64
// data-URI payload as sent by the mobile client.
type BlobStore interface {
	Upload(ctx context.Context, image string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
