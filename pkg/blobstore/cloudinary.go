package blobstore

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// booksFolder namespaces all book covers inside the Cloudinary account.
const booksFolder = "books"

type cloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a BlobStore from a cloudinary:// URL.
func NewCloudinary(url string) (BlobStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &cloudinaryStore{cld: cld}, nil
}

func (s *cloudinaryStore) Upload(ctx context.Context, image string) (*UploadResult, error) {
	// Cloudinary detects the content type from the data URI itself.
	resp, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder: booksFolder,
	})
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
	}, nil
}

func (s *cloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	// "not found" is fine: the asset is already gone.
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Result)
	}
	return nil
}
