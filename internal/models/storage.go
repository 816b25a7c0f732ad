package models

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	storage_go "github.com/supabase-community/storage-go"
)

const (
	StorageSupabase   = "supabase"
	StorageCloudinary = "cloudinary"
	StorageS3         = "s3"

	DefaultImagesBucket = "place-images"
)

// ObjectStore is where place photos live. Upload writes one object at path;
// PublicURL resolves the address browsers should load it from.
type ObjectStore interface {
	Upload(ctx context.Context, path string, file io.Reader, contentType, accessToken string) error
	PublicURL(path string) (string, error)
}

// SupabaseStorage stores images in a Supabase storage bucket.
type SupabaseStorage struct {
	repo   *SupabaseRepo
	bucket string
}

func NewSupabaseStorage(repo *SupabaseRepo, bucket string) *SupabaseStorage {
	if bucket == "" {
		bucket = DefaultImagesBucket
	}
	return &SupabaseStorage{repo: repo, bucket: bucket}
}

func (s *SupabaseStorage) Upload(ctx context.Context, path string, file io.Reader, contentType, accessToken string) error {
	client, err := s.repo.GetAuthenticatedClient(accessToken)
	if err != nil {
		return fmt.Errorf("failed to create authenticated client: %w", err)
	}

	opts := storage_go.FileOptions{}
	if contentType != "" {
		opts.ContentType = &contentType
	}
	if _, err := client.Storage.UploadFile(s.bucket, path, file, opts); err != nil {
		return &BackendError{Op: "upload image", Err: err}
	}
	return nil
}

func (s *SupabaseStorage) PublicURL(path string) (string, error) {
	res := s.repo.supabaseClient.Storage.GetPublicUrl(s.bucket, path)
	if res.SignedURL == "" {
		return "", fmt.Errorf("no public url for %s", path)
	}
	return res.SignedURL, nil
}

// CloudinaryStorage maps object paths onto Cloudinary public ids inside a
// folder named after the bucket.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary, folder string) *CloudinaryStorage {
	if folder == "" {
		folder = DefaultImagesBucket
	}
	return &CloudinaryStorage{cld: cld, folder: folder}
}

func (s *CloudinaryStorage) publicID(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		path = path[:i]
	}
	return s.folder + "/" + path
}

func (s *CloudinaryStorage) Upload(ctx context.Context, path string, file io.Reader, contentType, accessToken string) error {
	overwrite := false
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  s.publicID(path),
		Overwrite: &overwrite,
		Tags:      []string{"trailmate"},
	})
	if err != nil {
		return &BackendError{Op: "upload image", Err: err}
	}
	if res != nil && res.Error.Message != "" {
		return &BackendError{Op: "upload image", Err: fmt.Errorf("%s", res.Error.Message)}
	}
	return nil
}

func (s *CloudinaryStorage) PublicURL(path string) (string, error) {
	img, err := s.cld.Image(s.publicID(path))
	if err != nil {
		return "", fmt.Errorf("failed to build image url: %w", err)
	}
	return img.String()
}

// S3Storage stores images in any S3-compatible bucket with public-read ACL.
type S3Storage struct {
	client        s3iface.S3API
	bucket        string
	publicBaseURL string
}

func NewS3Storage(client s3iface.S3API, bucket, publicBaseURL string) *S3Storage {
	return &S3Storage{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *S3Storage) Upload(ctx context.Context, path string, file io.Reader, contentType, accessToken string) error {
	body, ok := file.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		body = bytes.NewReader(data)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   body,
		ACL:    aws.String(s3.ObjectCannedACLPublicRead),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return &BackendError{Op: "upload image", Err: err}
	}
	return nil
}

func (s *S3Storage) PublicURL(path string) (string, error) {
	if s.publicBaseURL == "" {
		return "", fmt.Errorf("S3 public base url is not configured")
	}
	return s.publicBaseURL + "/" + path, nil
}
