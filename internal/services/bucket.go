package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/brokermate/brokermate-backend/internal/apierr"
	"github.com/brokermate/brokermate-backend/internal/logger"
)

const uploadCacheControl = "public, max-age=3600"

// BucketService uploads client documents to the GCS bucket and issues the
// publicly resolvable URL for an object key.
type BucketService interface {
	UploadPdf(ctx context.Context, content io.Reader, destinationPath string) (string, error)
	GetPublicURL(key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient ADC")
	}
	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
	}, nil
}

// UploadPdf writes the document to the exact destination path with overwrite
// semantics and returns its public URL. The top-level folder segment is
// probed first and given a placeholder object when empty; that probe is
// best-effort and never fails the upload.
func (bs *bucketService) UploadPdf(ctx context.Context, content io.Reader, destinationPath string) (string, error) {
	key := strings.TrimLeft(strings.TrimSpace(destinationPath), "/")
	if key == "" {
		return "", apierr.InvalidArgument("destination path is required")
	}

	bs.ensureFolder(ctx, key)

	uploadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(uploadCtx)
	w.ContentType = "application/pdf"
	w.CacheControl = uploadCacheControl
	if _, err := io.Copy(w, content); err != nil {
		_ = w.Close()
		return "", apierr.Storage(fmt.Errorf("failed to write data to GCS: %w", err))
	}
	if err := w.Close(); err != nil {
		return "", apierr.Storage(fmt.Errorf("failed to close GCS writer: %w", err))
	}
	return bs.GetPublicURL(key), nil
}

// ensureFolder probes the key's top-level folder for any existing object and
// drops a zero-byte placeholder when none is found. Failures are logged and
// swallowed; the subsequent upload is attempted regardless.
func (bs *bucketService) ensureFolder(ctx context.Context, key string) {
	i := strings.Index(key, "/")
	if i <= 0 {
		return
	}
	folder := key[:i]

	probeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	it := bs.storageClient.Bucket(bs.bucketName).Objects(probeCtx, &storage.Query{Prefix: folder + "/"})
	_, err := it.Next()
	if err == nil {
		return
	}
	if err != iterator.Done {
		bs.log.Warn("Folder probe failed, attempting upload anyway", "folder", folder, "error", err)
		return
	}

	placeholder := folder + "/.keep"
	w := bs.storageClient.Bucket(bs.bucketName).Object(placeholder).NewWriter(probeCtx)
	if err := w.Close(); err != nil {
		bs.log.Warn("Failed to create folder placeholder", "folder", folder, "error", err)
	}
}

func (bs *bucketService) GetPublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
