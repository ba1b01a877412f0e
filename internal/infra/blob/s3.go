package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
)

// S3Deps bundles the S3 clients used for photo upload and presigned
// download. The endpoint is configurable so MinIO works in dev.
type S3Deps struct {
	Client   *s3.Client
	Presign  *s3.PresignClient
	Uploader *manager.Uploader
	Bucket   string
}

// UploadedMeta describes the object after a successful upload.
type UploadedMeta struct {
	Bucket string
	Key    string
	ETag   string
	SHA256 string
	MIME   string
	SizeB  int64
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return &S3Deps{
		Client:   client,
		Presign:  s3.NewPresignClient(client),
		Uploader: manager.NewUploader(client),
		Bucket:   cfg.S3.Bucket,
	}, nil
}

// UploadFormFile streams a multipart upload to the given key. The same
// key is overwritten on re-upload; the caller decides whether that is
// an update or an append at the metadata level.
func (d *S3Deps) UploadFormFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (*UploadedMeta, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()

	// Hash while buffering; field photos are small enough to hold in memory.
	buf := &bytes.Buffer{}
	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(buf, hasher), f)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}

	mime := mimetype.Detect(buf.Bytes())

	out, err := d.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(mime.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to s3: %w", err)
	}

	etag := ""
	if out.ETag != nil {
		etag = *out.ETag
	}
	return &UploadedMeta{
		Bucket: d.Bucket,
		Key:    key,
		ETag:   etag,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		MIME:   mime.String(),
		SizeB:  size,
	}, nil
}

// PresignGet returns a time-limited download URL for the object. The
// URL is never cached or persisted; a fresh one is issued per fetch.
func (d *S3Deps) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	req, err := d.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expire))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
