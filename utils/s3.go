// utils/s3.go
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client
var mediaBucket string
var cdnBaseURL string

// InitMediaBucket configures the S3-compatible bucket that stores player
// images and club logos. Call once at startup.
func InitMediaBucket() error {
	endpoint := os.Getenv("MEDIA_S3_ENDPOINT")
	accessKeyID := os.Getenv("MEDIA_S3_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("MEDIA_S3_ACCESS_KEY_SECRET")
	region := os.Getenv("MEDIA_S3_REGION")
	mediaBucket = os.Getenv("MEDIA_S3_BUCKET")
	cdnBaseURL = os.Getenv("CDN_BASE_URL")

	if endpoint == "" || mediaBucket == "" {
		return errors.New("MEDIA_S3_ENDPOINT and MEDIA_S3_BUCKET must be set")
	}
	if region == "" {
		region = "auto"
	}
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("%s/%s", endpoint, mediaBucket)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load media bucket config: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// UploadFileToBucket uploads a multipart file and returns the public URL.
// key is the object key (e.g., "logos/abc123.png").
func UploadFileToBucket(fileHeader *multipart.FileHeader, key string) (string, error) {
	if s3Client == nil {
		return "", errors.New("media bucket not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(mediaBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to media bucket: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
