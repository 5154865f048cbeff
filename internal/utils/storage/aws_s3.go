package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"recipehub/domain"
	"recipehub/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error)
		UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowType ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	// ObjectAPI is the subset of the s3 client used here.
	ObjectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	awsS3 struct {
		client ObjectAPI
		bucket string
		region string
	}

	disabledS3 struct{}
)

// NewAwsS3 builds the S3 client from configuration. Without a bucket the
// returned storage rejects uploads and ignores deletes.
func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		log.Warn().Msg("AWS_S3_BUCKET not set, image uploads are disabled")
		return disabledS3{}
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey := utils.GetConfig("AWS_ACCESS_KEY"); accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("failed to load aws config, image uploads are disabled")
		return disabledS3{}
	}

	return NewAwsS3WithClient(s3.NewFromConfig(cfg), bucket, region)
}

func NewAwsS3WithClient(client ObjectAPI, bucket, region string) AwsS3 {
	return &awsS3{client: client, bucket: bucket, region: region}
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowType ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowType) > 0 && !slices.Contains(allowType, ext) {
		return "", domain.ErrInvalidImage
	}

	objectKey := fileName + ext
	if folder != "" {
		objectKey = folder + "/" + objectKey
	}
	return objectKey, a.put(ctx, objectKey, file)
}

func (a *awsS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowType ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowType) > 0 && !slices.Contains(allowType, ext) {
		return "", domain.ErrInvalidImage
	}
	return objectKey, a.put(ctx, objectKey, file)
}

func (a *awsS3) put(ctx context.Context, objectKey string, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

// GetObjectKeyFromLink returns "" for links that do not point into the bucket.
func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := a.GetPublicLinkKey("")
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (disabledS3) UploadFile(context.Context, string, *multipart.FileHeader, string, ...string) (string, error) {
	return "", domain.ErrStorageNotEnabled
}

func (disabledS3) UpdateFile(context.Context, string, *multipart.FileHeader, ...string) (string, error) {
	return "", domain.ErrStorageNotEnabled
}

func (disabledS3) DeleteFile(context.Context, string) error { return nil }

func (disabledS3) GetPublicLinkKey(string) string { return "" }

func (disabledS3) GetObjectKeyFromLink(string) string { return "" }
