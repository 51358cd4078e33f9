package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/hemantobora/auto-provision/internal/config"
	"github.com/hemantobora/auto-provision/internal/models"
)

// S3Store implements Store on an existing S3 bucket
type S3Store struct {
	client *s3.Client
	sts    *sts.Client
	bucket string
}

// NewS3Store loads the shared AWS config, honoring the archive profile and region
func NewS3Store(ctx context.Context, cfg config.ArchiveConfig) (*S3Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &models.ArchiveError{
			Provider:  "aws",
			Operation: "load-config",
			Resource:  cfg.Bucket,
			Cause:     fmt.Errorf("failed to load AWS configuration: %w", err),
		}
	}

	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		sts:    sts.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return &models.ArchiveError{
			Provider:  "aws",
			Operation: "put",
			Resource:  s.bucket + "/" + key,
			Cause:     classify(err),
		}
	}
	return nil
}

func (s *S3Store) Identity(ctx context.Context) (string, error) {
	out, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", &models.ArchiveError{Provider: "aws", Operation: "identity", Resource: s.bucket, Cause: classify(err)}
	}
	return aws.ToString(out.Arn), nil
}

// classify turns common API error codes into operator hints
func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "NoSuchBucket":
		return fmt.Errorf("bucket does not exist, create it first: %w", err)
	case "AccessDenied", "Forbidden":
		return fmt.Errorf("access denied, check the archive profile's permissions: %w", err)
	case "ExpiredToken", "ExpiredTokenException", "InvalidClientTokenId":
		return fmt.Errorf("AWS credentials are invalid or expired: %w", err)
	}
	return err
}
