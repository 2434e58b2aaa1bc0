// Package storage signs direct-to-bucket uploads against an S3-compatible
// object store (Cloudflare R2 in production).
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config carries the bucket credentials and the public base URL objects
// are served from.
type R2Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

// R2Presigner issues presigned PUT URLs so clients upload straight to the
// bucket and the API never proxies file bytes.
type R2Presigner struct {
	presign       *s3.PresignClient
	bucket        string
	publicBaseURL string
}

func NewR2Presigner(ctx context.Context, cfg R2Config) (*R2Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &R2Presigner{
		presign:       s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// PresignPut returns a PUT URL bound to the key and content type, valid for
// the given duration.
func (p *R2Presigner) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	out, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// PublicURL maps a stored key to the URL it is served from.
func (p *R2Presigner) PublicURL(key string) string {
	return p.publicBaseURL + "/" + strings.TrimPrefix(key, "/")
}
