package infra_s3

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// PosterStorage turns the raw poster references stored with catalog items
// into links a client can actually fetch.
type PosterStorage struct {
	client *s3.Client

	prefix     string
	bucketName string
	linkTTL    time.Duration
}

func New(bucketName string, client *s3.Client, prefix string, linkTTL time.Duration) (*PosterStorage, error) {
	storage := PosterStorage{
		bucketName: bucketName,
		client:     client,
		prefix:     prefix,
		linkTTL:    linkTTL,
	}

	_, err := storage.client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		var apiError smithy.APIError
		if errors.As(err, &apiError) {
			switch apiError.(type) {
			case *types.NotFound:
				log.Printf("Bucket %v is available.\n", bucketName)
				err = nil
			default:
				log.Printf("Either you don't have access to bucket %v or another error occurred. "+
					"Here's what happened: %v\n", bucketName, err)
			}
		}
	}

	return &storage, err
}

// ResolveLink presigns bucket keys; absolute links pass through untouched.
func (s *PosterStorage) ResolveLink(ctx context.Context, rawLink string) (string, error) {
	if strings.HasPrefix(rawLink, "http://") || strings.HasPrefix(rawLink, "https://") {
		return rawLink, nil
	}

	key := rawLink
	if !strings.HasPrefix(key, s.prefix) {
		key = path.Join(s.prefix, key)
	}

	presignClient := s3.NewPresignClient(s.client)

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.linkTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign poster link: %w", err)
	}

	return req.URL, nil
}
