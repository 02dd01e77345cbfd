package storage

import (
	"bytes"
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Settings beschreibt einen S3-kompatiblen Endpunkt.
type S3Settings struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client erstellt einen S3-Client für einen beliebigen Endpunkt.
func NewS3Client(ctx context.Context, s S3Settings) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               s.Endpoint,
				SigningRegion:     s.Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadFile lädt eine Datei ins S3 hoch.
func UploadFile(ctx context.Context, client *s3.Client, bucket, key string, data []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

// ExpiredObjects liefert alle Objekte außer den keep neuesten.
func ExpiredObjects(objects []types.Object, keep int) []types.Object {
	if len(objects) <= keep {
		return nil
	}
	sorted := make([]types.Object, len(objects))
	copy(sorted, objects)
	sort.Slice(sorted, func(i, j int) bool {
		return aws.ToTime(sorted[i].LastModified).After(aws.ToTime(sorted[j].LastModified))
	})
	return sorted[keep:]
}

// RotateObjects löscht alles außer den keep neuesten Objekten eines Buckets
// und gibt die gelöschten Keys zurück.
func RotateObjects(ctx context.Context, client *s3.Client, bucket string, keep int) ([]string, error) {
	output, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, obj := range ExpiredObjects(output.Contents, keep) {
		if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(bucket),
			Key:    obj.Key,
		}); err != nil {
			return deleted, err
		}
		deleted = append(deleted, aws.ToString(obj.Key))
	}
	return deleted, nil
}
