// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps artifacts in a private S3-compatible bucket. It uses
// path-style addressing, which CEPH and MinIO require.
type S3Store struct {
	s3     *s3.Client
	bucket string
	now    Clock
}

// NewS3 creates an S3 artifact store. Returns (nil, nil) if endpoint or
// credentials are empty so the caller can fall back to local storage.
func NewS3(endpoint, region, accessKey, secretKey, bucket string) (*S3Store, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
		// Non-AWS implementations reject the default CRC trailers.
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	return &S3Store{s3: client, bucket: bucket, now: time.Now}, nil
}

// Save uploads data as assets/<userID>/<millis>-<fileName>.
func (c *S3Store) Save(ctx context.Context, data []byte, fileName, userID string) (File, error) {
	if err := validName(userID); err != nil {
		return File{}, err
	}
	if err := validName(fileName); err != nil {
		return File{}, err
	}

	name := uniqueName(c.now(), fileName)
	key := path.Join(userDir(userID), name)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return File{}, fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}

	slog.Info("asset saved", "user_id", userID, "file_name", name, "backend", "s3")
	return File{FilePath: key, FileName: name, FileSize: int64(len(data))}, nil
}

// Read downloads the object stored at filePath.
func (c *S3Store) Read(ctx context.Context, filePath string) ([]byte, error) {
	output, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("s3 download %s/%s: %w", c.bucket, filePath, ErrNotFound)
		}
		return nil, fmt.Errorf("s3 download %s/%s: %w", c.bucket, filePath, err)
	}
	defer output.Body.Close()
	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", c.bucket, filePath, err)
	}
	return data, nil
}

// Delete removes the object at filePath. S3 reports success for missing
// keys, so Delete never returns ErrNotFound.
func (c *S3Store) Delete(ctx context.Context, filePath string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(filePath),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, filePath, err)
	}
	slog.Info("asset deleted", "file_path", filePath, "backend", "s3")
	return nil
}

// List returns every artifact stored for userID.
func (c *S3Store) List(ctx context.Context, userID string) ([]File, error) {
	if err := validName(userID); err != nil {
		return nil, err
	}
	prefix := userDir(userID) + "/"

	var files []File
	p := s3.NewListObjectsV2Paginator(c.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list %s/%s: %w", c.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			files = append(files, File{
				FilePath:  key,
				FileName:  path.Base(key),
				FileSize:  aws.ToInt64(obj.Size),
				CreatedAt: aws.ToTime(obj.LastModified),
			})
		}
	}
	return files, nil
}
