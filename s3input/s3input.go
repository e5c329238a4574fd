// Package s3input builds aws-sdk-go-v2 S3 request inputs from slash3 URIs
// and turns list responses back into URIs. It never talks to S3 itself.
package s3input

import (
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jdillenkofer/slash3"
)

// ErrNoObjectKey is returned when an object operation is given a bucket root.
var ErrNoObjectKey = errors.New("uri does not address an object")

func objectKey(u slash3.Uri) (*string, error) {
	if u.Key().IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNoObjectKey, u)
	}
	return aws.String(u.Key().Key()), nil
}

func GetObject(u slash3.Uri) (*s3.GetObjectInput, error) {
	key, err := objectKey(u)
	if err != nil {
		return nil, err
	}
	return &s3.GetObjectInput{
		Bucket: aws.String(u.Bucket()),
		Key:    key,
	}, nil
}

func HeadObject(u slash3.Uri) (*s3.HeadObjectInput, error) {
	key, err := objectKey(u)
	if err != nil {
		return nil, err
	}
	return &s3.HeadObjectInput{
		Bucket: aws.String(u.Bucket()),
		Key:    key,
	}, nil
}

func DeleteObject(u slash3.Uri) (*s3.DeleteObjectInput, error) {
	key, err := objectKey(u)
	if err != nil {
		return nil, err
	}
	return &s3.DeleteObjectInput{
		Bucket: aws.String(u.Bucket()),
		Key:    key,
	}, nil
}

func PutObject(u slash3.Uri, body io.Reader) (*s3.PutObjectInput, error) {
	key, err := objectKey(u)
	if err != nil {
		return nil, err
	}
	return &s3.PutObjectInput{
		Bucket: aws.String(u.Bucket()),
		Key:    key,
		Body:   body,
	}, nil
}

// CopyObject builds a copy from src to dst. The copy source is written as
// bucket/key without URL encoding.
func CopyObject(src slash3.Uri, dst slash3.Uri) (*s3.CopyObjectInput, error) {
	if _, err := objectKey(src); err != nil {
		return nil, err
	}
	key, err := objectKey(dst)
	if err != nil {
		return nil, err
	}
	return &s3.CopyObjectInput{
		Bucket:     aws.String(dst.Bucket()),
		Key:        key,
		CopySource: aws.String(src.Bucket() + slash3.Delimiter + src.Key().Key()),
	}, nil
}

// ListObjectsV2 lists one level below prefix. A bucket root lists the top
// level of the bucket.
func ListObjectsV2(prefix slash3.Uri) *s3.ListObjectsV2Input {
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(prefix.Bucket()),
		Delimiter: aws.String(slash3.Delimiter),
	}
	if !prefix.Key().IsEmpty() {
		input.Prefix = aws.String(prefix.Key().Key())
	}
	return input
}

// Objects returns the URIs of the objects in a list response. A nil
// response has no objects.
func Objects(bucket string, output *s3.ListObjectsV2Output) ([]slash3.Uri, error) {
	if output == nil {
		return []slash3.Uri{}, nil
	}
	uris := make([]slash3.Uri, 0, len(output.Contents))
	for _, object := range output.Contents {
		u, err := slash3.ToUri(bucket, aws.ToString(object.Key))
		if err != nil {
			return nil, err
		}
		uris = append(uris, u)
	}
	return uris, nil
}

// CommonPrefixes returns the URIs of the common prefixes in a list
// response. A nil response has no prefixes.
func CommonPrefixes(bucket string, output *s3.ListObjectsV2Output) ([]slash3.Uri, error) {
	if output == nil {
		return []slash3.Uri{}, nil
	}
	uris := make([]slash3.Uri, 0, len(output.CommonPrefixes))
	for _, prefix := range output.CommonPrefixes {
		u, err := fromCommonPrefix(bucket, prefix)
		if err != nil {
			return nil, err
		}
		uris = append(uris, u)
	}
	return uris, nil
}

func fromCommonPrefix(bucket string, prefix types.CommonPrefix) (slash3.Uri, error) {
	return slash3.ToUri(bucket, aws.ToString(prefix.Prefix))
}
