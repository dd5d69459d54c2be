package loader

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	ers "github.com/CMSgov/edi834-app/edi834/errors"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/cenkalti/backoff/v4"
	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultMaxRetries = 3

// S3FileHandler reads payloads from S3. Transient failures are retried with
// exponential backoff; a missing bucket or key is not retried.
type S3FileHandler struct {
	Client     s3iface.S3API
	Logger     logrus.FieldLogger
	MaxRetries uint64
	// RetryInterval overrides the initial backoff interval when non-zero.
	RetryInterval time.Duration
}

func (handler *S3FileHandler) Load(ctx context.Context, path string) (string, error) {
	bucket, key, err := ParseS3Uri(path)
	if err != nil {
		handler.Logger.Errorf("Failed to parse S3 path: %s", err)
		return "", &ers.FileReadError{Path: path, Err: err}
	}

	handler.Logger.Infof("Downloading bucket %s, key %s", bucket, key)

	var body []byte
	download := func() error {
		out, err := handler.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFound(err) {
				return backoff.Permanent(&ers.FileNotFoundError{Path: path, Err: err})
			}
			return err
		}
		defer out.Body.Close()

		body, err = io.ReadAll(utfbom.SkipOnly(out.Body))
		return err
	}

	notify := func(err error, wait time.Duration) {
		handler.Logger.Warnf("Failed to download %s, retrying in %s: %s", path, wait, err)
	}

	if err := backoff.RetryNotify(download, handler.backOff(ctx), notify); err != nil {
		var notFound *ers.FileNotFoundError
		if errors.As(err, &notFound) {
			handler.Logger.Errorf("File %s not found", path)
			return "", notFound
		}
		handler.Logger.Errorf("Failed to download bucket %s, key %s: %s", bucket, key, err)
		return "", &ers.FileReadError{Path: path, Err: err}
	}

	handler.Logger.Infof("File downloaded: size=%d", len(body))
	return string(body), nil
}

func (handler *S3FileHandler) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	if handler.RetryInterval > 0 {
		eb.InitialInterval = handler.RetryInterval
	}

	retries := handler.MaxRetries
	if retries == 0 {
		retries = defaultMaxRetries
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx)
}

func isNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}
	return false
}

// ParseS3Uri splits s3://bucket/key into its bucket and key.
func ParseS3Uri(str string) (bucket string, key string, err error) {
	if !IsS3Path(str) {
		return "", "", fmt.Errorf("path %s does not start with %s", str, s3Scheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(str, s3Scheme), "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("path %s must name a bucket and a key", str)
	}

	return parts[0], parts[1], nil
}
