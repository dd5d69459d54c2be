package loader

import (
	"github.com/CMSgov/edi834-app/edi834/utils"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/ccoveille/go-safecast"
)

const defaultRegion = "us-east-1"

// Makes this easily mockable for testing
var newSession = session.NewSession

type S3Config struct {
	Region        string
	Endpoint      string
	AssumeRoleArn string
	MaxRetries    uint64
}

// S3ConfigFromEnv reads the S3 settings. A negative retry count falls back to the default.
func S3ConfigFromEnv() S3Config {
	retries, err := safecast.ToUint64(utils.GetEnvInt("EDI834_S3_MAX_RETRIES", defaultMaxRetries))
	if err != nil {
		retries = defaultMaxRetries
	}

	return S3Config{
		Region:        utils.FromEnv("EDI834_S3_REGION", defaultRegion),
		Endpoint:      utils.FromEnv("EDI834_S3_ENDPOINT", ""),
		AssumeRoleArn: utils.FromEnv("EDI834_S3_ASSUME_ROLE_ARN", ""),
		MaxRetries:    retries,
	}
}

// NewS3Client returns an S3 client, assuming cfg.AssumeRoleArn when it is set.
// A custom endpoint switches to path-style addressing for local S3 stand-ins.
func NewS3Client(cfg S3Config) (*s3.S3, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	config := aws.Config{
		Region: aws.String(region),
	}

	if cfg.Endpoint != "" {
		config.S3ForcePathStyle = aws.Bool(true)
		config.Endpoint = aws.String(cfg.Endpoint)
	}

	if cfg.AssumeRoleArn != "" {
		base := session.Must(newSession())
		config.Credentials = stscreds.NewCredentials(base, cfg.AssumeRoleArn)
	}

	sess, err := newSession(&config)
	if err != nil {
		return nil, err
	}

	return s3.New(sess), nil
}
