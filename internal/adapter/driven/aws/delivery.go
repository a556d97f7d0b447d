package aws

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alexlux58/AWS-ALERTING/internal/domain/entity"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository implements repository.ArchiveRepository.
type S3Repository struct {
	client S3API
}

// NewS3Repository wraps an S3 client.
func NewS3Repository(client S3API) *S3Repository {
	return &S3Repository{client: client}
}

// Put uploads an object with AES256 server-side encryption.
func (r *S3Repository) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(body),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3Types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("error uploading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESRepository implements repository.MailRepository.
type SESRepository struct {
	client SESAPI
}

// NewSESRepository wraps an SES client.
func NewSESRepository(client SESAPI) *SESRepository {
	return &SESRepository{client: client}
}

// Send delivers the HTML body with its plain-text alternative.
func (r *SESRepository) Send(ctx context.Context, email entity.Email) (string, error) {
	result, err := r.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(email.From),
		Destination: &sesTypes.Destination{ToAddresses: email.To},
		Message: &sesTypes.Message{
			Subject: &sesTypes.Content{Data: aws.String(email.Subject), Charset: aws.String(charsetUTF8)},
			Body: &sesTypes.Body{
				Html: &sesTypes.Content{Data: aws.String(email.HTMLBody), Charset: aws.String(charsetUTF8)},
				Text: &sesTypes.Content{Data: aws.String(email.TextBody), Charset: aws.String(charsetUTF8)},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error sending email to %v: %w", email.To, err)
	}
	messageID := aws.ToString(result.MessageId)
	if messageID == "" {
		messageID = "unknown"
	}
	return messageID, nil
}

// CloudWatchAPI is the subset of the CloudWatch client used here.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchRepository implements repository.MetricsRepository.
type CloudWatchRepository struct {
	client    CloudWatchAPI
	namespace string
	enabled   bool
	now       func() time.Time
}

// NewCloudWatchRepository wraps a CloudWatch client. A disabled repository drops every data point.
func NewCloudWatchRepository(client CloudWatchAPI, namespace string, enabled bool) *CloudWatchRepository {
	return &CloudWatchRepository{client: client, namespace: namespace, enabled: enabled, now: time.Now}
}

// PutMetric publishes one data point in the configured namespace.
func (r *CloudWatchRepository) PutMetric(ctx context.Context, name string, value float64, unit string) error {
	if !r.enabled {
		return nil
	}

	_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(r.namespace),
		MetricData: []cwTypes.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       cwTypes.StandardUnit(unit),
				Timestamp:  aws.Time(r.now().UTC()),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("error putting metric %s/%s: %w", r.namespace, name, err)
	}
	return nil
}
