package photos

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectGetter is the subset of *s3.Client used here.
type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// S3Source reads photos from S3-compatible storage (MinIO included).
// The client is built on first use.
type S3Source struct {
	opts S3Options

	once   sync.Once
	client objectGetter
	err    error
}

func NewS3Source(opts S3Options) *S3Source {
	return &S3Source{opts: opts}
}

func (s *S3Source) getClient(ctx context.Context) (objectGetter, error) {
	s.once.Do(func() {
		if s.opts.AccessKey == "" || s.opts.SecretKey == "" {
			s.err = fmt.Errorf("%w: s3 credentials missing", ErrNotConfigured)
			return
		}

		region := s.opts.Region
		if region == "" {
			region = "us-east-1"
		}

		cfg, err := loadDefaultAWSConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.opts.AccessKey,
				s.opts.SecretKey,
				"",
			)),
		)
		if err != nil {
			s.err = fmt.Errorf("load s3 config: %w", err)
			return
		}

		s.client = newS3Client(cfg, func(o *s3.Options) {
			if s.opts.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.opts.Endpoint)
				o.UsePathStyle = true
			}
		})
	})
	return s.client, s.err
}

// Open fetches s3://bucket/key.
func (s *S3Source) Open(ctx context.Context, ref string) (string, io.ReadCloser, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return "", nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("get s3 object %s/%s: %w", bucket, key, err)
	}
	return path.Base(key), out.Body, nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("parse s3 reference: %w", err)
	}
	if !strings.EqualFold(u.Scheme, "s3") {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 reference %q must be s3://bucket/key", ref)
	}
	return u.Host, key, nil
}
