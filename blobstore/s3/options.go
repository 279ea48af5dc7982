package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	prefix       string
	region       string
	client       Client
	uploadConfig UploadConfig
}

// Option configures New.
type Option func(*options)

// WithPrefix sets the key prefix prepended to every blob name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRegion overrides the region from the default AWS configuration.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithClient uses an existing client instead of loading the AWS configuration.
func WithClient(client Client) Option {
	return func(o *options) { o.client = client }
}

// WithUploadConfig overrides the multipart upload settings.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *options) { o.uploadConfig = cfg }
}

// New creates a Store for bucket. Unless WithClient is given, the client is
// built from the default AWS configuration chain (environment, shared
// config files, instance roles).
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	if bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	o := options{uploadConfig: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.client == nil {
		var loadOpts []func(*config.LoadOptions) error
		if o.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(o.region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("s3: load aws config: %w", err)
		}
		o.client = s3.NewFromConfig(cfg)
	}

	return newStore(o.client, bucket, o.prefix, o.uploadConfig), nil
}
