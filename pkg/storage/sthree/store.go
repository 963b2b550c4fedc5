// Package sthree implements a Store on an AWS S3 (or S3-compatible) bucket.
package sthree

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/oneconcern/bommon/pkg/storage"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"go.uber.org/zap"
)

// Option configures the S3 store
type Option func(*s3FS)

// Bucket to store objects into
func Bucket(bucket string) Option {
	return func(fs *s3FS) {
		fs.bucket = bucket
	}
}

// AWSConfig overrides the default session configuration (region, endpoint, credentials)
func AWSConfig(cfg *aws.Config) Option {
	return func(fs *s3FS) {
		fs.awsConfig = cfg
	}
}

// Logger specifies a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(fs *s3FS) {
		if logger != nil {
			fs.l = logger
		}
	}
}

// New builds a store on an S3 bucket
func New(option Option, options ...Option) (storage.Store, error) {
	fs := &s3FS{l: zap.NewNop()}
	option(fs)
	for _, apply := range options {
		apply(fs)
	}
	if fs.bucket == "" {
		return nil, status.ErrInvalidResource.Wrapf("s3 bucket name is required")
	}

	sess, err := session.NewSession(fs.awsConfig)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	fs.s3 = s3.New(sess)
	fs.uploader = s3manager.NewUploaderWithClient(fs.s3)
	return fs, nil
}

type s3FS struct {
	bucket    string
	awsConfig *aws.Config
	s3        *s3.S3
	uploader  *s3manager.Uploader
	l         *zap.Logger
}

func (s *s3FS) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.s3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		err = toSentinelErrors(err)
		if filterErrNotExists(err) == nil {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *s3FS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return obj.Body, nil
}

// Put uploads an object. S3 has no conditional put: IfNotPresent is checked with a HEAD
// request first, which is not atomic.
func (s *s3FS) Put(ctx context.Context, key string, rdr io.Reader, exclusive storage.NewKey) error {
	if exclusive {
		has, err := s.Has(ctx, key)
		if err != nil {
			return err
		}
		if has {
			return status.ErrExists.Wrapf("%s", key)
		}
	}
	body, err := ioutil.ReadAll(rdr)
	if err != nil {
		return err
	}
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	return toSentinelErrors(err)
}

func (s *s3FS) Delete(ctx context.Context, key string) error {
	_, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return filterErrNotExists(toSentinelErrors(err))
}

func (s *s3FS) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	eachPage := func(page *s3.ListObjectsV2Output, more bool) bool {
		for _, obj := range page.Contents {
			if key := aws.StringValue(obj.Key); key != "" {
				keys = append(keys, key)
			}
		}
		return true
	}
	err := s.s3.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(s.bucket)}, eachPage)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return keys, nil
}

func (s *s3FS) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	if count <= 0 {
		count = storage.DefaultPageSize
	}
	params := &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(int64(count)),
	}
	if delimiter != "" {
		params.Delimiter = aws.String(delimiter)
	}
	if token != "" {
		params.StartAfter = aws.String(token)
	}

	page, err := s.s3.ListObjectsV2WithContext(ctx, params)
	if err != nil {
		return nil, "", toSentinelErrors(err)
	}
	keys := make([]string, 0, len(page.Contents)+len(page.CommonPrefixes))
	for _, obj := range page.Contents {
		keys = append(keys, aws.StringValue(obj.Key))
	}
	for _, common := range page.CommonPrefixes {
		keys = append(keys, aws.StringValue(common.Prefix))
	}
	sort.Strings(keys)

	if aws.BoolValue(page.IsTruncated) && len(keys) > 0 {
		s.l.Debug("truncated listing", zap.String("prefix", prefix), zap.Int("count", len(keys)))
		return keys, keys[len(keys)-1], nil
	}
	return keys, "", nil
}

func (s *s3FS) Clear(ctx context.Context) error {
	params := &s3.ListObjectsInput{Bucket: aws.String(s.bucket)}
	del := s3manager.NewBatchDeleteWithClient(s.s3)
	return toSentinelErrors(del.Delete(ctx, s3manager.NewDeleteListIterator(s.s3, params)))
}

func (s *s3FS) String() string {
	return "s3://" + s.bucket
}
