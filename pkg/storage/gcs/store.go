// Copyright © 2018 One Concern

// Package gcs implements a Store on a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"io"

	gcsStorage "cloud.google.com/go/storage"
	"github.com/oneconcern/bommon/pkg/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type gcs struct {
	client         *gcsStorage.Client
	readOnlyClient *gcsStorage.Client
	bucket         string
	l              *zap.Logger
}

// New builds a store on a GCS bucket.
//
// When credentialFile is empty, the default application credentials apply.
func New(ctx context.Context, bucket, credentialFile string, opts ...Option) (storage.Store, error) {
	googleStore := &gcs{
		bucket: bucket,
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(googleStore)
	}

	var err error
	googleStore.readOnlyClient, err = gcsStorage.NewClient(ctx, clientOptions(credentialFile, gcsStorage.ScopeReadOnly)...)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	googleStore.client, err = gcsStorage.NewClient(ctx, clientOptions(credentialFile, gcsStorage.ScopeFullControl)...)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return googleStore, nil
}

func clientOptions(credentialFile, scope string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(scope)}
	if credentialFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialFile))
	}
	return opts
}

func (g *gcs) String() string {
	return "gcs://" + g.bucket
}

func (g *gcs) Has(ctx context.Context, objectName string) (bool, error) {
	_, err := g.readOnlyClient.Bucket(g.bucket).Object(objectName).Attrs(ctx)
	if err != nil {
		if err == gcsStorage.ErrObjectNotExist {
			return false, nil
		}
		return false, toSentinelErrors(err)
	}
	return true, nil
}

func (g *gcs) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	objectReader, err := g.readOnlyClient.Bucket(g.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return objectReader, nil
}

func (g *gcs) Put(ctx context.Context, objectName string, reader io.Reader, exclusive storage.NewKey) error {
	object := g.client.Bucket(g.bucket).Object(objectName)
	if exclusive {
		object = object.If(gcsStorage.Conditions{DoesNotExist: true})
	}
	writer := object.NewWriter(ctx)
	if _, err := io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return toSentinelErrors(err)
	}
	return toSentinelErrors(writer.Close())
}

func (g *gcs) Delete(ctx context.Context, objectName string) error {
	err := g.client.Bucket(g.bucket).Object(objectName).Delete(ctx)
	if err == gcsStorage.ErrObjectNotExist {
		return nil
	}
	return toSentinelErrors(err)
}

func (g *gcs) Keys(ctx context.Context) ([]string, error) {
	return g.list(ctx, &gcsStorage.Query{}, "", 0)
}

func (g *gcs) list(ctx context.Context, query *gcsStorage.Query, token string, count int) ([]string, error) {
	var keys []string
	it := g.readOnlyClient.Bucket(g.bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, toSentinelErrors(err)
		}
		name := attrs.Name
		if name == "" {
			name = attrs.Prefix
		}
		if token != "" && name <= token {
			continue
		}
		keys = append(keys, name)
		if count > 0 && len(keys) > count {
			break
		}
	}
	return keys, nil
}

func (g *gcs) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) ([]string, string, error) {
	if count <= 0 {
		count = storage.DefaultPageSize
	}
	query := &gcsStorage.Query{Prefix: prefix, Delimiter: delimiter}
	if err := query.SetAttrSelection([]string{"Name"}); err != nil {
		return nil, "", err
	}
	keys, err := g.list(ctx, query, token, count)
	if err != nil {
		return nil, "", err
	}
	if len(keys) > count {
		keys = keys[:count]
		return keys, keys[count-1], nil
	}
	return keys, "", nil
}

func (g *gcs) Clear(ctx context.Context) error {
	keys, err := g.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		g.l.Debug("clearing object", zap.String("key", key))
		if err := g.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
