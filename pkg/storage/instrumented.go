// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

// Instrument decorates a store with tracing spans and debug logs for every call.
//
// A nil tracer falls back to the global opentracing tracer (a no-op unless one is registered).
func Instrument(tr opentracing.Tracer, logger *zap.Logger, store Store) Store {
	if tr == nil {
		tr = opentracing.GlobalTracer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		tr:    tr,
		store: store,
		l:     logger.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	tr    opentracing.Tracer
	l     *zap.Logger
}

func (i *instrumentedStore) opName(name string) string {
	return strings.Join([]string{"storage", i.store.String(), name}, ".")
}

func (i *instrumentedStore) startSpan(ctx context.Context, name string, key string) opentracing.Span {
	var span opentracing.Span
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		span = i.tr.StartSpan(i.opName(name), opentracing.ChildOf(parent.Context()))
	} else {
		span = i.tr.StartSpan(i.opName(name))
	}
	if key != "" {
		span.SetTag("key", key)
	}
	i.l.Debug("storage "+name, zap.String("key", key))
	return span
}

func finish(span opentracing.Span, err error) {
	if err != nil {
		span.SetTag("error", true)
		span.LogKV("message", err.Error())
	}
	span.Finish()
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (has bool, err error) {
	span := i.startSpan(ctx, "Has", key)
	defer func() { finish(span, err) }()

	return i.store.Has(ctx, key)
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (rdr io.ReadCloser, err error) {
	span := i.startSpan(ctx, "Get", key)
	defer func() { finish(span, err) }()

	return i.store.Get(ctx, key)
}

func (i *instrumentedStore) Put(ctx context.Context, key string, source io.Reader, exclusive NewKey) (err error) {
	span := i.startSpan(ctx, "Put", key)
	defer func() { finish(span, err) }()

	return i.store.Put(ctx, key, source, exclusive)
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) (err error) {
	span := i.startSpan(ctx, "Delete", key)
	defer func() { finish(span, err) }()

	return i.store.Delete(ctx, key)
}

func (i *instrumentedStore) Keys(ctx context.Context) (keys []string, err error) {
	span := i.startSpan(ctx, "Keys", "")
	defer func() { finish(span, err) }()

	return i.store.Keys(ctx)
}

func (i *instrumentedStore) KeysPrefix(ctx context.Context, token, prefix, delimiter string, count int) (keys []string, next string, err error) {
	span := i.startSpan(ctx, "KeysPrefix", prefix)
	defer func() { finish(span, err) }()

	return i.store.KeysPrefix(ctx, token, prefix, delimiter, count)
}

func (i *instrumentedStore) Clear(ctx context.Context) (err error) {
	span := i.startSpan(ctx, "Clear", "")
	defer func() { finish(span, err) }()

	return i.store.Clear(ctx)
}
