package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/oneconcern/bommon/pkg/bomstore"
	"github.com/oneconcern/bommon/pkg/diff"
	"github.com/oneconcern/bommon/pkg/dlogger"
	"github.com/oneconcern/bommon/pkg/storage"
	"github.com/oneconcern/bommon/pkg/storage/gcs"
	"github.com/oneconcern/bommon/pkg/storage/kv"
	"github.com/oneconcern/bommon/pkg/storage/localfs"
	"github.com/oneconcern/bommon/pkg/storage/status"
	"github.com/oneconcern/bommon/pkg/storage/sthree"
	"github.com/oneconcern/bommon/pkg/tree"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// closers release the stores opened by the current command
var closers []func() error

func closeStores() error {
	var err error
	for _, closer := range closers {
		err = multierr.Append(err, closer())
	}
	closers = nil
	return err
}

func paramsToLogger(flags flagsT) (*zap.Logger, error) {
	return dlogger.GetLogger(flags.root.logLevel, dlogger.Console())
}

// openStore builds a storage.Store from its URL. A URL without scheme is a local directory.
func openStore(ctx context.Context, url string, flags flagsT, logger *zap.Logger) (storage.Store, error) {
	scheme, location := "file", url
	if parts := strings.SplitN(url, "://", 2); len(parts) == 2 {
		scheme, location = parts[0], parts[1]
	}
	if location == "" {
		return nil, status.ErrInvalidResource.Wrapf("empty location in store URL %q", url)
	}

	var (
		store storage.Store
		err   error
	)
	switch scheme {
	case "file":
		if err = os.MkdirAll(location, 0700); err != nil {
			return nil, err
		}
		store = localfs.New(afero.NewBasePathFs(afero.NewOsFs(), location))
	case "badger":
		var closer func() error
		store, closer, err = kv.New(location, kv.Logger(logger))
		if err != nil {
			return nil, err
		}
		closers = append(closers, closer)
	case "gs":
		store, err = gcs.New(ctx, location, flags.root.credential, gcs.Logger(logger))
	case "s3":
		store, err = sthree.New(sthree.Bucket(location), sthree.Logger(logger))
	default:
		return nil, status.ErrUnsupportedScheme.Wrapf("%s", url)
	}
	if err != nil {
		return nil, err
	}
	return storage.Instrument(nil, logger, store), nil
}

// paramsToBOMStore opens the configuration store, and the blob store when it is a different one
func paramsToBOMStore(ctx context.Context, flags flagsT) (*bomstore.Store, *zap.Logger, error) {
	logger, err := paramsToLogger(flags)
	if err != nil {
		return nil, nil, err
	}
	meta, err := openStore(ctx, flags.root.store, flags, logger)
	if err != nil {
		return nil, nil, err
	}
	opts := []bomstore.Option{bomstore.Logger(logger)}
	if flags.root.blobs != "" && flags.root.blobs != flags.root.store {
		blobs, err := openStore(ctx, flags.root.blobs, flags, logger)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, bomstore.Blobs(blobs))
	}
	return bomstore.New(meta, opts...), logger, nil
}

func treeOptions(flags flagsT, logger *zap.Logger) []tree.Option {
	return []tree.Option{tree.Logger(logger), tree.Preview(flags.root.preview)}
}

// loadBOM loads the BOM designated by the --project, --variant and --bom flags
func loadBOM(ctx context.Context, flags flagsT) (*tree.Tree, tree.Key, *bomstore.Store, error) {
	store, logger, err := paramsToBOMStore(ctx, flags)
	if err != nil {
		return nil, tree.Key{}, nil, err
	}
	t, root, err := tree.Load(ctx, store, flags.location.project, flags.location.variant, flags.bom.name, treeOptions(flags, logger)...)
	if err != nil {
		return nil, tree.Key{}, nil, err
	}
	return t, root, store, nil
}

func diffOptions(flags flagsT, store *bomstore.Store, logger *zap.Logger) ([]diff.Option, error) {
	opts := []diff.Option{
		diff.Variants(flags.diff.variants),
		diff.Libtypes(flags.diff.libtypes),
		diff.IgnoreConfigNames(flags.diff.ignoreConfigNames),
		diff.Concurrency(flags.root.concurrency),
		diff.Logger(logger),
	}
	if flags.diff.includeFiles {
		cache, err := diff.NewCache(store, flags.root.cacheSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, diff.IncludeFiles(cache))
	}
	return opts, nil
}
