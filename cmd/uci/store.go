package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/discochess/uci/internal/codec/codecs"
	"github.com/discochess/uci/internal/stats"
	"github.com/discochess/uci/internal/store"
	"github.com/discochess/uci/internal/store/cachedstore"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy/expiring"
	"github.com/discochess/uci/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/uci/internal/store/cachedstore/memory"
	"github.com/discochess/uci/internal/store/diskstore"
	"github.com/discochess/uci/internal/store/gcsstore"
	"github.com/discochess/uci/internal/store/s3store"
)

// openStore opens the backend selected by the global flags.
func openStore(ctx context.Context) (store.Store, error) {
	if s3Bucket != "" && gcsBucket != "" {
		return nil, errors.New("--s3-bucket and --gcs-bucket are mutually exclusive")
	}

	c, err := codecs.ByName(codecName)
	if err != nil {
		return nil, err
	}

	switch {
	case s3Bucket != "":
		st, err := s3store.New(ctx, s3Bucket, c, s3store.WithPrefix(prefix))
		if err != nil {
			return nil, fmt.Errorf("opening S3 bucket: %w", err)
		}
		return st, nil
	case gcsBucket != "":
		st, err := gcsstore.New(ctx, gcsBucket, c, gcsstore.WithPrefix(prefix))
		if err != nil {
			return nil, fmt.Errorf("opening GCS bucket: %w", err)
		}
		return st, nil
	default:
		st, err := diskstore.New(dataDir, c)
		if err != nil {
			return nil, fmt.Errorf("opening data directory: %w", err)
		}
		return st, nil
	}
}

// withCache wraps st in an in-memory cache of size entries. A positive ttl
// also expires entries.
func withCache(st store.Store, size int, ttl time.Duration, collector stats.Collector) (*cachedstore.Store, error) {
	var (
		strategy cachestrategy.Strategy
		err      error
	)
	if ttl > 0 {
		strategy, err = expiring.New(size, ttl)
	} else {
		strategy, err = lru.New(size)
	}
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}
	return cachedstore.New(st, memory.New(strategy, collector)), nil
}
