package mediastore

import (
	"context"
	"io"
	"sync"

	"github.com/kuvashare/kuva/internal/pkg/env"
)

// Store persists uploaded photo media keyed by file name. The core only reacts
// to Put failure by aborting photo creation; everything else about media
// handling (encoding, resizing) is outside this service.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

var (
	store     Store
	storeErr  error
	storeOnce sync.Once
)

// Get returns the process-wide media store, chosen by MEDIA_STORE_DRIVER
// ("local" or "s3", default local).
func Get() (Store, error) {
	storeOnce.Do(func() {
		switch env.GetEnv("MEDIA_STORE_DRIVER", "local") {
		case "s3":
			cfg, err := LoadS3Config()
			if err != nil {
				storeErr = err
				return
			}
			store, storeErr = NewS3Store(cfg)
		default:
			store, storeErr = NewLocalStore(env.GetEnv("MEDIA_LOCAL_PATH", "./uploads"))
		}
	})
	return store, storeErr
}
