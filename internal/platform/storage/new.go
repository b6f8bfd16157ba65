package storage

import (
	"context"
	"fmt"
)

// New builds the backend selected by cfg.
func New(ctx context.Context, cfg Config) (ImageStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case BackendGCS:
		store, err := NewGCSStore(ctx, cfg.Bucket, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendLocal:
		store, err := NewLocalStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown image backend %q", cfg.Backend)
	}
}
