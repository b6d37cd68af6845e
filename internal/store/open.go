package store

import (
	"context"
	"fmt"
)

// Open builds the backend named kind ("memory", "sqlite" or "redis").
func Open(ctx context.Context, kind, dbPath, redisAddr string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLite(dbPath)
	case "redis":
		return OpenRedis(ctx, redisAddr)
	}
	return nil, fmt.Errorf("unknown store %q", kind)
}
