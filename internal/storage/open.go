package storage

import (
	"fmt"
	"strings"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open builds the backend named by kind. path is used by the file and sqlite backends.
func Open(kind, path string, redisCfg RedisConfig) (Store, error) {
	switch strings.ToLower(kind) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendRedis:
		return NewRedisStore(redisCfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
}

// Close releases the backend if it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
