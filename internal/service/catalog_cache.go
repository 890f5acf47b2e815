package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CatalogCacheStore holds rendered public catalog payloads. Entries live in
// namespaces so one content mutation can drop every dependent view.
type CatalogCacheStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	InvalidateNamespace(ctx context.Context, namespace string) error
}

type NoopCatalogCacheStore struct{}

func NewNoopCatalogCacheStore() *NoopCatalogCacheStore { return &NoopCatalogCacheStore{} }

func (s *NoopCatalogCacheStore) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (s *NoopCatalogCacheStore) Set(context.Context, string, string, []byte, time.Duration) error {
	return nil
}

func (s *NoopCatalogCacheStore) InvalidateNamespace(context.Context, string) error { return nil }

// LRUCatalogCacheStore is the in-process store used when Redis is off. The
// LRU applies one TTL to every entry; the per-call ttl is ignored.
type LRUCatalogCacheStore struct {
	lru *expirable.LRU[string, []byte]
}

func NewLRUCatalogCacheStore(size int, ttl time.Duration) *LRUCatalogCacheStore {
	if size <= 0 {
		size = 64
	}
	return &LRUCatalogCacheStore{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *LRUCatalogCacheStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	v, ok := s.lru.Get(lruKey(namespace, key))
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *LRUCatalogCacheStore) Set(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.lru.Add(lruKey(namespace, key), append([]byte(nil), value...))
	return nil
}

func (s *LRUCatalogCacheStore) InvalidateNamespace(_ context.Context, namespace string) error {
	prefix := namespace + "\x00"
	for _, k := range s.lru.Keys() {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			s.lru.Remove(k)
		}
	}
	return nil
}

func lruKey(namespace, key string) string { return namespace + "\x00" + key }
