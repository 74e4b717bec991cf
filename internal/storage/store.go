package storage

import (
	"context"
	"strings"
)

// KeyValueStore 選位持久化的 get/set 介面
type KeyValueStore interface {
	// 讀取：key 不存在時回傳 apperrors.ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// 寫入：整筆覆蓋
	Set(ctx context.Context, key string, value string) error
}

// Namespaced prefixes every key so one backend can hold many client sessions.
type Namespaced struct {
	inner  KeyValueStore
	prefix string
}

func NewNamespaced(inner KeyValueStore, parts ...string) *Namespaced {
	return &Namespaced{inner: inner, prefix: strings.Join(parts, ":")}
}

func (n *Namespaced) key(key string) string {
	if n.prefix == "" {
		return key
	}
	return n.prefix + ":" + key
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key string, value string) error {
	return n.inner.Set(ctx, n.key(key), value)
}
