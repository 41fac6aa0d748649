package golistview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSource pages a redis list whose elements are JSON-encoded T values.
// Feeds and timelines materialized into redis lists plug into a Controller
// directly through it.
//
// The source keeps its read position client-side and advances it with LRANGE;
// refresh rewinds to the head of the list. Like the other sources it fetches
// one element beyond the page size to detect the end of the list, so a list
// that grows between fetches keeps paging seamlessly.
type RedisSource[T any] struct {
	client   redis.UniversalClient
	key      string
	pageSize int
	pos      int64
	endList  bool
}

// NewRedisSource creates a source over the list stored at key with
// DefaultPageSize.
func NewRedisSource[T any](client redis.UniversalClient, key string) *RedisSource[T] {
	return &RedisSource[T]{
		client:   client,
		key:      key,
		pageSize: DefaultPageSize,
	}
}

// WithPageSize sets the page size, normalized via NormalizePageSize.
func (s *RedisSource[T]) WithPageSize(pageSize int) *RedisSource[T] {
	if s == nil {
		s = new(RedisSource[T])
	}

	s.pageSize = NormalizePageSize(pageSize)

	return s
}

// LoadPage - implements DataSource.
func (s *RedisSource[T]) LoadPage(ctx context.Context, refresh bool) ([]T, error) {
	if s.client == nil {
		return nil, fmt.Errorf("cannot load page: redis source has no client")
	}

	if refresh {
		s.pos = 0
		s.endList = false
	}

	// LRANGE bounds are inclusive; the extra element is the lookahead.
	raw, err := s.client.LRange(ctx, s.key, s.pos, s.pos+int64(s.pageSize)).Result()
	if err != nil {
		return nil, fmt.Errorf("cannot load page from redis list '%s': %w", s.key, err)
	}

	s.endList = len(raw) <= s.pageSize
	if !s.endList {
		raw = raw[:s.pageSize]
	}

	page := make([]T, 0, len(raw))
	for i, element := range raw {
		var item T
		err = json.Unmarshal([]byte(element), &item)
		if err != nil {
			return nil, fmt.Errorf("cannot decode element %d of redis list '%s': %w", s.pos+int64(i), s.key, err)
		}

		page = append(page, item)
	}

	s.pos += int64(len(page))

	return page, nil
}

// IsEndList - implements DataSource.
func (s *RedisSource[T]) IsEndList() bool {
	return s.endList
}

var _ DataSource[any] = (*RedisSource[any])(nil)
