// Package redis stores short links as JSON documents in Redis.
//
// Layout, under a configurable prefix:
//
//	<prefix>link:<id>            JSON document, written once with SETNX
//	<prefix>link:<id>:redirects  integer counter, bumped with INCR
//	<prefix>links                set of every stored id
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Om-Mishra7/URL-Shortner/internal/core"
)

// DefaultPrefix namespaces every key this store writes.
const DefaultPrefix = "urlshorty:"

// incrIfExists bumps the counter only when the document exists, so a stray
// redirect can never create a counter without a record.
var incrIfExists = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
return redis.call('INCR', KEYS[2])
`)

// insertIfAbsent writes the document, its counter and the index entry in one
// step. Returns 0 without touching anything when the document already exists.
var insertIfAbsent = goredis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call('SET', KEYS[2], ARGV[2])
redis.call('SADD', KEYS[3], ARGV[3])
return 1
`)

type document struct {
	ID           string               `json:"url_id"`
	TargetURL    string               `json:"url"`
	CreatedAt    int64                `json:"created_at"`
	ExpiresAfter int64                `json:"expires_at"`
	Creator      core.CreatorMetadata `json:"created_by_user_metadata"`
}

// Store implements core.Store on a go-redis client.
type Store struct {
	rdb    *goredis.Client
	prefix string
}

// Open connects to the Redis server described by rawURL
// (redis://[:password@]host:port/db) and verifies it with PING.
func Open(ctx context.Context, rawURL string) (*Store, error) {
	opts, err := goredis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	s := New(goredis.NewClient(opts), DefaultPrefix)
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing client.
func New(rdb *goredis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) docKey(id string) string     { return s.prefix + "link:" + id }
func (s *Store) counterKey(id string) string { return s.prefix + "link:" + id + ":redirects" }
func (s *Store) indexKey() string            { return s.prefix + "links" }

// Close releases the client.
func (s *Store) Close() error { return s.rdb.Close() }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

// Insert writes the document, counter and index entry atomically. Returns
// core.ErrConflict if the id is taken.
func (s *Store) Insert(ctx context.Context, r *core.Record) error {
	doc, err := json.Marshal(document{
		ID:           r.ID,
		TargetURL:    r.TargetURL,
		CreatedAt:    r.CreatedAt,
		ExpiresAfter: r.ExpiresAfter,
		Creator:      r.Creator,
	})
	if err != nil {
		return err
	}
	keys := []string{s.docKey(r.ID), s.counterKey(r.ID), s.indexKey()}
	n, err := insertIfAbsent.Run(ctx, s.rdb, keys, string(doc), r.Redirects, r.ID).Int64()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrConflict
	}
	return nil
}

// Exists reports whether a document for id is stored.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.docKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID returns the record for id, or core.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id string) (*core.Record, error) {
	raw, err := s.rdb.Get(ctx, s.docKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	count, err := s.rdb.Get(ctx, s.counterKey(id)).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return nil, err
	}
	rec, err := decode(raw, count)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// IncrementRedirects atomically adds one to the counter of id.
func (s *Store) IncrementRedirects(ctx context.Context, id string) error {
	n, err := incrIfExists.Run(ctx, s.rdb, []string{s.docKey(id), s.counterKey(id)}).Int64()
	if err != nil {
		return err
	}
	if n < 0 {
		return core.ErrNotFound
	}
	return nil
}

// List returns every record in the index.
func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	ids, err := s.rdb.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		keys = append(keys, s.docKey(id))
	}
	for _, id := range ids {
		keys = append(keys, s.counterKey(id))
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]core.Record, 0, len(ids))
	for i := range ids {
		raw, ok := vals[i].(string)
		if !ok {
			continue // indexed but document gone
		}
		var count int64
		if c, ok := vals[len(ids)+i].(string); ok {
			count, err = strconv.ParseInt(c, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse redirect counter of %s: %w", ids[i], err)
			}
		}
		rec, err := decode(raw, count)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func decode(raw string, redirects int64) (core.Record, error) {
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return core.Record{}, fmt.Errorf("decode link document: %w", err)
	}
	return core.Record{
		ID:           doc.ID,
		TargetURL:    doc.TargetURL,
		CreatedAt:    doc.CreatedAt,
		ExpiresAfter: doc.ExpiresAfter,
		Redirects:    redirects,
		Creator:      doc.Creator,
	}, nil
}

var _ core.Store = (*Store)(nil)
