package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"fieldservice/internal/domain/entities"
	"fieldservice/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	catalogEntryKeyPrefix = "pricebook:entry:"
	catalogListKey        = "pricebook:list"
	defaultCatalogTTL     = 5 * time.Minute
)

// CatalogCache is a read-through redis cache in front of the pricebook
// repository. Redis failures are logged and the call falls through to the
// wrapped repository, so the cache never turns into an outage.
type CatalogCache struct {
	next   interfaces.ICatalogRepository
	client *redis.Client
	ttl    time.Duration
}

var _ interfaces.ICatalogRepository = (*CatalogCache)(nil)

func NewCatalogCache(next interfaces.ICatalogRepository, client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{next: next, client: client, ttl: ttl}
}

func (c *CatalogCache) GetByIDs(ctx context.Context, ids []string) (map[string]entities.CatalogEntry, error) {
	if len(ids) == 0 {
		return map[string]entities.CatalogEntry{}, nil
	}

	out := make(map[string]entities.CatalogEntry, len(ids))
	missing := ids

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = catalogEntryKeyPrefix + id
	}
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("[pricebook][cache] mget failed ids=%d err=%v", len(ids), err)
	} else {
		missing = missing[:0:0]
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var entry entities.CatalogEntry
			if err := json.Unmarshal([]byte(s), &entry); err != nil {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = entry
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.next.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for id, entry := range loaded {
		out[id] = entry
		if b, err := json.Marshal(entry); err == nil {
			pipe.Set(ctx, catalogEntryKeyPrefix+id, b, c.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[pricebook][cache] fill failed ids=%d err=%v", len(loaded), err)
	}
	return out, nil
}

func (c *CatalogCache) List(ctx context.Context) ([]entities.CatalogEntry, error) {
	s, err := c.client.Get(ctx, catalogListKey).Result()
	switch {
	case err == nil:
		var entries []entities.CatalogEntry
		if err := json.Unmarshal([]byte(s), &entries); err == nil {
			return entries, nil
		}
	case !errors.Is(err, redis.Nil):
		log.Printf("[pricebook][cache] list get failed err=%v", err)
	}

	entries, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(entries); err == nil {
		if err := c.client.Set(ctx, catalogListKey, b, c.ttl).Err(); err != nil {
			log.Printf("[pricebook][cache] list fill failed err=%v", err)
		}
	}
	return entries, nil
}

// Put writes through and evicts the entry and the cached list.
func (c *CatalogCache) Put(ctx context.Context, entry entities.CatalogEntry) error {
	if err := c.next.Put(ctx, entry); err != nil {
		return err
	}
	if err := c.client.Del(ctx, catalogEntryKeyPrefix+entry.ID, catalogListKey).Err(); err != nil {
		log.Printf("[pricebook][cache] evict failed id=%s err=%v", entry.ID, err)
	}
	return nil
}
