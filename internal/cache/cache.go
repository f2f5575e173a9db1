package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/kamaubrian/customerhub-backend/internal/model"
)

const (
	customerKeyPrefix = "customer:" // String prefix: customer:{id} -> JSON-encoded customer
	customerTTL       = 5 * time.Minute
)

// CustomerCache is a read-through cache in front of the customers table.
// A nil *CustomerCache is valid and disables caching.
type CustomerCache struct {
	Client *redis.Client
	Ctx    context.Context // Base context
}

// NewCustomerCache creates a cache backed by the given Redis client
func NewCustomerCache(client *redis.Client) *CustomerCache {
	return &CustomerCache{
		Client: client,
		Ctx:    context.Background(), // Use a background context as base
	}
}

// Helper to generate the customer cache key
func getCustomerKey(id int) string {
	return fmt.Sprintf("%s%d", customerKeyPrefix, id)
}

// Get returns the cached customer, or nil on miss
func (c *CustomerCache) Get(id int) (*model.Customer, error) {
	if c == nil || c.Client == nil {
		return nil, nil
	}

	data, err := c.Client.Get(c.Ctx, getCustomerKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		log.Printf("Error getting customer %d from cache: %v", id, err)
		return nil, fmt.Errorf("failed to get customer from Redis: %w", err)
	}

	var cust model.Customer
	if err := json.Unmarshal([]byte(data), &cust); err != nil {
		// Corrupt entry, drop it
		c.Client.Del(c.Ctx, getCustomerKey(id))
		return nil, nil
	}
	return &cust, nil
}

// Set stores the customer for the cache TTL
func (c *CustomerCache) Set(cust *model.Customer) error {
	if c == nil || c.Client == nil || cust == nil {
		return nil
	}

	data, err := json.Marshal(cust)
	if err != nil {
		return err
	}

	if err := c.Client.Set(c.Ctx, getCustomerKey(cust.ID), data, customerTTL).Err(); err != nil {
		log.Printf("Error caching customer %d: %v", cust.ID, err)
		return fmt.Errorf("failed to cache customer in Redis: %w", err)
	}
	return nil
}

// Invalidate removes the customer from the cache (after update/delete)
func (c *CustomerCache) Invalidate(id int) error {
	if c == nil || c.Client == nil {
		return nil
	}

	if err := c.Client.Del(c.Ctx, getCustomerKey(id)).Err(); err != nil {
		log.Printf("Error invalidating customer %d: %v", id, err)
		return fmt.Errorf("failed to invalidate customer in Redis: %w", err)
	}
	return nil
}
