package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type Engine interface {
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type Cacher struct {
	engine Engine
}

func NewRedisCache(redisClient *redis.Client) *Cacher {
	return &Cacher{
		engine: &redisCache{
			redis: redisClient,
		},
	}
}

func deflate(uncompressed []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err := writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func inflate(compressed []byte) ([]byte, error) {
	buffer := bytes.NewReader(compressed)
	reader := flate.NewReader(buffer)
	defer reader.Close()

	var out bytes.Buffer
	_, err := out.ReadFrom(reader)
	if err != nil {
		return []byte{}, err
	}

	return out.Bytes(), nil
}

// Encode returns the exact payload Store writes for value.
func Encode(value any) ([]byte, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return deflate(bytes)
}

func (c *Cacher) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	compressed, err := Encode(value)
	if err != nil {
		return err
	}

	return c.engine.Store(ctx, key, compressed, ttl)
}

// Fetch returns ErrMiss when the key is absent, any other error means the cache is unusable.
func (c *Cacher) Fetch(ctx context.Context, key string, destination any) error {
	value, err := c.engine.Fetch(ctx, key)
	if err != nil {
		return err
	}

	if value == nil {
		return ErrMiss
	}

	uncompressed, err := inflate(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(uncompressed, destination)
}

func (c *Cacher) Delete(ctx context.Context, key string) error {
	return c.engine.Delete(ctx, key)
}
