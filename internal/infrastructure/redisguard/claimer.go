// Package redisguard reclama referencias de transacción en Redis con SETNX
// para cerrar la ventana entre la consulta de idempotencia y la primera
// escritura cuando hay varias réplicas del servicio.
package redisguard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Esencia-api/internal/application/inventory"
)

const keyPrefix = "esencia:claim:"

var _ inventory.ReferenceClaimer = (*Claimer)(nil)

// Claimer implementa ReferenceClaimer sobre go-redis.
type Claimer struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClaimer construye el claimer. Un ttl de cero usa 5 minutos, margen de
// sobra para el lote más lento antes de que el claim caduque solo.
func NewClaimer(client *redis.Client, ttl time.Duration) *Claimer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Claimer{client: client, ttl: ttl}
}

// Claim intenta tomar la llave. Devuelve false si otra réplica la tiene.
func (c *Claimer) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := c.client.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

// Release libera la llave al terminar el lote.
func (c *Claimer) Release(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
