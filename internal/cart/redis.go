package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/hakvenlong/e-commerce-Final/internal/domain"
)

// RedisStore implements Store on a redis list-per-session key. Carts are
// ephemeral, so they expire with the key TTL.
type RedisStore struct {
	client  *redis.Client
	baseTTL time.Duration

	// serializes read-modify-write cycles; a session's cart is owned by
	// this single process
	mu sync.Mutex
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:  client,
		baseTTL: 24 * time.Hour,
	}
}

type redisLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	ImageURL  string `json:"image_url"`
	Price     string `json:"price"`
	Currency  string `json:"currency"`
	Quantity  int32  `json:"quantity"`
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return s.load(ctx, sessionID)
}

func (s *RedisStore) Add(ctx context.Context, sessionID string, line domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return s.save(ctx, sessionID, lines)
}

func (s *RedisStore) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return s.save(ctx, sessionID, lines)
		}
	}
	return ErrLineNotFound
}

func (s *RedisStore) Remove(ctx context.Context, sessionID string, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ProductID == productID {
			return s.save(ctx, sessionID, append(lines[:i], lines[i+1:]...))
		}
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	data, err := s.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var raw []redisLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(raw))
	for _, r := range raw {
		amount, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid cached price: %w", err)
		}
		cur, err := currency.ParseISO(r.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid cached currency: %w", err)
		}
		lines = append(lines, domain.CartLine{
			ProductID: r.ProductID,
			Name:      r.Name,
			Brand:     r.Brand,
			ImageURL:  r.ImageURL,
			UnitPrice: domain.NewMoney(amount, cur),
			Quantity:  r.Quantity,
		})
	}
	return lines, nil
}

func (s *RedisStore) save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	if len(lines) == 0 {
		return s.Clear(ctx, sessionID)
	}

	raw := make([]redisLine, 0, len(lines))
	for _, l := range lines {
		raw = append(raw, redisLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Brand:     l.Brand,
			ImageURL:  l.ImageURL,
			Price:     l.UnitPrice.Amount.String(),
			Currency:  l.UnitPrice.Currency.String(),
			Quantity:  l.Quantity,
		})
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cacheKey(sessionID), data, s.baseTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
