package claimserver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
)

var ErrTokenTaken = errors.New("token already issued to another account")

// ClaimStore remembers which account each token was signed for, so the
// service never hands out two claims for one token.
type ClaimStore interface {
	// Reserve records account as the claimant of tokenID. Reserving the
	// same pair again succeeds; a different account gets ErrTokenTaken.
	Reserve(ctx context.Context, tokenID *big.Int, account common.Address) error
	Get(ctx context.Context, tokenID *big.Int) (common.Address, bool, error)
}

type MemoryStore struct {
	mu     sync.Mutex
	issued map[string]common.Address
}

var _ ClaimStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{issued: make(map[string]common.Address)}
}

func (m *MemoryStore) Reserve(_ context.Context, tokenID *big.Int, account common.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tokenID.String()
	if existing, ok := m.issued[key]; ok && existing != account {
		return fmt.Errorf("%w: token %s", ErrTokenTaken, key)
	}
	m.issued[key] = account
	return nil
}

func (m *MemoryStore) Get(_ context.Context, tokenID *big.Int) (common.Address, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.issued[tokenID.String()]
	return account, ok, nil
}

// RedisStore shares reservations between service replicas. Keys are
// <prefix><contract>:<tokenId>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ ClaimStore = (*RedisStore)(nil)

func NewRedisStore(addr, password string, db int, contract common.Address) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreWithClient(client, contract), nil
}

func NewRedisStoreWithClient(client *redis.Client, contract common.Address) *RedisStore {
	return &RedisStore{client: client, prefix: "babel:claim:" + contract.Hex() + ":"}
}

func (r *RedisStore) key(tokenID *big.Int) string {
	return r.prefix + tokenID.String()
}

func (r *RedisStore) Reserve(ctx context.Context, tokenID *big.Int, account common.Address) error {
	key := r.key(tokenID)
	ok, err := r.client.SetNX(ctx, key, account.Hex(), 0).Result()
	if err != nil {
		return fmt.Errorf("redis reserve failed: %w", err)
	}
	if ok {
		return nil
	}
	existing, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	if common.HexToAddress(existing) != account {
		return fmt.Errorf("%w: token %s", ErrTokenTaken, tokenID)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, tokenID *big.Int) (common.Address, bool, error) {
	existing, err := r.client.Get(ctx, r.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return common.Address{}, false, nil
	}
	if err != nil {
		return common.Address{}, false, fmt.Errorf("redis get failed: %w", err)
	}
	return common.HexToAddress(existing), true, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
