package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

// fakeRedis implementa solo Get/Set/Del sobre un mapa; el resto de Cmdable queda nil.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	down bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

var errDown = errors.New("dial tcp: connection refused")

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.down {
		return redis.NewStringResult("", errDown)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	if f.down {
		return redis.NewStatusResult("", errDown)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.down {
		return redis.NewIntResult(0, errDown)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// countingRepo cuenta las lecturas que llegan a la base.
type countingRepo struct {
	repository.BookRepository
	books map[int64]*entity.Book
	reads int
}

func (r *countingRepo) GetByID(_ context.Context, id int64) (*entity.Book, error) {
	r.reads++
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *countingRepo) Update(_ context.Context, b *entity.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *countingRepo) Delete(_ context.Context, id int64) error {
	delete(r.books, id)
	return nil
}

func newCache(t *testing.T) (*BookCache, *fakeRedis, *countingRepo) {
	t.Helper()
	repo := &countingRepo{books: map[int64]*entity.Book{
		7: {ID: 7, Title: "Rayuela", Price: decimal.RequireFromString("18.90"), ReleaseDate: time.Date(1963, 6, 28, 0, 0, 0, 0, time.UTC)},
	}}
	rdb := newFakeRedis()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return NewBookCache(repo, rdb, time.Minute, log), rdb, repo
}

func TestBookCache_SegundaLecturaVieneDeRedis(t *testing.T) {
	ctx := context.Background()
	cache, rdb, repo := newCache(t)

	b1, err := cache.GetByID(ctx, 7)
	require.NoError(t, err)
	b2, err := cache.GetByID(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.reads)
	assert.Equal(t, "Rayuela", b2.Title)
	assert.True(t, b1.Price.Equal(b2.Price))
	assert.Equal(t, time.Minute, rdb.ttl[bookKey(7)])
}

func TestBookCache_LibroInexistenteNoSeCachea(t *testing.T) {
	ctx := context.Background()
	cache, rdb, repo := newCache(t)

	b, err := cache.GetByID(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, b)
	_, _ = cache.GetByID(ctx, 404)
	assert.Equal(t, 2, repo.reads)
	assert.Empty(t, rdb.data)
}

func TestBookCache_UpdateYDeleteInvalidan(t *testing.T) {
	ctx := context.Background()
	cache, rdb, _ := newCache(t)

	_, err := cache.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Contains(t, rdb.data, bookKey(7))

	require.NoError(t, cache.Update(ctx, &entity.Book{ID: 7, Title: "Rayuela (ed. 2)"}))
	assert.NotContains(t, rdb.data, bookKey(7))

	b, err := cache.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Rayuela (ed. 2)", b.Title)

	require.NoError(t, cache.Delete(ctx, 7))
	assert.NotContains(t, rdb.data, bookKey(7))
}

func TestBookCache_RedisCaidoUsaLaBase(t *testing.T) {
	ctx := context.Background()
	cache, rdb, repo := newCache(t)
	rdb.down = true

	b, err := cache.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Rayuela", b.Title)
	assert.Equal(t, 1, repo.reads)

	assert.NoError(t, cache.Delete(ctx, 7))
}
