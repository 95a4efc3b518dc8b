package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bookstore-api/internal/domain/entity"
	"github.com/jhoicas/bookstore-api/internal/domain/repository"
	"github.com/jhoicas/bookstore-api/pkg/logger"
)

var _ repository.BookRepository = (*BookCache)(nil)

// BookCache envuelve un BookRepository con caché cache-aside para GetByID.
// Update y Delete borran la entrada; los listados siempre van a la base.
// Un fallo de Redis nunca rompe la lectura: se registra y se consulta la base.
type BookCache struct {
	repository.BookRepository
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewBookCache construye el decorador.
func NewBookCache(next repository.BookRepository, client redis.Cmdable, ttl time.Duration, log *logger.Logger) *BookCache {
	return &BookCache{BookRepository: next, client: client, ttl: ttl, log: log}
}

func bookKey(id int64) string {
	return fmt.Sprintf("bookstore:book:%d", id)
}

// GetByID busca primero en Redis; en un miss consulta la base y guarda el resultado.
// Los libros inexistentes no se cachean.
func (c *BookCache) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	if b, err := c.get(ctx, id); err == nil && b != nil {
		return b, nil
	} else if err != nil {
		c.log.Warn().Err(err).Int64("book_id", id).Msg("lectura de caché de libros")
	}

	b, err := c.BookRepository.GetByID(ctx, id)
	if err != nil || b == nil {
		return b, err
	}
	if err := c.set(ctx, b); err != nil {
		c.log.Warn().Err(err).Int64("book_id", id).Msg("escritura de caché de libros")
	}
	return b, nil
}

// Update persiste y luego invalida la entrada.
func (c *BookCache) Update(ctx context.Context, b *entity.Book) error {
	if err := c.BookRepository.Update(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

// Delete elimina y luego invalida la entrada.
func (c *BookCache) Delete(ctx context.Context, id int64) error {
	if err := c.BookRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *BookCache) get(ctx context.Context, id int64) (*entity.Book, error) {
	val, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var b entity.Book
	if err := json.Unmarshal(val, &b); err != nil {
		return nil, fmt.Errorf("decodificar libro en caché: %w", err)
	}
	return &b, nil
}

func (c *BookCache) set(ctx context.Context, b *entity.Book) error {
	val, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookKey(b.ID), val, c.ttl).Err()
}

func (c *BookCache) invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("book_id", id).Msg("invalidación de caché de libros")
	}
}
