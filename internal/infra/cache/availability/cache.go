package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/types"
)

const (
	keyPrefix  = "availability:"
	defaultTTL = 2 * time.Minute

	// generationTTL должен превышать ttl записей
	generationTTL = 24 * time.Hour
)

// entry формат записи в Redis
type entry struct {
	Date        string   `json:"date"`
	Unavailable []string `json:"unavailable"`
}

// Cache кеш известной занятости слотов в Redis.
//
// Ключи:
//   - availability:<company>:asset:<asset>:<date> - занятость по объекту
//   - availability:<company>:company:<date> - занятость по всей компании
//   - availability:<company>:gen:<date> - поколение даты, растет при каждом сбросе
//
// Запись сохраняется, только если поколение не менялось с момента,
// когда читатель начал читать бронирования.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewCache создает кеш поверх клиента Redis. ttl <= 0 заменяется значением по умолчанию.
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func dateKey(date time.Time) string {
	return domain.DateOf(date).Format(domain.DateFormat)
}

func companyKey(companyRef string, date time.Time) string {
	return fmt.Sprintf("%s%s:company:%s", keyPrefix, companyRef, dateKey(date))
}

func assetKey(companyRef, assetRef string, date time.Time) string {
	return fmt.Sprintf("%s%s:asset:%s:%s", keyPrefix, companyRef, assetRef, dateKey(date))
}

func generationKey(companyRef string, date time.Time) string {
	return fmt.Sprintf("%s%s:gen:%s", keyPrefix, companyRef, dateKey(date))
}

func scopeKey(scope domain.BookingScope, date time.Time) string {
	if scope.AssetRef == nil {
		return companyKey(scope.CompanyRef, date)
	}
	return assetKey(scope.CompanyRef, *scope.AssetRef, date)
}

// Get возвращает закешированную занятость или nil, если записи нет
func (c *Cache) Get(ctx context.Context, scope domain.BookingScope, date time.Time) (*domain.Availability, error) {
	data, err := c.client.Get(ctx, scopeKey(scope, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get: %v", ErrCacheUnavailable, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}

	day, err := time.Parse(domain.DateFormat, e.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", ErrCorruptEntry, e.Date, err)
	}

	unavailable := make(map[types.TimeString]struct{}, len(e.Unavailable))
	for _, s := range e.Unavailable {
		slot, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q: %v", ErrCorruptEntry, s, err)
		}
		unavailable[slot] = struct{}{}
	}

	return &domain.Availability{
		Date:        domain.DateOf(day),
		Known:       true,
		Unavailable: unavailable,
	}, nil
}

// Generation возвращает текущее поколение даты компании.
// Читается до обращения к хранилищу и передается в Set.
func (c *Cache) Generation(ctx context.Context, scope domain.BookingScope, date time.Time) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(scope.CompanyRef, date)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: generation: %v", ErrCacheUnavailable, err)
	}
	return gen, nil
}

// Set сохраняет занятость с TTL, если поколение даты все еще равно generation.
// Устаревший снимок молча отбрасывается. Неизвестная занятость не кешируется.
func (c *Cache) Set(ctx context.Context, scope domain.BookingScope, a domain.Availability, generation int64) error {
	if !a.Known {
		return nil
	}

	slots := a.UnavailableSlots()
	e := entry{
		Date:        dateKey(a.Date),
		Unavailable: make([]string, len(slots)),
	}
	for i, s := range slots {
		e.Unavailable[i] = s.String()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}

	genKey := generationKey(scope.CompanyRef, a.Date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return ErrStaleEntry
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, scopeKey(scope, a.Date), data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleEntry), errors.Is(err, redis.TxFailedErr):
		// Между чтением бронирований и записью дату сбросили
		return nil
	default:
		return fmt.Errorf("%w: set: %v", ErrCacheUnavailable, err)
	}
}

// Invalidate поднимает поколение даты и удаляет занятость и по объекту, и по всей компании
func (c *Cache) Invalidate(ctx context.Context, companyRef, assetRef string, date time.Time) error {
	genKey := generationKey(companyRef, date)
	keys := []string{companyKey(companyRef, date)}
	if assetRef != "" {
		keys = append(keys, assetKey(companyRef, assetRef, date))
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: invalidate: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}
