package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/pkg/metrics"
)

// UseCase use case проверки занятости фиксированных слотов на дату.
// Проверка носит рекомендательный характер и слот не резервирует.
type UseCase struct {
	bookingRepo BookingRepository
	cache       AvailabilityCache
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// cache и metrics могут быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case проверки занятости слотов.
// Ошибка чтения бронирований не возвращается: ответ помечается как Known = false.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем занятость
	availability, cached := uc.check(ctx, req.Scope, req.Date)

	return &Response{
		Date:        availability.Date,
		Known:       availability.Known,
		Available:   availability.AvailableSlots(),
		Unavailable: availability.UnavailableSlots(),
		Cached:      cached,
	}, nil
}

// Check возвращает занятость слотов области на дату
func (uc *UseCase) Check(ctx context.Context, scope domain.BookingScope, date time.Time) domain.Availability {
	availability, _ := uc.check(ctx, scope, date)
	return availability
}

func (uc *UseCase) check(ctx context.Context, scope domain.BookingScope, date time.Time) (domain.Availability, bool) {
	day := domain.DateOf(date)
	scope.ExactDate = &day
	scope.Status = nil

	uc.logger.Info("CheckAvailability: company=%s, asset=%s, date=%s",
		scope.CompanyRef, assetLabel(scope), day.Format(domain.DateFormat))

	// 1. Пробуем кеш и запоминаем поколение даты до чтения хранилища
	var (
		generation int64
		cacheable  bool
	)
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, scope, day)
		switch {
		case err != nil:
			uc.logger.Warn("CheckAvailability: cache read failed: %v", err)
		case cached != nil:
			uc.observe(metrics.AvailabilityCacheHit)
			return *cached, true
		default:
			generation, err = uc.cache.Generation(ctx, scope, day)
			if err != nil {
				uc.logger.Warn("CheckAvailability: cache generation read failed: %v", err)
			} else {
				cacheable = true
			}
		}
	}

	// 2. Читаем бронирования области
	bookings, err := uc.bookingRepo.ListByScope(ctx, scope)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list bookings, availability unknown: %v", err)
		uc.observe(metrics.AvailabilityUnknown)
		return domain.UnknownAvailability(day), false
	}

	// 3. Собираем занятые слоты
	availability := domain.Availability{
		Date:        day,
		Known:       true,
		Unavailable: takenSlots(bookings, day),
	}
	uc.observe(metrics.AvailabilityKnown)

	// 4. Кладем в кеш, если дату не сбросили во время чтения
	if cacheable {
		if err := uc.cache.Set(ctx, scope, availability, generation); err != nil {
			uc.logger.Warn("CheckAvailability: cache write failed: %v", err)
		}
	}

	uc.logger.Info("CheckAvailability: %d of %d slots taken on %s",
		len(availability.Unavailable), len(domain.SlotCatalog()), day.Format(domain.DateFormat))

	return availability, false
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveAvailability(outcome)
	}
}

func assetLabel(scope domain.BookingScope) string {
	if scope.AssetRef == nil {
		return "*"
	}
	return *scope.AssetRef
}
