package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DroneBookingService/internal/domain"
	"github.com/m04kA/SMC-DroneBookingService/internal/draft"
	"github.com/m04kA/SMC-DroneBookingService/internal/scheduling"
	"github.com/m04kA/SMC-DroneBookingService/pkg/metrics"
)

// UseCase use case для отправки черновика бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	contactRepo  ContactRepository
	catalog      Catalog
	availability AvailabilityService
	cache        AvailabilityCache
	sessions     SessionProvider
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	scope        domain.AvailabilityScope
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil, тогда сброс занятости пропускается.
func NewUseCase(
	bookingRepo BookingRepository,
	contactRepo ContactRepository,
	catalog Catalog,
	availability AvailabilityService,
	cache AvailabilityCache,
	sessions SessionProvider,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	scope domain.AvailabilityScope,
	logger Logger,
) *UseCase {
	if !scope.IsValid() {
		scope = domain.AvailabilityScopeAsset
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		contactRepo:  contactRepo,
		catalog:      catalog,
		availability: availability,
		cache:        cache,
		sessions:     sessions,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		scope:        scope,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NewDraft создает пустой черновик для объекта, привязанный к компании сессии
func (uc *UseCase) NewDraft(asset domain.AssetRef, companyRef string) *draft.Draft {
	checker := &scopedChecker{
		availability: uc.availability,
		scope:        uc.scope.For(companyRef, asset.ID),
	}
	return draft.New(asset, uc.catalog, checker, &contactHistory{repo: uc.contactRepo}, companyRef)
}

// Execute собирает черновик из запроса через компоненты движка и отправляет его
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Черновик читает историю контактов и занятость компании сессии
	session, ok := uc.sessions.Session(ctx)
	if !ok || !session.IsValid() {
		uc.logger.Warn("SubmitBooking: no session for asset=%s", req.Asset.ID)
		return nil, ErrNotAuthenticated
	}

	uc.logger.Info("SubmitBooking: requester=%s, company=%s, asset=%s, services=%d, plan=%s",
		session.RequesterRef, session.CompanyRef, req.Asset.ID, len(req.Services), req.Plan.Kind)

	d := uc.NewDraft(req.Asset, session.CompanyRef)

	// 3. Услуги и опции
	if err := uc.applyServices(d, req); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, err
	}

	// 4. План
	if err := applyPlan(ctx, d, req.Plan); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, err
	}

	// 5. Контакт
	if err := applyContact(ctx, d, req.Contact); err != nil {
		if errors.Is(err, draft.ErrContactNotFound) {
			uc.logger.Warn("SubmitBooking: %v", err)
			return nil, fmt.Errorf("%w: %s", ErrContactNotFound, *req.Contact.ExistingID)
		}
		if errors.Is(err, draft.ErrContactHistoryUnavailable) {
			uc.logger.Error("SubmitBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Заметки и форсирование слота
	if req.Notes != nil {
		d.Notes = *req.Notes
	}
	d.ForceSlot = req.ForceSlot

	return uc.Submit(ctx, d)
}

// Submit проверяет черновик и сохраняет бронирование.
// Предусловия проверяются по порядку, до первой ошибки ничего не пишется.
func (uc *UseCase) Submit(ctx context.Context, d *draft.Draft) (*Result, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	var warnings []Warning
	now := uc.timeProvider.Now()

	// 1. Хотя бы одна услуга
	if d.Services.IsEmpty() {
		uc.logger.Warn("SubmitBooking: no service selected for asset=%s", d.Asset.ID)
		uc.observeSubmission(metrics.SubmissionRejected)
		return nil, ErrNoServiceSelected
	}

	// 2. План. Занятость перечитывается, чтобы проверка шла по свежим данным
	if d.Schedule.Kind() == domain.PlanExact {
		d.Schedule.RefreshAvailability(ctx)
	}
	if err := d.Schedule.Validate(now); err != nil {
		if !errors.Is(err, scheduling.ErrSlotUnavailable) || !d.ForceSlot {
			uc.logger.Warn("SubmitBooking: %v", err)
			uc.observeSubmission(metrics.SubmissionRejected)
			return nil, err
		}
		uc.logger.Warn("SubmitBooking: forced submission onto unavailable slot for asset=%s", d.Asset.ID)
		warnings = append(warnings, WarningSlotUnavailable)
	}

	// 3. Контакт на объекте
	if !d.Contact.IsValid() {
		uc.logger.Warn("SubmitBooking: invalid contact for asset=%s", d.Asset.ID)
		uc.observeSubmission(metrics.SubmissionRejected)
		return nil, ErrInvalidContact
	}

	// 4. Заметки
	if err := validateNotes(d.Notes); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		uc.observeSubmission(metrics.SubmissionRejected)
		return nil, err
	}

	// 5. Сессия
	session, ok := uc.sessions.Session(ctx)
	if !ok || !session.IsValid() {
		uc.logger.Warn("SubmitBooking: not authenticated, asset=%s", d.Asset.ID)
		uc.observeSubmission(metrics.SubmissionRejected)
		return nil, ErrNotAuthenticated
	}

	// 6. Мягкие предупреждения
	warnings = append(warnings, uc.collectWarnings(d)...)

	// 7. Собираем бронирование
	contact := d.Contact.Contact()
	reused := d.Contact.IsReused()
	if !reused {
		contact.ID = uuid.NewString()
		contact.CompanyRef = session.CompanyRef
		contact.CreatedAt = now
	}

	booking := &domain.Booking{
		ID:            newBookingID(),
		AssetRef:      d.Asset.ID,
		AssetCategory: d.Asset.Category,
		CompanyRef:    session.CompanyRef,
		RequesterRef:  session.RequesterRef,
		Services:      d.Services.Selected(),
		Configuration: d.Services.Configuration(),
		Plan:          d.Schedule.Plan(),
		Contact:       contact,
		Status:        domain.StatusPending,
		CreatedAt:     now,
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		booking.Notes = &notes
	}

	// 8. Контакт и бронирование пишутся в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if !reused {
			if err := uc.contactRepo.Create(txCtx, &contact); err != nil {
				return fmt.Errorf("failed to create contact: %v", err)
			}
		}
		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %v", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: %v", err)
		uc.observeSubmission(metrics.SubmissionFailed)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	uc.logger.Info("SubmitBooking: successfully created booking id=%s", booking.ID)

	// 9. Сбрасываем закешированную занятость даты
	uc.invalidateAvailability(ctx, booking)

	// 10. Уведомление не влияет на успех отправки
	if err := uc.notifier.Notify(ctx, booking.ID, buildSummary(booking)); err != nil {
		uc.logger.Warn("SubmitBooking: notification for booking id=%s failed: %v", booking.ID, err)
		warnings = append(warnings, WarningNotificationFailed)
		uc.observeNotification(false)
	} else {
		uc.observeNotification(true)
	}

	uc.observeSubmission(metrics.SubmissionSucceeded)

	return &Result{
		BookingID: booking.ID,
		Booking:   booking,
		Warnings:  warnings,
	}, nil
}

// collectWarnings собирает предупреждения о неполных услугах и неизвестной занятости
func (uc *UseCase) collectWarnings(d *draft.Draft) []Warning {
	var warnings []Warning

	for _, st := range d.Services.Selected() {
		if !d.Services.IsComplete(st) {
			uc.logger.Warn("SubmitBooking: service %q has unset option groups", st)
			warnings = append(warnings, WarningServiceIncomplete)
			break
		}
	}

	if d.Schedule.Kind() == domain.PlanExact {
		a, ok := d.Schedule.Availability()
		if !ok || !a.Known {
			uc.logger.Warn("SubmitBooking: availability unknown for asset=%s", d.Asset.ID)
			warnings = append(warnings, WarningAvailabilityUnknown)
		}
	}

	return warnings
}

func (uc *UseCase) invalidateAvailability(ctx context.Context, b *domain.Booking) {
	plan, ok := b.ExactSlot()
	if !ok || uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, b.CompanyRef, b.AssetRef, plan.Date); err != nil {
		uc.logger.Warn("SubmitBooking: failed to invalidate availability for %s: %v",
			plan.Date.Format(domain.DateFormat), err)
	}
}

// applyServices воспроизводит выбор услуг и опций запроса
func (uc *UseCase) applyServices(d *draft.Draft, req *Request) error {
	for _, sr := range req.Services {
		if !uc.catalog.IsEligible(req.Asset.Category, sr.Type) {
			return fmt.Errorf("%w: %q for %q", ErrServiceNotEligible, sr.Type, req.Asset.Category)
		}
		if d.Services.IsSelected(sr.Type) {
			continue
		}
		d.Services.Toggle(sr.Type)

		for key, values := range sr.Options {
			applyOption(d, sr.Type, key, uniqueValues(values))
		}
	}
	return nil
}

// applyOption приводит группу к значениям запроса.
// Неизвестные группы и варианты игнорируются так же, как в SetOption.
func applyOption(d *draft.Draft, st domain.ServiceType, key string, values []string) {
	current, ok := d.Services.Option(st, key)
	if !ok {
		return
	}

	if current.Mode == domain.SelectionSingle {
		if len(values) > 0 {
			d.Services.SetOption(st, key, values[len(values)-1])
		}
		return
	}

	wanted := make(map[string]struct{}, len(values))
	for _, v := range values {
		wanted[v] = struct{}{}
	}
	for _, v := range current.Values() {
		if _, keep := wanted[v]; !keep {
			d.Services.SetOption(st, key, v)
		}
	}
	for _, v := range values {
		if !current.Contains(v) {
			d.Services.SetOption(st, key, v)
		}
	}
}

// applyPlan воспроизводит поля плана в планировщике черновика
func applyPlan(ctx context.Context, d *draft.Draft, p PlanRequest) error {
	kind := p.Kind
	if kind == "" {
		kind = domain.PlanExact
	}
	if err := d.Schedule.SwitchTo(ctx, kind); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch kind {
	case domain.PlanExact:
		if p.TimeSlot != nil {
			d.Schedule.SetTimeSlot(*p.TimeSlot)
		}
		if p.Date != nil {
			d.Schedule.SetDate(ctx, *p.Date)
		}
	case domain.PlanFlexible:
		if p.Date != nil {
			d.Schedule.SetDate(ctx, *p.Date)
		}
		if p.Tolerance != nil {
			d.Schedule.SetTolerance(*p.Tolerance)
		}
		if p.TimeOfDay != nil {
			d.Schedule.SetTimeOfDay(*p.TimeOfDay)
		}
	case domain.PlanRecurring:
		if p.StartDate != nil {
			d.Schedule.SetStartDate(*p.StartDate)
		}
		if p.EndDate != nil {
			d.Schedule.SetEndDate(*p.EndDate)
		}
		if p.Frequency != nil {
			d.Schedule.SetFrequency(*p.Frequency)
		}
		if p.TimeOfDay != nil {
			d.Schedule.SetTimeOfDay(*p.TimeOfDay)
		}
	}
	return nil
}

// applyContact выбирает сохраненный контакт или заполняет новый, затем применяет правки
func applyContact(ctx context.Context, d *draft.Draft, c ContactRequest) error {
	if c.ExistingID != nil && *c.ExistingID != "" {
		if err := d.Contact.SelectExisting(ctx, *c.ExistingID); err != nil {
			return err
		}
	}

	updates := []struct {
		field draft.ContactField
		value *string
	}{
		{draft.ContactFieldName, c.Name},
		{draft.ContactFieldPhone, c.Phone},
		{draft.ContactFieldEmail, c.Email},
	}
	for _, u := range updates {
		if u.value == nil {
			continue
		}
		if err := d.Contact.Update(u.field, *u.value); err != nil {
			return err
		}
	}

	if c.AvailableOnsite != nil {
		if err := d.Contact.Update(draft.ContactFieldAvailableOnsite, strconv.FormatBool(*c.AvailableOnsite)); err != nil {
			return err
		}
	}
	return nil
}

// newBookingID генерирует id из метки времени и случайного хвоста
func newBookingID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (uc *UseCase) observeSubmission(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSubmission(result)
	}
}

func (uc *UseCase) observeNotification(delivered bool) {
	if uc.metrics != nil {
		uc.metrics.ObserveNotification(delivered)
	}
}
