package public_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingLinkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/bookinglink"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// UseCase публичная запись по ссылке: анонимный клиент видит только услуги ссылки
// и записывается только в будущее в пределах окна ссылки
type UseCase struct {
	links        LinkRepository
	catalog      ServiceCatalog
	hours        BusinessHoursProvider
	slots        SlotLister
	clients      ClientDirectory
	ledger       AppointmentLedger
	timeProvider TimeProvider
	loc          *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	links LinkRepository,
	catalog ServiceCatalog,
	hours BusinessHoursProvider,
	slots SlotLister,
	clients ClientDirectory,
	ledger AppointmentLedger,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		links:        links,
		catalog:      catalog,
		hours:        hours,
		slots:        slots,
		clients:      clients,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		loc:          loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(p TimeProvider) *UseCase {
	uc.timeProvider = p
	return uc
}

// GetBookingInfo возвращает данные страницы записи и увеличивает счетчик просмотров
func (uc *UseCase) GetBookingInfo(ctx context.Context, slug string) (*BookingInfo, error) {
	uc.logger.Info("GetBookingInfo: slug=%s", slug)

	link, err := uc.resolveLink(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := uc.links.IncrementViews(ctx, link.ID); err != nil {
		uc.logger.Warn("GetBookingInfo: failed to increment views for link=%d: %v", link.ID, err)
	}

	services, err := uc.catalog.GetByIDs(ctx, link.OwnerID, link.ServiceIDs)
	if err != nil {
		uc.logger.Error("GetBookingInfo: failed to get services for link=%d: %v", link.ID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	hours, err := uc.hours.Get(ctx, link.OwnerID)
	if err != nil {
		uc.logger.Error("GetBookingInfo: failed to get business hours for owner=%d: %v", link.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to get business hours: %v", ErrInternal, err)
	}

	today := uc.today()
	return &BookingInfo{
		Link:     link,
		Services: services,
		Hours:    hours,
		FirstDay: today,
		LastDay:  today.AddDate(0, 0, link.DaysInAdvance),
	}, nil
}

// GetSlots возвращает слоты на дату для услуги ссылки; прошедшие слоты недоступны
func (uc *UseCase) GetSlots(ctx context.Context, slug string, serviceID int64, date time.Time) (*get_available_slots.Response, error) {
	uc.logger.Info("GetSlots: slug=%s, service=%d, date=%s", slug, serviceID, date.Format(domain.DateFormat))

	link, err := uc.resolveLink(ctx, slug)
	if err != nil {
		return nil, err
	}

	day, err := uc.checkBookable(link, serviceID, date)
	if err != nil {
		return nil, err
	}

	resp, err := uc.slots.Execute(ctx, &get_available_slots.Request{
		OwnerID:       link.OwnerID,
		ServiceID:     serviceID,
		Date:          day,
		RequireFuture: true,
	})
	if err != nil {
		if errors.Is(err, get_available_slots.ErrServiceNotFound) {
			return nil, ErrServiceNotEligible
		}
		return nil, err
	}
	return resp, nil
}

// Submit создает запись от имени анонимного клиента
// Клиент ищется или создается по телефону; неудачное обновление счетчика ссылки запись не отменяет
func (uc *UseCase) Submit(ctx context.Context, slug string, form *BookingForm) (*domain.Appointment, error) {
	uc.logger.Info("Submit: slug=%s, service=%d, date=%s, time=%s",
		slug, form.ServiceID, form.Date.Format(domain.DateFormat), form.Time)

	if err := validateForm(form); err != nil {
		uc.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	link, err := uc.resolveLink(ctx, slug)
	if err != nil {
		return nil, err
	}

	day, err := uc.checkBookable(link, form.ServiceID, form.Date)
	if err != nil {
		return nil, err
	}

	scheduled, err := form.Time.OnDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// прошедшее время отсекаем до создания клиента; пересечения проверит журнал под блокировкой
	now := uc.timeProvider.Now()
	if !availability.IsFuture(scheduled, now) {
		uc.logger.Warn("Submit: time %s via link=%d is in the past", scheduled.Format(time.RFC3339), link.ID)
		return nil, fmt.Errorf("%w: %s", availability.ErrPastTime, scheduled.Format(time.RFC3339))
	}

	name := strings.TrimSpace(form.Name)
	phone := domain.NormalizePhone(form.Phone)
	clientID, err := uc.clients.FindOrCreateByPhone(ctx, link.OwnerID, name, phone, form.Email)
	if err != nil {
		uc.logger.Error("Submit: failed to resolve client for owner=%d: %v", link.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
	}

	appt, err := uc.ledger.Create(ctx, appointments.CreateRequest{
		OwnerID:       link.OwnerID,
		ClientID:      clientID,
		ServiceID:     form.ServiceID,
		ScheduledTime: scheduled,
		Notes:         form.Notes,
		Source:        domain.SourcePublicLink,
		BookingLinkID: ptr.Ptr(link.ID),
		RequireFuture: true,
		Now:           now,
	})
	if err != nil {
		uc.logger.Warn("Submit: ledger rejected booking via link=%d: %v", link.ID, err)
		if errors.Is(err, appointments.ErrServiceNotFound) {
			return nil, ErrServiceNotEligible
		}
		return nil, err
	}

	if err := uc.links.IncrementAppointments(ctx, link.ID); err != nil {
		uc.logger.Warn("Submit: failed to increment appointments for link=%d: %v", link.ID, err)
	}

	appt.ClientName = name
	appt.ClientPhone = phone

	uc.logger.Info("Submit: created appointment id=%d via link=%d", appt.ID, link.ID)
	return appt, nil
}

// resolveLink находит активную ссылку
func (uc *UseCase) resolveLink(ctx context.Context, slug string) (*domain.BookingLink, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrLinkNotFound
	}

	link, err := uc.links.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, bookingLinkRepo.ErrLinkNotFound) {
			uc.logger.Warn("resolveLink: slug=%s not found", slug)
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("resolveLink: failed to get link slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: failed to get link: %v", ErrInternal, err)
	}

	if !link.Active {
		uc.logger.Warn("resolveLink: link=%d is inactive", link.ID)
		return nil, ErrLinkInactive
	}

	return link, nil
}

// checkBookable проверяет услугу и окно записи; возвращает день в часовом поясе владельца
func (uc *UseCase) checkBookable(link *domain.BookingLink, serviceID int64, date time.Time) (time.Time, error) {
	if !link.AllowsService(serviceID) {
		uc.logger.Warn("checkBookable: service=%d is not in link=%d", serviceID, link.ID)
		return time.Time{}, ErrServiceNotEligible
	}

	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, uc.loc)
	if !link.WithinLeadTime(day, uc.today()) {
		uc.logger.Warn("checkBookable: date=%s outside %d days window of link=%d",
			day.Format(domain.DateFormat), link.DaysInAdvance, link.ID)
		return time.Time{}, fmt.Errorf("%w: book within %d days from today", ErrLeadTimeExceeded, link.DaysInAdvance)
	}

	return day, nil
}

func (uc *UseCase) today() time.Time {
	return domain.StartOfDay(uc.timeProvider.Now().In(uc.loc))
}
