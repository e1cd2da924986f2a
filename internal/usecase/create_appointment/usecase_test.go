package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type recordingLedger struct {
	got []appointments.CreateRequest
	err error
}

func (l *recordingLedger) Create(_ context.Context, req appointments.CreateRequest) (*domain.Appointment, error) {
	l.got = append(l.got, req)
	if l.err != nil {
		return nil, l.err
	}
	return &domain.Appointment{ID: 42, OwnerID: req.OwnerID, ClientID: req.ClientID, ScheduledTime: req.ScheduledTime}, nil
}

type memClients struct {
	byPhone map[string]int64
	nextID  int64
}

func (c *memClients) FindOrCreateByPhone(_ context.Context, _ int64, _, phone string, _ *string) (int64, error) {
	if id, ok := c.byPhone[phone]; ok {
		return id, nil
	}
	c.nextID++
	c.byPhone[phone] = c.nextID
	return c.nextID, nil
}

func (c *memClients) GetByID(_ context.Context, ownerID, id int64) (*domain.Client, error) {
	for phone, cid := range c.byPhone {
		if cid == id {
			return &domain.Client{ID: id, OwnerID: ownerID, Name: "Known", Phone: phone}, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func newUseCase() (*UseCase, *recordingLedger, *memClients) {
	ledger := &recordingLedger{}
	clients := &memClients{byPhone: map[string]int64{}}
	return NewUseCase(ledger, clients, logger.Nop()), ledger, clients
}

func baseRequest() *Request {
	return &Request{
		OwnerID:     1,
		ClientName:  "Anna",
		ClientPhone: "+7 (900) 123-45-67",
		ServiceID:   3,
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:30",
	}
}

func TestExecute_CreatesClientByPhoneIdempotently(t *testing.T) {
	uc, ledger, clients := newUseCase()
	ctx := context.Background()

	appt, err := uc.Execute(ctx, baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "Anna", appt.ClientName)
	assert.Equal(t, "+79001234567", appt.ClientPhone)

	req := baseRequest()
	req.ClientPhone = "+79001234567"
	_, err = uc.Execute(ctx, req)
	require.NoError(t, err)

	assert.Len(t, clients.byPhone, 1)
	require.Len(t, ledger.got, 2)
	assert.Equal(t, ledger.got[0].ClientID, ledger.got[1].ClientID)

	first := ledger.got[0]
	assert.Equal(t, domain.SourceInternal, first.Source)
	assert.False(t, first.RequireFuture)
	assert.True(t, first.ScheduledTime.Equal(time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)))
}

func TestExecute_ExistingClient(t *testing.T) {
	uc, ledger, clients := newUseCase()
	clients.byPhone["+79990000000"] = 5
	clients.nextID = 5

	req := baseRequest()
	id := int64(5)
	req.ClientID = &id
	req.ClientName, req.ClientPhone = "", ""

	appt, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ledger.got[0].ClientID)
	assert.Equal(t, "Known", appt.ClientName)

	missing := int64(77)
	req.ClientID = &missing
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc, ledger, _ := newUseCase()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"no owner", func(r *Request) { r.OwnerID = 0 }},
		{"no service", func(r *Request) { r.ServiceID = 0 }},
		{"no date", func(r *Request) { r.Date = time.Time{} }},
		{"bad time", func(r *Request) { r.StartTime = "9:7" }},
		{"no name", func(r *Request) { r.ClientName = "  " }},
		{"short phone", func(r *Request) { r.ClientPhone = "12" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, ledger.got)
}

func TestExecute_PassesLedgerErrorsThrough(t *testing.T) {
	uc, ledger, _ := newUseCase()
	ledger.err = availability.ErrConflict

	_, err := uc.Execute(context.Background(), baseRequest())
	assert.ErrorIs(t, err, availability.ErrConflict)
}
