package update_business_hours

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours"
	"github.com/m04kA/SMC-SchedulingService/internal/service/businesshours/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Update(_ context.Context, ownerID int64, req *models.UpdateBusinessHoursRequest) (*domain.BusinessHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	return req.Apply(domain.DefaultBusinessHours(ownerID))
}

func serve(t *testing.T, svc *fakeService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, logger.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/business-hours", strings.NewReader(body))
	req.Header.Set(middleware.OwnerIDHeader, "7")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	rec := serve(t, &fakeService{}, `{"startTime":"10:00","daysOff":[0,6],"lunchBreak":{"start":"13:00","end":"14:00"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BusinessHoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.OwnerID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, []int{0, 6}, resp.DaysOff)
	require.NotNil(t, resp.LunchBreak)
	assert.Equal(t, "13:00", resp.LunchBreak.Start)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(t, &fakeService{}, `{"startTime":`).Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(t, &fakeService{err: fmt.Errorf("%w: start after end", businesshours.ErrInvalidInput)}, `{"startTime":"19:00"}`).Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(t, &fakeService{err: businesshours.ErrInternal}, `{}`).Code)
}
