package sync_occupancy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	syncOccupancy "github.com/m04kA/FarmStand-PickupService/internal/usecase/sync_occupancy"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type fakeUseCase struct{ err error }

func (f fakeUseCase) Execute(context.Context, *syncOccupancy.Request) (*syncOccupancy.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &syncOccupancy.Response{DaysSynced: 60, DaysOccupied: 4, Events: 2}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "ok", wantStatus: http.StatusOK, wantBody: `{"success":true,"daysSynced":60,"daysOccupied":4,"events":2}`},
		{name: "feed down", err: syncOccupancy.ErrFeedUnavailable, wantStatus: http.StatusBadGateway, wantBody: `{"error":"` + msgFeedUnavailable + `"}`},
		{name: "store failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(fakeUseCase{err: tt.err}, logger.NewNop()).
				Handle(rec, httptest.NewRequest(http.MethodPost, "/api/occupancy/sync", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
