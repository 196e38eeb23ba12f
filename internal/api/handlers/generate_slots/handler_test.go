package generate_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	generateSlots "github.com/m04kA/FarmStand-PickupService/internal/usecase/generate_slots"
	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

type fakeUseCase struct {
	got *generateSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *generateSlots.Request) (*generateSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &generateSlots.Response{SlotsCreated: 6, DaysProcessed: 14}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
		wantBody   string
		wantDays   int
	}{
		{
			name:       "default window",
			url:        "/api/pickup-slots/generate",
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"slotsCreated":6,"daysProcessed":14}`,
		},
		{
			name:       "explicit window",
			url:        "/api/pickup-slots/generate?days=7",
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"slotsCreated":6,"daysProcessed":14}`,
			wantDays:   7,
		},
		{
			name:       "bad days",
			url:        "/api/pickup-slots/generate?days=week",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"` + msgInvalidDays + `"}`,
		},
		{
			name:       "missing capacity rule",
			url:        "/api/pickup-slots/generate",
			err:        generateSlots.ErrConfiguration,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"` + msgConfiguration + `"}`,
		},
		{
			name:       "store failure",
			url:        "/api/pickup-slots/generate",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			if uc.got != nil {
				assert.Equal(t, tt.wantDays, uc.got.WindowDays)
			}
		})
	}
}
