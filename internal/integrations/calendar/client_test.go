package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FarmStand-PickupService/pkg/logger"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Airbnb Inc//Hosting Calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:stay-1@airbnb.com\r\n" +
	"DTSTAMP:20261001T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20261020\r\n" +
	"DTEND;VALUE=DATE:20261023\r\n" +
	"SUMMARY:Reserved\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:event-2\r\n" +
	"DTSTAMP:20261001T000000Z\r\n" +
	"DTSTART:20261025T150000Z\r\n" +
	"DTEND:20261025T190000Z\r\n" +
	"SUMMARY:Private dinner\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:broken\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestClient_FetchEvents(t *testing.T) {
	t.Run("parses all-day and timed events", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/calendar")
			_, _ = w.Write([]byte(feed))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.NewNop())
		events, err := c.FetchEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 2)

		stay := events[0]
		assert.Equal(t, "stay-1@airbnb.com", stay.UID)
		assert.True(t, stay.AllDay)
		y, m, d := stay.Start.Date()
		assert.Equal(t, []int{2026, 10, 20}, []int{y, int(m), d})
		y, m, d = stay.End.Date()
		assert.Equal(t, []int{2026, 10, 23}, []int{y, int(m), d})

		dinner := events[1]
		assert.False(t, dinner.AllDay)
		assert.Equal(t, "Private dinner", dinner.Summary)
		assert.True(t, dinner.Start.Equal(time.Date(2026, 10, 25, 15, 0, 0, 0, time.UTC)))
		assert.True(t, dinner.End.Equal(time.Date(2026, 10, 25, 19, 0, 0, 0, time.UTC)))
	})

	t.Run("non-200 is invalid response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, logger.NewNop())
		_, err := c.FetchEvents(context.Background())
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unreachable feed is internal error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(url, time.Second, logger.NewNop())
		_, err := c.FetchEvents(context.Background())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("empty url is not configured", func(t *testing.T) {
		c := NewClient("", time.Second, logger.NewNop())
		_, err := c.FetchEvents(context.Background())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

