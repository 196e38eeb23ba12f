package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Client клиент iCal фида бронирований площадки
type Client struct {
	feedURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента фида
func NewClient(feedURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchEvents загружает фид и возвращает события.
// События без DTSTART пропускаются.
func (c *Client) FetchEvents(ctx context.Context) ([]Event, error) {
	if c.feedURL == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	cal, err := ics.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse calendar: %v", ErrInvalidResponse, err)
	}

	return c.collect(cal), nil
}

func (c *Client) collect(cal *ics.Calendar) []Event {
	vevents := cal.Events()
	events := make([]Event, 0, len(vevents))

	for _, ve := range vevents {
		event, err := toEvent(ve)
		if err != nil {
			c.log.Warn("Calendar: skipping event uid=%s: %v", ve.Id(), err)
			continue
		}
		events = append(events, event)
	}

	c.log.Info("Calendar: fetched %d events (%d skipped)", len(events), len(vevents)-len(events))
	return events
}

func toEvent(ve *ics.VEvent) (Event, error) {
	event := Event{UID: ve.Id()}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		event.Summary = p.Value
	}

	start := ve.GetProperty(ics.ComponentPropertyDtStart)
	if start == nil {
		return Event{}, fmt.Errorf("missing DTSTART")
	}
	event.AllDay = isDateOnly(start)

	var err error
	if event.AllDay {
		if event.Start, err = ve.GetAllDayStartAt(); err != nil {
			return Event{}, err
		}
		// Без DTEND событие на весь день длится один день
		if event.End, err = ve.GetAllDayEndAt(); err != nil {
			event.End = event.Start.AddDate(0, 0, 1)
		}
		return event, nil
	}

	if event.Start, err = ve.GetStartAt(); err != nil {
		return Event{}, err
	}
	if event.End, err = ve.GetEndAt(); err != nil {
		event.End = event.Start
	}
	return event, nil
}

func isDateOnly(p *ics.IANAProperty) bool {
	if v, ok := p.ICalParameters[string(ics.ParameterValue)]; ok && len(v) > 0 {
		return strings.EqualFold(v[0], "DATE")
	}
	return !strings.Contains(p.Value, "T")
}
