package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteSource fetches public holidays from a nager.date style API exposing
// GET {base}/{year}/{country}.
type RemoteSource struct {
	baseURL     string
	countryCode string
	client      *http.Client
}

// DefaultRemoteTimeout bounds a single holiday API call.
const DefaultRemoteTimeout = 5 * time.Second

// NewRemoteSource constructs a remote source. A nil client gets a timeout
// bounded default.
func NewRemoteSource(baseURL, countryCode string, client *http.Client) *RemoteSource {
	if client == nil {
		client = &http.Client{Timeout: DefaultRemoteTimeout}
	}
	return &RemoteSource{baseURL: baseURL, countryCode: countryCode, client: client}
}

type remoteHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// HolidaysForYear queries the API. Any transport, status, or decode failure
// is reported as ErrUnavailable so callers can fall back.
func (s *RemoteSource) HolidaysForYear(ctx context.Context, year int) ([]Holiday, error) {
	if s == nil || s.baseURL == "" {
		return nil, ErrUnavailable
	}

	url := fmt.Sprintf("%s/%d/%s", s.baseURL, year, s.countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload []remoteHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	out := make([]Holiday, 0, len(payload))
	for _, entry := range payload {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			continue
		}
		name := entry.LocalName
		if name == "" {
			name = entry.Name
		}
		out = append(out, Holiday{Date: date, Name: name})
	}
	return out, nil
}
