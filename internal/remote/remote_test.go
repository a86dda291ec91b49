package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/cache"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// MockClient simulates the Al Adhan API using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error) {
	args := m.Called(ctx, date, lat, lon, method, school)
	if r := args.Get(0); r != nil {
		return r.(*api.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) FetchByCity(ctx context.Context, date time.Time, city, country string, method, school int) (*api.Response, error) {
	args := m.Called(ctx, date, city, country, method, school)
	if r := args.Get(0); r != nil {
		return r.(*api.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

// memStore is an in-memory cache.Store.
type memStore struct {
	mu      sync.Mutex
	entries map[string]cache.Entry
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]cache.Entry{}}
}

func (s *memStore) LoadTimings(_ context.Context, k cache.Key) (*cache.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[k.Hash()]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (s *memStore) SaveTimings(_ context.Context, k cache.Key, e cache.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[k.Hash()] = e
	return nil
}

var (
	testDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	makkah   = prayer.Location{Latitude: 21.4225, Longitude: 39.8262, TimezoneName: "Asia/Riyadh"}
)

func apiResponse() *api.Response {
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: api.Timings{
				Fajr:    "04:10 (+03)",
				Sunrise: "05:40 (+03)",
				Dhuhr:   "12:22 (+03)",
				Asr:     "15:40 (+03)",
				Maghrib: "19:05 (+03)",
				Isha:    "20:35 (+03)",
			},
			Date: api.DateInfo{
				Hijri: api.HijriDate{Day: "24", Month: api.HijriMonth{En: "Dhū al-Ḥijjah"}, Year: "1445"},
			},
		},
	}
}

func TestFetchFor_MapsAndStripsSuffix(t *testing.T) {
	client := new(MockClient)
	client.On("FetchByCoordinates", mock.Anything, testDate, 21.4225, 39.8262, 4, 0).Return(apiResponse(), nil)

	f := New(client, nil, zerolog.Nop())
	got := f.FetchFor(context.Background(), makkah, prayer.Settings{Method: 4, School: 0}, testDate)

	assert.Equal(t, prayer.Times{
		Fajr:    "04:10",
		Sunrise: "05:40",
		Dhuhr:   "12:22",
		Asr:     "15:40",
		Maghrib: "19:05",
		Isha:    "20:35",
		Date:    "2024-07-01",
		Hijri:   "24 Dhū al-Ḥijjah 1445",
	}, got)
	client.AssertExpectations(t)
}

func TestFetchFor_OffsetsOnly(t *testing.T) {
	client := new(MockClient)
	client.On("FetchByCoordinates", mock.Anything, testDate, mock.Anything, mock.Anything, -1, -1).Return(apiResponse(), nil)

	s := prayer.DefaultSettings()
	s.Offsets = prayer.Offsets{Fajr: 10, Isha: -5}
	s.Flags = prayer.Flags{ApplySummerHour: true, ForceHourMore: true}

	got := New(client, nil, zerolog.Nop()).FetchFor(context.Background(), makkah, s, testDate)

	assert.Equal(t, "04:20", got.Fajr)
	assert.Equal(t, "05:40", got.Sunrise, "no hour shifts on the remote path")
	assert.Equal(t, "12:22", got.Dhuhr)
	assert.Equal(t, "20:30", got.Isha)
}

func TestFetchFor_Fallback(t *testing.T) {
	incomplete := apiResponse()
	incomplete.Data.Timings.Maghrib = ""

	tests := []struct {
		name string
		resp *api.Response
		err  error
	}{
		{"network error", nil, errors.New("dial tcp: connection refused")},
		{"incomplete payload", incomplete, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockClient)
			client.On("FetchByCoordinates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(tt.resp, tt.err)

			s := prayer.DefaultSettings()
			s.Offsets.Fajr = 15
			got := New(client, newMemStore(), zerolog.Nop()).FetchFor(context.Background(), makkah, s, testDate)

			assert.Equal(t, Fallback(testDate), got)
			assert.True(t, IsFallback(got))
		})
	}
}

func TestFallback(t *testing.T) {
	got := Fallback(testDate)
	assert.Equal(t, "05:30", got.Fajr)
	assert.Equal(t, "06:45", got.Sunrise)
	assert.Equal(t, "12:15", got.Dhuhr)
	assert.Equal(t, "15:30", got.Asr)
	assert.Equal(t, "18:00", got.Maghrib)
	assert.Equal(t, "19:30", got.Isha)
	assert.Equal(t, "Loading...", got.Hijri)
	assert.Equal(t, "2024-07-01", got.Date)
}

func TestFetchFor_CachesRawTimings(t *testing.T) {
	client := new(MockClient)
	client.On("FetchByCoordinates", mock.Anything, testDate, mock.Anything, mock.Anything, 4, 0).
		Return(apiResponse(), nil).Once()

	store := newMemStore()
	f := New(client, store, zerolog.Nop())
	ctx := context.Background()

	first := f.FetchFor(ctx, makkah, prayer.Settings{Method: 4}, testDate)
	second := f.FetchFor(ctx, makkah, prayer.Settings{Method: 4, Offsets: prayer.Offsets{Fajr: 5}}, testDate)

	assert.Equal(t, "04:10", first.Fajr)
	assert.Equal(t, "04:15", second.Fajr, "offsets apply on top of cached timings")
	assert.Len(t, store.entries, 1)
	client.AssertNumberOfCalls(t, "FetchByCoordinates", 1)
}

func TestFetchFor_ByCityWithoutCoordinates(t *testing.T) {
	client := new(MockClient)
	client.On("FetchByCity", mock.Anything, testDate, "Makkah", "SA", -1, -1).Return(apiResponse(), nil)

	loc := prayer.Location{City: "Makkah", CountryCode: "SA"}
	got := New(client, nil, zerolog.Nop()).FetchFor(context.Background(), loc, prayer.DefaultSettings(), testDate)

	assert.Equal(t, "04:10", got.Fajr)
	client.AssertNotCalled(t, "FetchByCoordinates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetch_UsesTodayInLocationZone(t *testing.T) {
	client := new(MockClient)
	// 22:30 UTC on June 30 is already July 1 in Riyadh.
	client.On("FetchByCoordinates", mock.Anything, testDate, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apiResponse(), nil)

	f := New(client, nil, zerolog.Nop())
	f.now = func() time.Time { return time.Date(2024, 6, 30, 22, 30, 0, 0, time.UTC) }

	got := f.Fetch(context.Background(), makkah, prayer.DefaultSettings())
	assert.Equal(t, "2024-07-01", got.Date)
	client.AssertExpectations(t)
}

func TestFetchFor_WithHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timings/01-07-2024", r.URL.Path)
		json.NewEncoder(w).Encode(apiResponse())
	}))
	defer server.Close()

	f := New(api.NewClient().WithBaseURL(server.URL), nil, zerolog.Nop())
	got := f.FetchFor(context.Background(), makkah, prayer.DefaultSettings(), testDate)
	assert.Equal(t, "19:05", got.Maghrib)
}

func TestFetchFor_HTTPFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	f := New(api.NewClient().WithBaseURL(server.URL), nil, zerolog.Nop())
	got := f.FetchFor(context.Background(), makkah, prayer.DefaultSettings(), testDate)
	assert.True(t, IsFallback(got))
}
