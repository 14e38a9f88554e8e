package model_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guadavillas/config"
	"guadavillas/model"
	"guadavillas/provider/testutil"
	"guadavillas/storage"
)

func newTestModel(t *testing.T, source model.SessionSource) *model.Model {
	t.Helper()
	catalog, err := storage.NewCatalog(context.Background(), storage.DefaultVillas())
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })

	cfg := &config.Config{Provider: "gemini", DefaultModel: "gemini-2.5-flash", RequestTimeout: time.Second}
	return model.NewModel(cfg, catalog, source, "test", "MIT")
}

func TestQuote(t *testing.T) {
	villa := storage.DefaultVillas()[0] // 350 per night

	q := model.Quote(villa)
	assert.Equal(t, model.PriceQuote{
		Nights:   7,
		Nightly:  350,
		Subtotal: 2450,
		Cleaning: 150,
		Total:    2600,
	}, q)
}

func TestBookingRequestValidate(t *testing.T) {
	villa := storage.DefaultVillas()[4] // 2 guests max

	tests := []struct {
		name    string
		req     model.BookingRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  model.BookingRequest{VillaID: "5", Dates: "12/03 - 19/03", Guests: 2},
		},
		{
			name:    "blank dates",
			req:     model.BookingRequest{VillaID: "5", Dates: "  ", Guests: 1},
			wantErr: model.ErrDatesRequired,
		},
		{
			name:    "too many guests",
			req:     model.BookingRequest{VillaID: "5", Dates: "mars", Guests: 3},
			wantErr: model.ErrGuestCount,
		},
		{
			name:    "no guests",
			req:     model.BookingRequest{VillaID: "5", Dates: "mars", Guests: 0},
			wantErr: model.ErrGuestCount,
		},
		{
			name:    "other villa",
			req:     model.BookingRequest{VillaID: "1", Dates: "mars", Guests: 1},
			wantErr: storage.ErrVillaNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(villa)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmitBooking(t *testing.T) {
	m := newTestModel(t, testutil.StaticSource{})

	msg := m.SubmitBooking(model.BookingRequest{VillaID: "2", Dates: "avril", Guests: 10, Name: "Ana"})()
	confirmed, ok := msg.(model.BookingConfirmedMsg)
	require.True(t, ok)
	require.NoError(t, confirmed.Err)
	assert.Len(t, confirmed.Reference, 8)
	assert.Equal(t, "Ana", confirmed.Request.Name)

	msg = m.SubmitBooking(model.BookingRequest{VillaID: "99", Dates: "avril", Guests: 1})()
	confirmed = msg.(model.BookingConfirmedMsg)
	assert.ErrorIs(t, confirmed.Err, storage.ErrVillaNotFound)
	assert.Empty(t, confirmed.Reference)
}
