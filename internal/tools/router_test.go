package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viazuri/concierge/internal/amadeus"
	"github.com/viazuri/concierge/internal/log"
)

// fakeClient records the last dispatched call and returns canned results.
type fakeClient struct {
	calls []string

	searchParams amadeus.SearchFlightsParams
	pricedOffer  json.RawMessage
	flightOrder  amadeus.FlightOrder
	hotelParams  amadeus.FetchHotelsParams
	hotelIDs     []string
	offersHotel  string
	offersAdults int
	hotelOrder   amadeus.HotelOrder

	err error
}

func (f *fakeClient) SearchFlights(_ context.Context, p amadeus.SearchFlightsParams) ([]json.RawMessage, error) {
	f.calls = append(f.calls, ActionSearchFlight)
	f.searchParams = p
	if f.err != nil {
		return nil, f.err
	}
	return []json.RawMessage{json.RawMessage(`{"id":"1"}`)}, nil
}

func (f *fakeClient) PriceFlightOffer(_ context.Context, offer json.RawMessage) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionGetFlightPrice)
	f.pricedOffer = offer
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"priced":true}`), nil
}

func (f *fakeClient) CreateFlightOrder(_ context.Context, order amadeus.FlightOrder) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionBookFlight)
	f.flightOrder = order
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"booked":true}`), nil
}

func (f *fakeClient) FetchHotels(_ context.Context, p amadeus.FetchHotelsParams) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionFetchHotel)
	f.hotelParams = p
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"data":[]}`), nil
}

func (f *fakeClient) FetchHotelRatings(_ context.Context, hotelIDs []string) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionFetchHotelRating)
	f.hotelIDs = hotelIDs
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"data":[]}`), nil
}

func (f *fakeClient) FetchHotelOffers(_ context.Context, hotelID string, adults int) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionFetchHotelOffers)
	f.offersHotel = hotelID
	f.offersAdults = adults
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"data":[]}`), nil
}

func (f *fakeClient) BookHotel(_ context.Context, order amadeus.HotelOrder) (json.RawMessage, error) {
	f.calls = append(f.calls, ActionBookHotel)
	f.hotelOrder = order
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"booked":true}`), nil
}

func newTestRouter(t *testing.T) (*Router, *fakeClient) {
	t.Helper()

	client := &fakeClient{}
	return NewRouter(NewRegistry(), client, log.NewNop()), client
}

func TestRouterExecuteValidatesFirst(t *testing.T) {
	t.Parallel()

	t.Run("unknown tool never reaches the client", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), "teleport", map[string]any{})
		assert.ErrorIs(t, err, ErrUnknownTool)
		assert.Empty(t, client.calls)
	})

	t.Run("missing parameters never reach the client", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionSearchFlight, map[string]any{})

		var missing *MissingParametersError
		assert.ErrorAs(t, err, &missing)
		assert.Empty(t, client.calls)
	})
}

func TestRouterDispatch(t *testing.T) {
	t.Parallel()

	t.Run("search_flight coerces typed params", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		result, err := router.Execute(context.Background(), ActionSearchFlight, map[string]any{
			"origin":         "Lagos, Nigeria",
			"destination":    "LHR",
			"departure_date": "2025-12-28",
			"adults":         float64(2),
			"max_price":      450.5,
		})
		require.NoError(t, err)
		assert.Equal(t, []json.RawMessage{json.RawMessage(`{"id":"1"}`)}, result)
		assert.Equal(t, "Lagos, Nigeria", client.searchParams.Origin)
		assert.Equal(t, "LHR", client.searchParams.Destination)
		assert.Equal(t, 2, client.searchParams.Adults)
		assert.InDelta(t, 450.5, client.searchParams.MaxPrice, 0.001)
	})

	t.Run("get_flight_price passes the offer through unchanged", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		offer := map[string]any{"id": "7", "price": map[string]any{"total": "812.40"}}
		_, err := router.Execute(context.Background(), ActionGetFlightPrice, map[string]any{
			"flight_offer": offer,
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"7","price":{"total":"812.40"}}`, string(client.pricedOffer))
	})

	t.Run("book_flight coerces the whole payload into an order", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionBookFlight, map[string]any{
			"data": map[string]any{
				"type": "flight-order",
				"travelers": []any{
					map[string]any{
						"id":          "1",
						"dateOfBirth": "1990-04-01",
						"name":        map[string]any{"firstName": "ADA", "lastName": "OBI"},
					},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, client.flightOrder.Data.Travelers, 1)
		assert.Equal(t, "ADA", client.flightOrder.Data.Travelers[0].Name.FirstName)
	})

	t.Run("fetch_hotel coerces geo_code into a typed selector", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionFetchHotel, map[string]any{
			"geo_code": map[string]any{"latitude": 51.5, "longitude": -0.12},
		})
		require.NoError(t, err)
		require.NotNil(t, client.hotelParams.GeoCode)
		assert.InDelta(t, 51.5, client.hotelParams.GeoCode.Latitude, 0.001)
		assert.InDelta(t, -0.12, client.hotelParams.GeoCode.Longitude, 0.001)
	})

	t.Run("fetch_hotel_offers defaults ride through to the client", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionFetchHotelOffers, map[string]any{
			"hotel_id": "HLLON101",
		})
		require.NoError(t, err)
		assert.Equal(t, "HLLON101", client.offersHotel)
		assert.Equal(t, 0, client.offersAdults)
	})

	t.Run("fetch_hotel_rating forwards the id list", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionFetchHotelRating, map[string]any{
			"hotel_ids": []any{"HLLON101", "HLPAR202"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"HLLON101", "HLPAR202"}, client.hotelIDs)
	})

	t.Run("book_hotel coerces guests and payment", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)

		_, err := router.Execute(context.Background(), ActionBookHotel, map[string]any{
			"data": map[string]any{
				"type": "hotel-order",
				"guests": []any{
					map[string]any{"tid": float64(1), "firstName": "ADA", "lastName": "OBI"},
				},
				"roomAssociations": []any{
					map[string]any{"hotelOfferId": "OFFER1"},
				},
			},
		})
		require.NoError(t, err)
		require.Len(t, client.hotelOrder.Data.Guests, 1)
		assert.Equal(t, "ADA", client.hotelOrder.Data.Guests[0].FirstName)
		require.Len(t, client.hotelOrder.Data.RoomAssociations, 1)
		assert.Equal(t, "OFFER1", client.hotelOrder.Data.RoomAssociations[0].HotelOfferID)
	})
}

func TestRouterDegradesUpstreamErrors(t *testing.T) {
	t.Parallel()

	t.Run("search degrades to an empty list", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)
		client.err = &amadeus.UpstreamError{Operation: "search flights", Status: 500}

		result, err := router.Execute(context.Background(), ActionSearchFlight, map[string]any{
			"origin": "Lagos",
		})
		require.NoError(t, err)
		assert.Equal(t, []json.RawMessage{}, result)
	})

	t.Run("other operations degrade to an empty object", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)
		client.err = &amadeus.UpstreamError{Operation: "fetch hotels", Status: 502}

		result, err := router.Execute(context.Background(), ActionFetchHotel, map[string]any{
			"city_code": "PAR",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, result)
	})

	t.Run("input errors are returned, not degraded", func(t *testing.T) {
		t.Parallel()

		router, client := newTestRouter(t)
		client.err = amadeus.ErrInvalidInput

		_, err := router.Execute(context.Background(), ActionFetchHotel, map[string]any{})
		assert.ErrorIs(t, err, amadeus.ErrInvalidInput)
	})
}

func TestRouterCoversEveryDeclaration(t *testing.T) {
	t.Parallel()

	// Every advertised tool must have a dispatch branch; drift between the
	// declaration list and the switch shows up here as ErrUnknownTool.
	payloads := map[string]map[string]any{
		ActionSearchFlight:     {"origin": "Lagos"},
		ActionGetFlightPrice:   {"flight_offer": map[string]any{"id": "1"}},
		ActionBookFlight:       {"data": map[string]any{"type": "flight-order"}},
		ActionFetchHotel:       {"city_code": "PAR"},
		ActionFetchHotelOffers: {"hotel_id": "HLLON101"},
		ActionFetchHotelRating: {"hotel_ids": []any{"HLLON101"}},
		ActionBookHotel:        {"data": map[string]any{"type": "hotel-order"}},
	}

	router, _ := newTestRouter(t)
	for _, decl := range router.Registry().Declarations() {
		payload, ok := payloads[decl.Name]
		require.True(t, ok, "no test payload for %s", decl.Name)

		_, err := router.Execute(context.Background(), decl.Name, payload)
		assert.NoError(t, err, decl.Name)
	}
}
