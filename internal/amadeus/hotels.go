package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FetchHotelsParams selects hotels by exactly one of the three selectors.
type FetchHotelsParams struct {
	HotelID  string   `json:"hotel_id,omitempty"`
	GeoCode  *GeoCode `json:"geo_code,omitempty"`
	CityCode string   `json:"city_code,omitempty"`
}

// FetchHotels looks hotels up by city code, geo coordinates, or hotel id.
// Exactly one selector must be supplied; this is checked before any network
// call. Selector precedence when several arrive anyway follows the supplier
// docs: city, then geocode, then hotel id.
func (c *Client) FetchHotels(ctx context.Context, p FetchHotelsParams) (json.RawMessage, error) {
	var (
		path  string
		query = url.Values{}
	)

	switch {
	case p.CityCode != "":
		path = "/v1/reference-data/locations/hotels/by-city"
		query.Set("cityCode", strings.ToUpper(p.CityCode))
	case p.GeoCode != nil:
		path = "/v1/reference-data/locations/hotels/by-geocode"
		query.Set("latitude", strconv.FormatFloat(p.GeoCode.Latitude, 'f', -1, 64))
		query.Set("longitude", strconv.FormatFloat(p.GeoCode.Longitude, 'f', -1, 64))
	case p.HotelID != "":
		path = "/v1/reference-data/locations/hotels/by-hotels"
		query.Set("hotelIds", p.HotelID)
	default:
		return nil, fmt.Errorf("%w: one of hotel_id, geo_code, or city_code must be provided", ErrInvalidInput)
	}

	var resp json.RawMessage
	if err := c.get(ctx, "fetch hotels", path, query, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FetchHotelRatings returns sentiment ratings for the given hotel ids.
func (c *Client) FetchHotelRatings(ctx context.Context, hotelIDs []string) (json.RawMessage, error) {
	if len(hotelIDs) == 0 {
		return nil, fmt.Errorf("%w: hotel_ids list must not be empty", ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("hotelIds", strings.Join(hotelIDs, ","))

	var resp json.RawMessage
	if err := c.get(ctx, "fetch hotel ratings", "/v2/e-reputation/hotel-sentiments", query, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FetchHotelOffers returns available room offers for one hotel.
func (c *Client) FetchHotelOffers(ctx context.Context, hotelID string, adults int) (json.RawMessage, error) {
	if strings.TrimSpace(hotelID) == "" {
		return nil, fmt.Errorf("%w: hotel_id must be provided", ErrInvalidInput)
	}
	if adults <= 0 {
		adults = 1
	}

	query := url.Values{}
	query.Set("hotelIds", hotelID)
	query.Set("adults", strconv.Itoa(adults))

	var resp json.RawMessage
	if err := c.get(ctx, "fetch hotel offers", "/v3/shopping/hotel-offers", query, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// BookHotel creates a hotel order.
func (c *Client) BookHotel(ctx context.Context, order HotelOrder) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.post(ctx, "book hotel", "/v2/booking/hotel-orders", order, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
