package amadeus

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/viazuri/concierge/internal/normalize"
)

// SearchFlightsParams are the arguments for flight search. JSON tags match
// the tool-call wire names so the router can coerce payloads directly.
type SearchFlightsParams struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination,omitempty"`
	DepartureDate string  `json:"departure_date,omitempty"`
	ReturnDate    string  `json:"return_date,omitempty"`
	Adults        int     `json:"adults,omitempty"`
	TravelClass   string  `json:"travel_class,omitempty"`
	MaxPrice      float64 `json:"max_price,omitempty"`
	MaxResults    int     `json:"max_results,omitempty"`
}

// cleanParam trims a parameter and treats the literal strings the model
// sometimes emits for absent values ("None", "") as empty.
func cleanParam(v string) string {
	v = strings.TrimSpace(v)
	if v == "None" {
		return ""
	}
	return v
}

// normalizeSearchParams applies defaults, date repair, and IATA conversion.
func (c *Client) normalizeSearchParams(p SearchFlightsParams) SearchFlightsParams {
	p.Origin = cleanParam(p.Origin)
	p.Destination = cleanParam(p.Destination)
	p.DepartureDate = cleanParam(p.DepartureDate)
	p.ReturnDate = cleanParam(p.ReturnDate)
	p.TravelClass = cleanParam(p.TravelClass)

	if p.TravelClass == "" {
		p.TravelClass = "ECONOMY"
	}
	if p.Adults <= 0 {
		p.Adults = 1
	}
	if p.MaxResults <= 0 {
		p.MaxResults = 10
	}

	p.DepartureDate = normalize.Date(p.DepartureDate, c.refDate, p.ReturnDate)
	p.ReturnDate = normalize.Date(p.ReturnDate, c.refDate, "")

	p.Origin = normalize.ToIATACode(p.Origin)
	p.Destination = normalize.ToIATACode(p.Destination)

	return p
}

// searchResponse is the envelope both flight search endpoints share.
type searchResponse struct {
	Data []json.RawMessage `json:"data"`
}

// SearchFlights fetches flight offers, or flight inspiration destinations
// when no destination is supplied. The two supplier endpoints take different
// parameter sets and are deliberately not merged.
func (c *Client) SearchFlights(ctx context.Context, p SearchFlightsParams) ([]json.RawMessage, error) {
	p = c.normalizeSearchParams(p)

	var (
		path  string
		query = url.Values{}
	)

	if p.Destination != "" {
		// Full offer search between two points.
		path = "/v2/shopping/flight-offers"
		query.Set("originLocationCode", p.Origin)
		query.Set("destinationLocationCode", p.Destination)
		query.Set("adults", strconv.Itoa(p.Adults))
		query.Set("travelClass", strings.ToUpper(p.TravelClass))
		query.Set("currencyCode", "USD")
		query.Set("max", strconv.Itoa(p.MaxResults))
		if p.DepartureDate != "" {
			query.Set("departureDate", p.DepartureDate)
		}
		if p.ReturnDate != "" {
			query.Set("returnDate", p.ReturnDate)
		}
	} else {
		// Inspiration search: "where can I fly from X".
		path = "/v1/shopping/flight-destinations"
		query.Set("origin", p.Origin)
		if p.MaxPrice > 0 {
			query.Set("maxPrice", strconv.FormatFloat(p.MaxPrice, 'f', -1, 64))
		}
		if p.DepartureDate != "" {
			query.Set("departureDate", p.DepartureDate)
		}
		if p.ReturnDate != "" {
			query.Set("returnDate", p.ReturnDate)
		}
	}

	var resp searchResponse
	if err := c.get(ctx, "search flights", path, query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// pricingRequest wraps an offer for the pricing endpoint.
type pricingRequest struct {
	Data pricingRequestData `json:"data"`
}

type pricingRequestData struct {
	Type         string            `json:"type"`
	FlightOffers []json.RawMessage `json:"flightOffers"`
}

// PriceFlightOffer returns confirmed pricing for an offer previously
// returned by SearchFlights. The offer rides through untouched.
func (c *Client) PriceFlightOffer(ctx context.Context, offer json.RawMessage) (json.RawMessage, error) {
	req := pricingRequest{
		Data: pricingRequestData{
			Type:         "flight-offers-pricing",
			FlightOffers: []json.RawMessage{offer},
		},
	}

	var resp json.RawMessage
	if err := c.post(ctx, "price flight offer", "/v1/shopping/flight-offers/pricing", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateFlightOrder books the flights in the order payload.
func (c *Client) CreateFlightOrder(ctx context.Context, order FlightOrder) (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.post(ctx, "create flight order", "/v1/booking/flight-orders", order, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
