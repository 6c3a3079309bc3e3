package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viazuri/concierge/internal/amadeus"
	"github.com/viazuri/concierge/internal/log"
)

// BookingClient is the subset of the supplier client the router dispatches
// to. Defined here so tests can substitute a fake.
type BookingClient interface {
	SearchFlights(ctx context.Context, p amadeus.SearchFlightsParams) ([]json.RawMessage, error)
	PriceFlightOffer(ctx context.Context, offer json.RawMessage) (json.RawMessage, error)
	CreateFlightOrder(ctx context.Context, order amadeus.FlightOrder) (json.RawMessage, error)
	FetchHotels(ctx context.Context, p amadeus.FetchHotelsParams) (json.RawMessage, error)
	FetchHotelRatings(ctx context.Context, hotelIDs []string) (json.RawMessage, error)
	FetchHotelOffers(ctx context.Context, hotelID string, adults int) (json.RawMessage, error)
	BookHotel(ctx context.Context, order amadeus.HotelOrder) (json.RawMessage, error)
}

// Router validates model-issued tool calls and dispatches them to the
// booking client, coercing untyped payloads into the typed parameter
// records each operation takes.
type Router struct {
	registry *Registry
	client   BookingClient
	logger   log.Logger
}

// NewRouter creates a router over the given registry and client.
func NewRouter(registry *Registry, client BookingClient, logger log.Logger) *Router {
	return &Router{registry: registry, client: client, logger: logger}
}

// Registry returns the registry backing this router.
func (r *Router) Registry() *Registry {
	return r.registry
}

// coerce converts an untyped payload fragment into a typed record via a
// JSON round trip. This is the single point where the untyped wire becomes
// the typed core.
func coerce[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encoding payload: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding payload: %w", err)
	}
	return out, nil
}

// Execute validates the call, dispatches by exact action name, and returns
// the operation result.
//
// Failure policy: supplier failures (UpstreamError) degrade to an empty
// result with a structured error log so one failed external call does not
// abort the conversational turn. Input contract violations (unknown tool,
// missing parameters, invalid selector combinations, malformed payload
// shapes) are returned to the caller so the model can correct itself.
func (r *Router) Execute(ctx context.Context, action string, payload map[string]any) (any, error) {
	if err := r.registry.Validate(action, payload); err != nil {
		return nil, err
	}

	result, err := r.dispatch(ctx, action, payload)
	if err != nil {
		var upstream *amadeus.UpstreamError
		if errors.As(err, &upstream) {
			r.logger.Error("supplier call failed, degrading to empty result",
				"action", action,
				"status", upstream.Status,
				"error", err)
			return emptyResult(action), nil
		}
		return nil, err
	}
	return result, nil
}

// dispatch maps the action to a client operation. An action that passed
// validation but matches no branch means the registry and router have
// drifted apart; that is reported as ErrUnknownTool, never swallowed.
func (r *Router) dispatch(ctx context.Context, action string, payload map[string]any) (any, error) {
	switch action {
	case ActionSearchFlight:
		params, err := coerce[amadeus.SearchFlightsParams](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.SearchFlights(ctx, params)

	case ActionGetFlightPrice:
		offer, err := coerce[json.RawMessage](payload["flight_offer"])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.PriceFlightOffer(ctx, offer)

	case ActionBookFlight:
		order, err := coerce[amadeus.FlightOrder](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.CreateFlightOrder(ctx, order)

	case ActionFetchHotel:
		params, err := coerce[amadeus.FetchHotelsParams](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.FetchHotels(ctx, params)

	case ActionFetchHotelOffers:
		args, err := coerce[struct {
			HotelID    string `json:"hotel_id"`
			AdultCount int    `json:"adult_count"`
		}](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.FetchHotelOffers(ctx, args.HotelID, args.AdultCount)

	case ActionFetchHotelRating:
		args, err := coerce[struct {
			HotelIDs []string `json:"hotel_ids"`
		}](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.FetchHotelRatings(ctx, args.HotelIDs)

	case ActionBookHotel:
		order, err := coerce[amadeus.HotelOrder](payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return r.client.BookHotel(ctx, order)

	default:
		// Registry/router drift: validated but not routable.
		return nil, fmt.Errorf("%w: %s has no dispatch branch", ErrUnknownTool, action)
	}
}

// emptyResult returns the degraded value for a failed supplier call: an
// empty list for searches, an empty object for everything else.
func emptyResult(action string) any {
	if action == ActionSearchFlight {
		return []json.RawMessage{}
	}
	return map[string]any{}
}
