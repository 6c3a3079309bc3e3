// Package tools declares the callable booking operations, validates inbound
// tool calls against those declarations, and dispatches validated calls to
// the supplier client.
//
// The declaration list is the single source of truth: the same list is
// rendered for the model (GenaiTools) and consulted by Validate, so the
// model is never offered a tool that validation would reject.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrUnknownTool indicates a tool call named no known declaration, or named
// a declaration the router has no dispatch branch for.
var ErrUnknownTool = errors.New("unknown tool")

// MissingParametersError reports the required fields absent from a tool-call
// payload.
type MissingParametersError struct {
	Tool    string
	Missing []string
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("tool %s: missing required parameters: %s", e.Tool, strings.Join(e.Missing, ", "))
}

// Param is one named parameter of a tool declaration.
type Param struct {
	Name        string
	Description string
	Type        genai.Type
	Items       *genai.Schema // element schema when Type is TypeArray
}

// Declaration describes one callable operation.
//
// Required lists the parameter names the model must supply. A nil Required
// means every listed parameter is required; an empty non-nil slice means
// none are (used by fetch_hotel, whose exactly-one selector rule is enforced
// by the booking client, not structurally).
type Declaration struct {
	Name        string
	Description string
	Params      []Param
	Required    []string
}

// requiredNames resolves the default-all rule.
func (d Declaration) requiredNames() []string {
	if d.Required != nil {
		return d.Required
	}
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

// Action names, shared by the declaration list and the router dispatch table.
const (
	ActionSearchFlight     = "search_flight"
	ActionGetFlightPrice   = "get_flight_price"
	ActionBookFlight       = "book_flight"
	ActionFetchHotel       = "fetch_hotel"
	ActionFetchHotelOffers = "fetch_hotel_offers"
	ActionFetchHotelRating = "fetch_hotel_rating"
	ActionBookHotel        = "book_hotel"
)

// declarations is loaded once and never mutated afterward.
var declarations = []Declaration{
	{
		Name: ActionSearchFlight,
		Description: "Search for flights from an origin, optionally to a destination. " +
			"With a destination this returns bookable flight offers; without one it returns " +
			"inspiration destinations reachable from the origin. Locations may be city names " +
			"or 3-letter IATA codes; dates are YYYY-MM-DD.",
		Params: []Param{
			{Name: "origin", Description: "Origin city or IATA code", Type: genai.TypeString},
			{Name: "destination", Description: "Destination city or IATA code", Type: genai.TypeString},
			{Name: "departure_date", Description: "Departure date, YYYY-MM-DD", Type: genai.TypeString},
			{Name: "return_date", Description: "Return date, YYYY-MM-DD", Type: genai.TypeString},
			{Name: "adults", Description: "Number of adult travelers", Type: genai.TypeInteger},
			{Name: "travel_class", Description: "ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST", Type: genai.TypeString},
			{Name: "max_price", Description: "Maximum price in USD", Type: genai.TypeNumber},
			{Name: "max_results", Description: "Maximum number of offers to return", Type: genai.TypeInteger},
		},
		Required: []string{"origin"},
	},
	{
		Name: ActionGetFlightPrice,
		Description: "Get confirmed pricing for a specific flight offer returned by search_flight, " +
			"including total cost, taxes, and fare breakdown.",
		Params: []Param{
			{Name: "flight_offer", Description: "A flight offer object from search_flight, passed through unchanged", Type: genai.TypeObject},
		},
	},
	{
		Name: ActionBookFlight,
		Description: "Create a flight order from a priced offer and traveler details " +
			"(names, dates of birth, contact, travel documents).",
		Params: []Param{
			{Name: "data", Description: "Flight order payload with type, flightOffers, and travelers", Type: genai.TypeObject},
		},
	},
	{
		Name: ActionFetchHotel,
		Description: "Fetch hotel information by city code, geo coordinates, or hotel ID. " +
			"Exactly one of city_code, geo_code, or hotel_id must be provided.",
		Params: []Param{
			{Name: "hotel_id", Description: "Supplier hotel identifier", Type: genai.TypeString},
			{Name: "geo_code", Description: "Object with latitude and longitude", Type: genai.TypeObject},
			{Name: "city_code", Description: "3-letter IATA city code", Type: genai.TypeString},
		},
		Required: []string{},
	},
	{
		Name:        ActionFetchHotelOffers,
		Description: "Fetch available room offers, prices, and availability for a hotel.",
		Params: []Param{
			{Name: "hotel_id", Description: "Supplier hotel identifier", Type: genai.TypeString},
			{Name: "adult_count", Description: "Number of adult guests", Type: genai.TypeInteger},
		},
		Required: []string{"hotel_id"},
	},
	{
		Name:        ActionFetchHotelRating,
		Description: "Fetch guest sentiment ratings for a list of hotel IDs.",
		Params: []Param{
			{
				Name: "hotel_ids", Description: "Hotel identifiers to rate", Type: genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
	},
	{
		Name: ActionBookHotel,
		Description: "Book a hotel using guest details, payment information, and a room offer ID. " +
			"Returns the booking confirmation.",
		Params: []Param{
			{Name: "data", Description: "Hotel order payload with guests, travelAgent, roomAssociations, and payment", Type: genai.TypeObject},
		},
	},
}

// Registry holds the immutable declaration set.
type Registry struct {
	byName map[string]Declaration
	list   []Declaration
}

// NewRegistry builds the registry from the static declaration list.
func NewRegistry() *Registry {
	byName := make(map[string]Declaration, len(declarations))
	for _, d := range declarations {
		byName[d.Name] = d
	}
	return &Registry{byName: byName, list: declarations}
}

// Declarations returns the declaration list in registration order.
func (r *Registry) Declarations() []Declaration {
	return r.list
}

// Validate checks a tool call structurally: the action must name a
// declaration and every required parameter must be present. Parameter value
// types are not checked; extra fields are ignored.
func (r *Registry) Validate(action string, payload map[string]any) error {
	decl, ok := r.byName[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTool, action)
	}

	var missing []string
	for _, name := range decl.requiredNames() {
		if _, present := payload[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingParametersError{Tool: action, Missing: missing}
	}
	return nil
}

// GenaiTools renders the declaration set in the shape the model protocol
// expects. The rendering is deterministic and derived from the same list
// Validate consults.
func (r *Registry) GenaiTools() []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(r.list))
	for _, d := range r.list {
		props := make(map[string]*genai.Schema, len(d.Params))
		for _, p := range d.Params {
			props[p.Name] = &genai.Schema{
				Type:        p.Type,
				Description: p.Description,
				Items:       p.Items,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   d.requiredNames(),
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}
