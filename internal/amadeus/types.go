package amadeus

// Wire types mirroring the supplier's JSON schema. These are pass-through
// value objects: the service does not interpret their business meaning
// beyond dispatch and serialization, so optional sub-objects stay pointers
// and unknown detail rides along untouched via omitempty.

// GeoCode is a latitude/longitude pair for hotel lookup.
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// --- Flight offers ---

// Aircraft identifies the equipment operating a segment.
type Aircraft struct {
	Code string `json:"code"`
}

// Operating names the carrier actually flying a segment.
type Operating struct {
	CarrierCode string `json:"carrierCode"`
}

// Location is an airport touch point within a segment.
type Location struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

// Segment is one flight leg of an itinerary.
type Segment struct {
	Departure       Location  `json:"departure"`
	Arrival         Location  `json:"arrival"`
	CarrierCode     string    `json:"carrierCode"`
	Number          string    `json:"number"`
	Aircraft        Aircraft  `json:"aircraft"`
	Operating       Operating `json:"operating"`
	Duration        string    `json:"duration"`
	ID              string    `json:"id"`
	NumberOfStops   int       `json:"numberOfStops"`
	BlacklistedInEU bool      `json:"blacklistedInEU"`
}

// Itinerary is an ordered sequence of segments.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Fee is a supplier-imposed surcharge on a fare.
type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// AdditionalService is an optional paid extra (bags, seats).
type AdditionalService struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// Price is the fare breakdown for an offer or traveler.
type Price struct {
	Currency           string              `json:"currency"`
	Total              string              `json:"total"`
	Base               string              `json:"base"`
	Fees               []Fee               `json:"fees,omitempty"`
	GrandTotal         string              `json:"grandTotal,omitempty"`
	AdditionalServices []AdditionalService `json:"additionalServices,omitempty"`
}

// PricingOptions carries fare filters the offer was priced under.
type PricingOptions struct {
	FareType                []string `json:"fareType"`
	IncludedCheckedBagsOnly bool     `json:"includedCheckedBagsOnly"`
}

// BagAllowance is a checked or cabin baggage quantity.
type BagAllowance struct {
	Quantity int `json:"quantity"`
}

// AmenityProvider names who provides an amenity.
type AmenityProvider struct {
	Name string `json:"name"`
}

// Amenity is a bookable or included service on a fare.
type Amenity struct {
	Description     string          `json:"description"`
	IsChargeable    bool            `json:"isChargeable"`
	AmenityType     string          `json:"amenityType"`
	AmenityProvider AmenityProvider `json:"amenityProvider"`
}

// FareDetailsBySegment describes the fare applied to one segment.
type FareDetailsBySegment struct {
	SegmentID           string       `json:"segmentId"`
	Cabin               string       `json:"cabin"`
	FareBasis           string       `json:"fareBasis"`
	BrandedFare         string       `json:"brandedFare,omitempty"`
	BrandedFareLabel    string       `json:"brandedFareLabel,omitempty"`
	Class               string       `json:"class"`
	IncludedCheckedBags BagAllowance `json:"includedCheckedBags"`
	IncludedCabinBags   BagAllowance `json:"includedCabinBags"`
	Amenities           []Amenity    `json:"amenities,omitempty"`
}

// TravelerPricing is the per-traveler fare of an offer.
type TravelerPricing struct {
	TravelerID           string                 `json:"travelerId"`
	FareOption           string                 `json:"fareOption"`
	TravelerType         string                 `json:"travelerType"`
	Price                Price                  `json:"price"`
	FareDetailsBySegment []FareDetailsBySegment `json:"fareDetailsBySegment"`
}

// FlightOffer is a bookable flight product returned by offer search.
type FlightOffer struct {
	Type                     string            `json:"type"`
	ID                       string            `json:"id"`
	Source                   string            `json:"source"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired"`
	NonHomogeneous           bool              `json:"nonHomogeneous"`
	OneWay                   bool              `json:"oneWay"`
	IsUpsellOffer            bool              `json:"isUpsellOffer"`
	LastTicketingDate        string            `json:"lastTicketingDate"`
	LastTicketingDateTime    string            `json:"lastTicketingDateTime,omitempty"`
	NumberOfBookableSeats    int               `json:"numberOfBookableSeats"`
	Itineraries              []Itinerary       `json:"itineraries"`
	Price                    Price             `json:"price"`
	PricingOptions           PricingOptions    `json:"pricingOptions"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings"`
}

// --- Travelers ---

// FullName is a traveler's name as printed in a travel document.
type FullName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Phone is a traveler contact number.
type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

// Contact is a traveler's email and phone set.
type Contact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []Phone `json:"phones"`
}

// Document is a travel document (passport) record.
type Document struct {
	DocumentType     string `json:"documentType"`
	BirthPlace       string `json:"birthPlace"`
	IssuanceLocation string `json:"issuanceLocation"`
	IssuanceDate     string `json:"issuanceDate"`
	Number           string `json:"number"`
	ExpiryDate       string `json:"expiryDate"`
	IssuanceCountry  string `json:"issuanceCountry"`
	ValidityCountry  string `json:"validityCountry"`
	Nationality      string `json:"nationality"`
	Holder           bool   `json:"holder"`
}

// Traveller is a passenger attached to a flight order.
type Traveller struct {
	ID          string     `json:"id"`
	DateOfBirth string     `json:"dateOfBirth"`
	Name        FullName   `json:"name"`
	Gender      string     `json:"gender"`
	Contact     Contact    `json:"contact"`
	Documents   []Document `json:"documents"`
}

// --- Flight orders ---

// FlightOrderData is the order payload body.
type FlightOrderData struct {
	Type         string        `json:"type"`
	FlightOffers []FlightOffer `json:"flightOffers"`
	Travelers    []Traveller   `json:"travelers"`
}

// FlightOrder wraps the order payload the supplier expects.
type FlightOrder struct {
	Data FlightOrderData `json:"data"`
}

// --- Hotel orders ---

// Guest is a hotel guest record.
type Guest struct {
	TID       int    `json:"tid"`
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// PaymentCardInfo is a card used to guarantee a hotel booking.
type PaymentCardInfo struct {
	VendorCode string `json:"vendorCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	HolderName string `json:"holderName"`
}

// PaymentCard wraps card info per the supplier schema.
type PaymentCard struct {
	PaymentCardInfo PaymentCardInfo `json:"paymentCardInfo"`
}

// Payment is the hotel order payment record.
type Payment struct {
	Method      string      `json:"method"`
	PaymentCard PaymentCard `json:"paymentCard"`
}

// AgentContact is the booking agent's contact record.
type AgentContact struct {
	Email string `json:"email"`
}

// TravelAgent identifies the agent of record for a hotel order.
type TravelAgent struct {
	Contact AgentContact `json:"contact"`
}

// GuestReference links a room to a guest by reference id.
type GuestReference struct {
	GuestReference string `json:"guestReference"`
}

// RoomAssociation ties guests to a specific hotel offer.
type RoomAssociation struct {
	GuestReferences []GuestReference `json:"guestReferences"`
	HotelOfferID    string           `json:"hotelOfferId"`
}

// HotelOrderData is the hotel order payload body.
type HotelOrderData struct {
	Type             string            `json:"type"`
	Guests           []Guest           `json:"guests"`
	TravelAgent      TravelAgent       `json:"travelAgent"`
	RoomAssociations []RoomAssociation `json:"roomAssociations"`
	Payment          Payment           `json:"payment"`
}

// HotelOrder wraps the hotel order payload the supplier expects.
type HotelOrder struct {
	Data HotelOrderData `json:"data"`
}
