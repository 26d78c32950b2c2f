package ctdf

type RouteOptionType string

const (
	RouteOptionTypeDirect       RouteOptionType = "Direct"
	RouteOptionTypeIntermediate RouteOptionType = "Intermediate"
)

type PlanState string

const (
	PlanStateResolvingOrigin      PlanState = "ResolvingOrigin"
	PlanStateResolvingDestination PlanState = "ResolvingDestination"
	PlanStateSearchingDirect      PlanState = "SearchingDirect"
	PlanStateSearchingCorridor    PlanState = "SearchingCorridor"
	PlanStatePresentingResults    PlanState = "PresentingResults"
	PlanStateNoCandidates         PlanState = "NoCandidates"
	PlanStateSameLocation         PlanState = "SameLocation"
	PlanStateDone                 PlanState = "Done"
)

type RoutePlan struct {
	SessionID string `groups:"basic"`

	Origin      Location `groups:"basic"`
	Destination Location `groups:"basic"`

	Options []RouteOption `groups:"basic"`

	State PlanState `groups:"basic"`
}

type RouteOption struct {
	Type       RouteOptionType `groups:"basic"`
	Connection Connection      `groups:"basic"`

	// Via is the corridor station the option hands over at
	Via *Location `groups:"basic"`

	CoveredKm  float64 `groups:"basic"`
	TotalKm    float64 `groups:"basic"`
	Percentage float64 `groups:"basic"`

	Provider      *ProviderEntry `groups:"basic"`
	ProviderError string         `groups:"detailed"`
}

// IsDirect reports whether the plan is a single direct connection
func (p *RoutePlan) IsDirect() bool {
	return len(p.Options) == 1 && p.Options[0].Type == RouteOptionTypeDirect
}

// CorridorHit is a corridor candidate station together with the connection
// the transit service found to it
type CorridorHit struct {
	Station    Location
	Connection Connection
}

type ProviderEntry struct {
	CountryCode string `json:"country_code" yaml:"country_code" csv:"country_code" groups:"basic"`
	Name        string `json:"name" yaml:"name" csv:"name" groups:"basic"`
	URL         string `json:"url" yaml:"url" csv:"url" groups:"basic"`
}
