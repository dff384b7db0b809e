// README: Itinerary output schema (AgentOutput and its parts) and normalization constants.
package itinerary

const (
	BlockMorning   = "morning"
	BlockAfternoon = "afternoon"
	BlockEvening   = "evening"

	// PlaceholderTitle stands in for an activity whose source carried no usable title.
	PlaceholderTitle = "Activity"
	// FallbackActivity fills the synthetic day injected into an otherwise empty itinerary.
	FallbackActivity = "Explore downtown"
)

// blockNames is the canonical day order.
var blockNames = []string{BlockMorning, BlockAfternoon, BlockEvening}

// ActivityCard is a single suggested activity or venue. Optional fields encode as null.
type ActivityCard struct {
	Title              string   `json:"title"`
	Address            *string  `json:"address"`
	Lat                *float64 `json:"lat"`
	Lon                *float64 `json:"lon"`
	PriceTier          *string  `json:"price_tier"`
	DurationMinutes    *int     `json:"duration_minutes"`
	Tags               []string `json:"tags"`
	WheelchairFriendly *bool    `json:"wheelchair_friendly"`
	ChildFriendly      *bool    `json:"child_friendly"`
	URL                *string  `json:"url"`
}

// DayBlock groups the activities of one part of a day.
type DayBlock struct {
	Block      string         `json:"block"`
	Activities []ActivityCard `json:"activities"`
}

// DayPlan is one calendar day of the itinerary.
type DayPlan struct {
	Date   string     `json:"date"`
	Blocks []DayBlock `json:"blocks"`
}

// AgentOutput is the structured plan returned by the structured endpoint.
type AgentOutput struct {
	Itinerary        []DayPlan      `json:"itinerary"`
	Restaurants      []ActivityCard `json:"restaurants"`
	PackingChecklist []string       `json:"packing_checklist"`
	Meta             map[string]any `json:"meta"`
}

func newOutput() AgentOutput {
	return AgentOutput{
		Itinerary:        []DayPlan{},
		Restaurants:      []ActivityCard{},
		PackingChecklist: []string{},
		Meta:             map[string]any{},
	}
}

func card(title string) ActivityCard {
	return ActivityCard{Title: title, Tags: []string{}}
}
