package itinerary

import "tripmate/internal/modules/booking"

// StubPlan is the fixed plan served when no LLM backend is available.
func StubPlan(bc booking.Context) AgentOutput {
	return AgentOutput{
		Itinerary: []DayPlan{{
			Date: bc.Start(),
			Blocks: []DayBlock{
				{Block: BlockMorning, Activities: []ActivityCard{stubCard("City walk", "$", "outdoor")}},
				{Block: BlockAfternoon, Activities: []ActivityCard{stubCard("Museum visit", "$$", "culture")}},
				{Block: BlockEvening, Activities: []ActivityCard{stubCard("Family-friendly dinner", "$$", "food", "kids")}},
			},
		}},
		Restaurants:      []ActivityCard{stubCard("Vegan Deli", "$$", "vegan")},
		PackingChecklist: []string{"light jacket", "comfortable shoes", "umbrella"},
		Meta:             map[string]any{"note": "LLM disabled; returned stub"},
	}
}

func stubCard(title, price string, tags ...string) ActivityCard {
	c := card(title)
	c.PriceTier = &price
	c.Tags = append(c.Tags, tags...)
	return c
}
