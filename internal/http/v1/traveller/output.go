package traveller

// TravellerListOutput carries a list of travellers.
type TravellerListOutput struct {
	Body []Traveller
}

// TravellerOutput carries a single traveller.
type TravellerOutput struct {
	Body Traveller
}
