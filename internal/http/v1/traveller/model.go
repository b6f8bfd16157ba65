package traveller

import travellersvc "github.com/janisto/travel-profiles/internal/service/traveller"

// Traveller represents an additional traveller response.
type Traveller struct {
	AdditionalID   int64  `json:"additionalId"   doc:"Traveller identifier"        example:"1"`
	CustomerID     int64  `json:"customerId"     doc:"Owning customer identifier"  example:"1"`
	AdditionalName string `json:"additionalName" doc:"Traveller name"              example:"Bob"`
}

func toHTTPTraveller(t *travellersvc.Traveller) Traveller {
	return Traveller{AdditionalID: t.AdditionalID, CustomerID: t.CustomerID, AdditionalName: t.AdditionalName}
}

func toHTTPTravellers(in []travellersvc.Traveller) []Traveller {
	out := make([]Traveller, 0, len(in))
	for i := range in {
		out = append(out, toHTTPTraveller(&in[i]))
	}
	return out
}
