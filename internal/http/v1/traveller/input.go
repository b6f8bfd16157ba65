package traveller

// TravellerListInput for GET /api/AdditionalTravellers
type TravellerListInput struct{}

// TravellerPath identifies a traveller.
type TravellerPath struct {
	AdditionalID int64 `path:"additionalId" minimum:"1" doc:"Traveller identifier" example:"1"`
}

// CustomerPath identifies the owning customer.
type CustomerPath struct {
	CustomerID int64 `path:"customerId" minimum:"1" doc:"Customer identifier" example:"1"`
}

// TravellerAddInput for POST /api/AdditionalTravellers
type TravellerAddInput struct {
	Body struct {
		CustomerID     int64  `json:"customerId"     minimum:"1"                 required:"true" doc:"Owning customer identifier" example:"1"`
		AdditionalName string `json:"additionalName" minLength:"1" maxLength:"255" required:"true" doc:"Traveller name"             example:"Bob"`
	}
}

// TravellerUpdateInput for PUT /api/AdditionalTravellers/{customerId}
type TravellerUpdateInput struct {
	CustomerPath
	Body struct {
		AdditionalID   int64  `json:"additionalId"   minimum:"1"                 required:"true" doc:"Traveller identifier"       example:"1"`
		CustomerID     int64  `json:"customerId"     minimum:"1"                 required:"true" doc:"Owning customer identifier" example:"1"`
		AdditionalName string `json:"additionalName" minLength:"1" maxLength:"255" required:"true" doc:"Traveller name"             example:"Robert"`
	}
}
