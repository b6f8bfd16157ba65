// Package traveller exposes the additional traveller endpoints under /api/AdditionalTravellers.
package traveller

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/travel-profiles/internal/platform/logging"
	travellersvc "github.com/janisto/travel-profiles/internal/service/traveller"
)

const (
	basePath = "/api/AdditionalTravellers"
	tag      = "AdditionalTravellers"
)

// Register registers traveller endpoints.
func Register(api huma.API, svc travellersvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-travellers",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List travellers",
		Tags:        []string{tag},
	}, func(ctx context.Context, _ *TravellerListInput) (*TravellerListOutput, error) {
		list, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &TravellerListOutput{Body: toHTTPTravellers(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-traveller",
		Method:      http.MethodGet,
		Path:        basePath + "/{additionalId}",
		Summary:     "Get traveller",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TravellerPath) (*TravellerOutput, error) {
		t, err := svc.Get(ctx, input.AdditionalID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &TravellerOutput{Body: toHTTPTraveller(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-customer-travellers",
		Method:      http.MethodGet,
		Path:        basePath + "/CustomerId/{customerId}",
		Summary:     "List a customer's travellers",
		Description: "Returns 404 when the customer has no travellers.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *CustomerPath) (*TravellerListOutput, error) {
		list, err := svc.ListByCustomer(ctx, input.CustomerID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		if len(list) == 0 {
			return nil, huma.Error404NotFound("no travellers for customer")
		}
		return &TravellerListOutput{Body: toHTTPTravellers(list)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-traveller",
		Method:      http.MethodPost,
		Path:        basePath,
		Summary:     "Add traveller",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TravellerAddInput) (*TravellerOutput, error) {
		t, err := svc.Add(ctx, &travellersvc.Traveller{
			CustomerID:     input.Body.CustomerID,
			AdditionalName: input.Body.AdditionalName,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &TravellerOutput{Body: toHTTPTraveller(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-traveller",
		Method:      http.MethodPut,
		Path:        basePath + "/{customerId}",
		Summary:     "Update traveller",
		Description: "Replaces the traveller identified by additionalId in the body.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TravellerUpdateInput) (*TravellerOutput, error) {
		t, err := svc.Update(ctx, input.CustomerID, &travellersvc.Traveller{
			AdditionalID:   input.Body.AdditionalID,
			CustomerID:     input.Body.CustomerID,
			AdditionalName: input.Body.AdditionalName,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &TravellerOutput{Body: toHTTPTraveller(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-traveller",
		Method:      http.MethodDelete,
		Path:        basePath + "/{additionalId}",
		Summary:     "Delete traveller",
		Description: "Deletes the traveller and returns the removed record.",
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TravellerPath) (*TravellerOutput, error) {
		t, err := svc.Delete(ctx, input.AdditionalID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &TravellerOutput{Body: toHTTPTraveller(t)}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, travellersvc.ErrNotFound):
		return huma.Error404NotFound("traveller not found")
	case errors.Is(err, travellersvc.ErrOwnerNotFound):
		return huma.Error422UnprocessableEntity("customer profile does not exist")
	case errors.Is(err, travellersvc.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		applog.LogError(ctx, "traveller operation failed", err)
		return huma.Error500InternalServerError("internal server error")
	}
}
