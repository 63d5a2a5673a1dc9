package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
)

// --- Create Contract ---

type CreateContractInput struct {
	Body struct {
		BookingID string `json:"booking_id" minLength:"1" doc:"Booking to sign a contract for"`
		EndDate   string `json:"end_date" doc:"Lease end date (YYYY-MM-DD)"`
		Notes     string `json:"notes,omitempty" doc:"Free-form notes"`
	}
}

type CreateContractOutput struct {
	Body ContractResponse
}

// --- Get / List / Terminate ---

type GetContractInput struct {
	ID string `path:"id" doc:"Contract ID"`
}

type GetContractOutput struct {
	Body ContractResponse
}

type ListContractsInput struct{}

type ListContractsOutput struct {
	Body []ContractResponse
}

type TerminateContractInput struct {
	ID string `path:"id" doc:"Contract ID"`
}

type TerminateContractOutput struct {
	Body ContractResponse
}

// RegisterContracts adds all contract API routes to the Huma API.
func RegisterContracts(api huma.API, svc *app.ContractService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-contract",
		Method:      http.MethodPost,
		Path:        "/api/v1/contracts",
		Summary:     "Sign a contract from an approved booking",
		Tags:        []string{"Contracts"},
	}, func(ctx context.Context, input *CreateContractInput) (*CreateContractOutput, error) {
		endDate, err := parseDate(input.Body.EndDate, "end_date")
		if err != nil {
			return nil, toHumaError(err)
		}

		contract, err := svc.Create(ctx, actorFrom(ctx), input.Body.BookingID, endDate, input.Body.Notes)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateContractOutput{Body: toContractResponse(contract)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-contract",
		Method:      http.MethodGet,
		Path:        "/api/v1/contracts/{id}",
		Summary:     "Get a contract by ID",
		Tags:        []string{"Contracts"},
	}, func(ctx context.Context, input *GetContractInput) (*GetContractOutput, error) {
		contract, err := svc.Get(ctx, actorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetContractOutput{Body: toContractResponse(contract)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-contracts",
		Method:      http.MethodGet,
		Path:        "/api/v1/contracts",
		Summary:     "List the caller's contracts",
		Tags:        []string{"Contracts"},
	}, func(ctx context.Context, input *ListContractsInput) (*ListContractsOutput, error) {
		contracts, err := svc.ListMine(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]ContractResponse, len(contracts))
		for i, c := range contracts {
			resp[i] = toContractResponse(c)
		}
		return &ListContractsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "terminate-contract",
		Method:      http.MethodPost,
		Path:        "/api/v1/contracts/{id}/terminate",
		Summary:     "Terminate a contract",
		Tags:        []string{"Contracts"},
	}, func(ctx context.Context, input *TerminateContractInput) (*TerminateContractOutput, error) {
		contract, err := svc.Terminate(ctx, actorFrom(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TerminateContractOutput{Body: toContractResponse(contract)}, nil
	})
}
