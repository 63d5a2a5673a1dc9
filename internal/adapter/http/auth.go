package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- Sign Up ---

type SignUpInput struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Password string `json:"password" minLength:"8" doc:"Account password"`
		FullName string `json:"full_name" minLength:"1" maxLength:"255" doc:"Display name"`
		Phone    string `json:"phone,omitempty" doc:"Contact phone"`
		Role     string `json:"role" enum:"tenant,owner" doc:"Account role"`
	}
}

type SignUpOutput struct {
	Body ProfileResponse
}

// --- Sign In ---

type SignInInput struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email"`
		Password string `json:"password" doc:"Account password"`
	}
}

type SignInOutput struct {
	Body struct {
		Token     string          `json:"token" doc:"Bearer token for subsequent requests"`
		ExpiresAt string          `json:"expires_at" doc:"Token expiry (ISO 8601)"`
		Profile   ProfileResponse `json:"profile" doc:"The signed-in profile"`
	}
}

// --- Sign Out ---

type SignOutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type SignOutOutput struct {
	Body struct {
		SignedOut bool `json:"signed_out" doc:"Always true on success"`
	}
}

// --- Profile ---

type GetProfileInput struct{}

type GetProfileOutput struct {
	Body ProfileResponse
}

type UpdateProfileInput struct {
	Body struct {
		FullName string `json:"full_name,omitempty" doc:"New display name"`
		Phone    string `json:"phone,omitempty" doc:"New contact phone"`
		Avatar   []byte `json:"avatar,omitempty" doc:"Avatar image (base64 JPEG)"`
	}
}

type UpdateProfileOutput struct {
	Body ProfileResponse
}

// RegisterAuth adds authentication and profile routes to the Huma API.
func RegisterAuth(api huma.API, svc *app.AccountService) {
	huma.Register(api, huma.Operation{
		OperationID: "sign-up",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signup",
		Summary:     "Register a new account",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignUpInput) (*SignUpOutput, error) {
		profile, err := svc.SignUp(ctx, input.Body.Email, input.Body.Password,
			input.Body.FullName, input.Body.Phone, domain.Role(input.Body.Role))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SignUpOutput{Body: toProfileResponse(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sign-in",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signin",
		Summary:     "Authenticate and obtain a session token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignInInput) (*SignInOutput, error) {
		session, profile, err := svc.SignIn(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &SignInOutput{}
		out.Body.Token = session.Token
		out.Body.ExpiresAt = session.ExpiresAt.UTC().Format(timeFmt)
		out.Body.Profile = toProfileResponse(profile)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "sign-out",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signout",
		Summary:     "Invalidate the current session",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignOutInput) (*SignOutOutput, error) {
		token := input.Authorization
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
		if err := svc.SignOut(ctx, token); err != nil {
			return nil, toHumaError(err)
		}
		out := &SignOutOutput{}
		out.Body.SignedOut = true
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get the authenticated profile",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
		profile, err := svc.GetProfile(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetProfileOutput{Body: toProfileResponse(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/profile",
		Summary:     "Update the authenticated profile",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		profile, err := svc.UpdateProfile(ctx, actorFrom(ctx),
			input.Body.FullName, input.Body.Phone, input.Body.Avatar)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UpdateProfileOutput{Body: toProfileResponse(profile)}, nil
	})
}
