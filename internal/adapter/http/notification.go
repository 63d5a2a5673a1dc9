package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kosthub/kosthub/internal/app"
	"github.com/kosthub/kosthub/internal/domain"
)

// --- List ---

type ListNotificationsInput struct {
	Since string `query:"since" required:"false" doc:"Only return notifications created after this ISO 8601 timestamp"`
	Limit int    `query:"limit" required:"false" default:"50" doc:"Max results"`
}

type ListNotificationsOutput struct {
	Body []NotificationResponse
}

// --- Mark Read ---

type MarkReadInput struct {
	ID string `path:"id" doc:"Notification ID"`
}

type MarkReadOutput struct {
	Body struct {
		Read bool `json:"read" doc:"Always true on success"`
	}
}

type MarkAllReadInput struct{}

type MarkAllReadOutput struct {
	Body struct {
		Updated int64 `json:"updated" doc:"Number of notifications marked read"`
	}
}

// RegisterNotifications adds all notification API routes to the Huma API.
func RegisterNotifications(api huma.API, svc *app.NotificationService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List the caller's notifications",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
		var since time.Time
		if input.Since != "" {
			parsed, err := time.Parse(timeFmt, input.Since)
			if err != nil {
				return nil, toHumaError(&domain.ValidationError{Field: "since", Reason: "must be an ISO 8601 timestamp"})
			}
			since = parsed
		}

		notifications, err := svc.List(ctx, actorFrom(ctx), since, input.Limit)
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]NotificationResponse, len(notifications))
		for i, n := range notifications {
			resp[i] = toNotificationResponse(n)
		}
		return &ListNotificationsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "mark-notification-read",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/{id}/read",
		Summary:     "Mark a notification as read",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *MarkReadInput) (*MarkReadOutput, error) {
		if err := svc.MarkRead(ctx, actorFrom(ctx), input.ID); err != nil {
			return nil, toHumaError(err)
		}
		out := &MarkReadOutput{}
		out.Body.Read = true
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "mark-all-notifications-read",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/read-all",
		Summary:     "Mark all notifications as read",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *MarkAllReadInput) (*MarkAllReadOutput, error) {
		updated, err := svc.MarkAllRead(ctx, actorFrom(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &MarkAllReadOutput{}
		out.Body.Updated = updated
		return out, nil
	})
}
