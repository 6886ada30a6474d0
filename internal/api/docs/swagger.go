package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// WebhookData represents a webhook registration
type WebhookData struct {
	ID              string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID          string `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	InfluencerID    string `json:"influencer_id" example:"550e8400-e29b-41d4-a716-446655440002"`
	Name            string `json:"name" example:"Launch trigger"`
	URL             string `json:"url" example:"https://api.example.com/hooks/ava"`
	Event           string `json:"event" example:"video.completed"`
	Kind            string `json:"kind" example:"inbound-trigger"`
	Active          bool   `json:"active" example:"true"`
	LastTriggeredAt string `json:"last_triggered_at,omitempty" example:"2024-01-01T00:00:00Z"`
	CreatedAt       string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// CreateWebhookRequest represents the webhook creation payload
type CreateWebhookRequest struct {
	UserID        string   `json:"userId" example:"550e8400-e29b-41d4-a716-446655440001"`
	Name          string   `json:"name" example:"Launch trigger"`
	URL           string   `json:"url" example:"https://api.example.com/hooks/ava"`
	Event         string   `json:"event" example:"video.completed"`
	Kind          string   `json:"kind" example:"inbound-trigger"`
	InfluencerIDs []string `json:"influencerIds"`
}

// CreateWebhookResponse wraps the created registrations and their shared secret
type CreateWebhookResponse struct {
	Webhooks []WebhookData `json:"webhooks"`
	Secret   string        `json:"secret" example:"3f1a..."`
}

// ListWebhooksResponse wraps a user's registrations
type ListWebhooksResponse struct {
	Webhooks []WebhookData `json:"webhooks"`
}

// TriggerRequest represents the inbound generation trigger payload
type TriggerRequest struct {
	Title  string `json:"title" example:"Launch teaser"`
	Script string `json:"script" example:"Hello and welcome..."`
}

// TriggerResponse represents a successfully submitted generation job
type TriggerResponse struct {
	Success bool   `json:"success" example:"true"`
	VideoID string `json:"videoId" example:"9f3b2c1d"`
}

// CallbackRequest represents the provider completion callback payload
type CallbackRequest struct {
	EventType string            `json:"event_type" example:"avatar_video.success"`
	EventData CallbackEventData `json:"event_data"`
}

// CallbackEventData carries the correlation id and resulting media URL
type CallbackEventData struct {
	VideoID string `json:"video_id" example:"9f3b2c1d"`
	URL     string `json:"url" example:"https://resource.heygen.com/video.mp4"`
}

// ContentData represents a generation job record
type ContentData struct {
	ID           string `json:"id" example:"550e8400-e29b-41d4-a716-446655440003"`
	InfluencerID string `json:"influencer_id" example:"550e8400-e29b-41d4-a716-446655440002"`
	Title        string `json:"title" example:"Launch teaser"`
	Script       string `json:"script" example:"Hello and welcome..."`
	Status       string `json:"status" example:"completed"`
	VideoID      string `json:"video_id,omitempty" example:"9f3b2c1d"`
	VideoURL     string `json:"video_url,omitempty" example:"https://resource.heygen.com/video.mp4"`
	Error        string `json:"error,omitempty"`
	CreatedAt    string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// ListContentsResponse wraps an influencer's generation history
type ListContentsResponse struct {
	Contents []ContentData `json:"contents"`
}

// CancelSubscriptionRequest represents the subscription cancel payload
type CancelSubscriptionRequest struct {
	Email string `json:"email" example:"ava@example.com"`
	SubID string `json:"subId" example:"sub_1QbgQj"`
}

// SetHeyGenKeyRequest represents the provider key payload
type SetHeyGenKeyRequest struct {
	HeyGenKey string `json:"heygenKey" example:"hg_..."`
}

// SuccessResponse represents a bare success acknowledgement
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// ErrorMessageResponse represents a flat error payload
type ErrorMessageResponse struct {
	Error string `json:"error" example:"Title and script are required"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "AI Influencer Backend API",
		Version:     "v1.0.0",
		Description: "Webhook-driven orchestration for AI influencer video generation: dynamic trigger endpoints, HeyGen job lifecycle, subscriber fan-out and Stripe billing",
		Host:        "localhost:5000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/webhooks - Create webhook registrations
		endpoint.New(
			endpoint.POST,
			"/webhooks",
			endpoint.WithTags("Webhooks"),
			endpoint.WithSummary("Create webhook registrations"),
			endpoint.WithDescription("Creates one registration per influencer id. Inbound-trigger registrations are mounted by the registry on its next refresh."),
			endpoint.WithBody(CreateWebhookRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CreateWebhookResponse{}, "201", "Registrations created"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Missing required fields"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "A registration of this kind already exists for this URL"}, "409", "Conflict"),
				response.New(ErrorMessageResponse{Error: "Failed to create webhook"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/webhooks - List webhook registrations
		endpoint.New(
			endpoint.GET,
			"/webhooks",
			endpoint.WithTags("Webhooks"),
			endpoint.WithSummary("List webhook registrations"),
			endpoint.WithDescription("Lists all registrations owned by a user, newest first"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("userId", parameter.Query, parameter.WithDescription("Owning user id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListWebhooksResponse{}, "200", "Registrations listed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Missing userId query parameter"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Failed to fetch webhooks"}, "500", "Internal Server Error"),
			}),
		),

		// PATCH /v1/webhooks/:id - Update webhook registration
		endpoint.New(
			endpoint.PATCH,
			"/webhooks/{id}",
			endpoint.WithTags("Webhooks"),
			endpoint.WithSummary("Update a webhook registration"),
			endpoint.WithDescription("Partially updates a registration. Deactivating an inbound trigger stops new mounts; existing mounts follow the registry's unmount policy."),
			endpoint.WithBody(WebhookData{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Registration id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(WebhookData{}, "200", "Registration updated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Invalid webhook ID"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Webhook registration not found"}, "404", "Not Found"),
				response.New(ErrorMessageResponse{Error: "Failed to update webhook"}, "500", "Internal Server Error"),
			}),
		),

		// DELETE /v1/webhooks/:id - Delete webhook registration
		endpoint.New(
			endpoint.DELETE,
			"/webhooks/{id}",
			endpoint.WithTags("Webhooks"),
			endpoint.WithSummary("Delete a webhook registration"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Registration id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(struct{}{}, "204", "Registration deleted"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Webhook registration not found"}, "404", "Not Found"),
				response.New(ErrorMessageResponse{Error: "Failed to delete webhook"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/heygen/callback - Provider completion callback
		endpoint.New(
			endpoint.POST,
			"/heygen/callback",
			endpoint.WithTags("Generation"),
			endpoint.WithSummary("Provider completion callback"),
			endpoint.WithDescription("Correlates the callback to a stored job by video_id, marks it completed and fans the result out to automation subscribers"),
			endpoint.WithBody(CallbackRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SuccessResponse{}, "200", "Callback processed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "video_id is required"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "No generation job matches this video id"}, "404", "Not Found"),
				response.New(ErrorMessageResponse{Error: "Failed to process callback"}, "500", "Internal Server Error"),
			}),
		),

		// GET /v1/influencers/:id/contents - Generation history
		endpoint.New(
			endpoint.GET,
			"/influencers/{id}/contents",
			endpoint.WithTags("Generation"),
			endpoint.WithSummary("List an influencer's generation jobs"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Influencer id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListContentsResponse{}, "200", "Contents listed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Invalid influencer ID"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Failed to fetch contents"}, "500", "Internal Server Error"),
			}),
		),

		// PUT /v1/users/:id/heygen-key - Store provider credential
		endpoint.New(
			endpoint.PUT,
			"/users/{id}/heygen-key",
			endpoint.WithTags("Credentials"),
			endpoint.WithSummary("Store a user's HeyGen API key"),
			endpoint.WithBody(SetHeyGenKeyRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("User id")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SuccessResponse{}, "200", "Key stored"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "heygenKey is required"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Failed to store API key"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/stripe/webhook - Stripe event delivery
		endpoint.New(
			endpoint.POST,
			"/stripe/webhook",
			endpoint.WithTags("Billing"),
			endpoint.WithSummary("Stripe webhook"),
			endpoint.WithDescription("Verifies the Stripe signature and applies plan changes from checkout and subscription events"),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(struct{}{}, "200", "Event acknowledged"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Failed to process webhook"}, "500", "Internal Server Error"),
			}),
		),

		// POST /v1/stripe/cancel-subscription - Cancel a subscription
		endpoint.New(
			endpoint.POST,
			"/stripe/cancel-subscription",
			endpoint.WithTags("Billing"),
			endpoint.WithSummary("Cancel a subscription"),
			endpoint.WithBody(CancelSubscriptionRequest{}),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SuccessResponse{}, "200", "Subscription cancelled"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorMessageResponse{Error: "Email is required"}, "400", "Bad Request"),
				response.New(ErrorMessageResponse{Error: "Customer not found"}, "404", "Not Found"),
				response.New(ErrorMessageResponse{Error: "Failed to cancel subscription"}, "500", "Internal Server Error"),
			}),
		),

		// GET /health - Liveness
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness check"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is running"),
			}),
		),

		// GET /ready - Readiness
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness check"),
			endpoint.WithDescription("Verifies database connectivity"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is ready"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(HealthResponse{Status: "unavailable"}, "503", "Service Unavailable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
