package heygen

// generateRequest is the body for POST /v2/template/{template_id}/generate
type generateRequest struct {
	Test      bool                `json:"test"`
	Caption   bool                `json:"caption"`
	Title     string              `json:"title"`
	Variables map[string]variable `json:"variables"`
}

type variable struct {
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Properties variableProperties `json:"properties"`
}

type variableProperties struct {
	Content string `json:"content"`
}

// scriptVariables builds the single Script text variable the templates expect.
func scriptVariables(script string) map[string]variable {
	return map[string]variable{
		"Script": {
			Name: "Script",
			Type: "text",
			Properties: variableProperties{
				Content: script,
			},
		},
	}
}

type generateResponse struct {
	Error *apiError     `json:"error"`
	Data  *generateData `json:"data"`
}

type generateData struct {
	VideoID string `json:"video_id"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CompletionEvent is the payload HeyGen posts to the completion callback.
type CompletionEvent struct {
	EventType string              `json:"event_type"`
	EventData CompletionEventData `json:"event_data"`
}

type CompletionEventData struct {
	VideoID string `json:"video_id"`
	URL     string `json:"url"`
}
