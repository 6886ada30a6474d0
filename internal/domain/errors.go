package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: 404,
	}

	ErrMissingTitleOrScript = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Title and script are required",
		StatusCode: 400,
	}

	ErrEndpointNotFound = &AppError{
		Code:       "ENDPOINT_NOT_FOUND",
		Message:    "No webhook endpoint registered for this path",
		StatusCode: 404,
	}

	ErrInfluencerNotFound = &AppError{
		Code:       "INFLUENCER_NOT_FOUND",
		Message:    "Influencer not found",
		StatusCode: 404,
	}

	// Credential absence is a hard generation failure, not a routing miss:
	// a failed content row is persisted and the caller gets a 500.
	ErrAPIKeyNotFound = &AppError{
		Code:       "API_KEY_NOT_FOUND",
		Message:    "HeyGen API key not found",
		StatusCode: 500,
	}

	ErrVideoGeneration = &AppError{
		Code:       "VIDEO_GENERATION_FAILED",
		Message:    "Failed to create video with HeyGen",
		StatusCode: 500,
	}

	ErrJobNotFound = &AppError{
		Code:       "JOB_NOT_FOUND",
		Message:    "No generation job matches this video id",
		StatusCode: 404,
	}

	ErrRegistrationNotFound = &AppError{
		Code:       "REGISTRATION_NOT_FOUND",
		Message:    "Webhook registration not found",
		StatusCode: 404,
	}

	ErrRegistrationExists = &AppError{
		Code:       "REGISTRATION_ALREADY_EXISTS",
		Message:    "A registration of this kind already exists for this URL",
		StatusCode: 409,
	}

	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "User not found",
		StatusCode: 404,
	}

	ErrPlanNotFound = &AppError{
		Code:       "PLAN_NOT_FOUND",
		Message:    "No plan matches this price id",
		StatusCode: 404,
	}

	ErrCustomerNotFound = &AppError{
		Code:       "CUSTOMER_NOT_FOUND",
		Message:    "Customer not found",
		StatusCode: 404,
	}

	ErrStorage = &AppError{
		Code:       "STORAGE_ERROR",
		Message:    "Storage operation failed",
		StatusCode: 500,
	}
)
