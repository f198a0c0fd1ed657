package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Bump it
// only for breaking envelope changes; clients check it before parsing.
const EnvelopeVersion = 1

// APIEnvelope wraps success responses and simple errors.
//
// The version field MUST serialize as "v". The web client checks it
// before parsing the rest of the payload.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// APIErrorEnvelope wraps errors that carry a code and details.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned
// envelope. Registered as a huma transformer so handlers return plain
// DTOs and never see the envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Error statuses start with 4 or 5.
	isError := len(status) > 0 && (status[0] == '4' || status[0] == '5')

	if !isError {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: true,
			Data:    v,
		}, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" || apiErr.Details != nil {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: false,
		Data:    v,
	}, nil
}
