package handler

import (
	"encoding/json"
	"net/http"

	"github.com/osse101/Tycoon_Go/internal/logger"
	"github.com/osse101/Tycoon_Go/internal/validation"
)

// maxRequestBody caps decoded request bodies
const maxRequestBody = 1 << 16

// DecodeAndValidateRequest decodes a JSON request body into req and validates
// its struct tags. On failure the response has already been written and the
// handler should return.
//
//	var req InputRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Input"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := validation.Struct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validation.FormatFieldErrors(err),
		})
		return err
	}

	return nil
}
