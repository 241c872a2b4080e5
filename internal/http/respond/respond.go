// Package respond holds the JSON response helpers shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/wolfman30/yt-re-growth-api/internal/validation"
)

// maxBodyBytes caps request bodies; every payload here is a handful of short strings.
const maxBodyBytes = 1 << 20

// ValidationDetail is one entry of a 422 response body.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationBody is the body written for client-input errors.
type ValidationBody struct {
	Detail []ValidationDetail `json:"detail"`
}

// ErrorBody is the body written for server errors.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ValidationError writes a 422 with one detail entry per failing field.
func ValidationError(w http.ResponseWriter, verr *validation.Error) {
	body := ValidationBody{Detail: []ValidationDetail{}}
	if verr != nil {
		for _, f := range verr.Fields {
			loc := []string{"body"}
			if f.Field != "" && f.Field != "body" {
				loc = append(loc, f.Field)
			}
			body.Detail = append(body.Detail, ValidationDetail{Loc: loc, Msg: f.Message, Type: f.Type})
		}
	}
	JSON(w, http.StatusUnprocessableEntity, body)
}

// Error writes {"detail": detail} with the given status.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// DecodeJSON decodes the request body into dst. Malformed or empty bodies
// come back as a client-input error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) *validation.Error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		verr := &validation.Error{}
		switch {
		case errors.Is(err, io.EOF):
			verr.Add("body", validation.TypeMissing, "Field required")
		default:
			verr.Add("body", validation.TypeJSONInvalid, "JSON decode error: "+err.Error())
		}
		return verr
	}
	return nil
}
