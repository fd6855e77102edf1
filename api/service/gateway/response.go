package gateway

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/harmony-one/btcdash/internal/apierr"
	"github.com/harmony-one/btcdash/internal/utils"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorBody is the response body of a failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes why a request failed.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := jsonIter.Marshal(v)
	if err != nil {
		utils.Logger().Error().Err(err).Msg("cannot JSON-encode response")
		writeErrorBody(w, http.StatusInternalServerError, apierr.Unknown.String(), "cannot encode response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		utils.Logger().Debug().Err(err).Msg("cannot write response")
	}
}

// writeError answers err with the status and code of its kind.
func writeError(w http.ResponseWriter, err error) {
	kind := apierr.KindOf(err)
	writeErrorBody(w, kind.HTTPStatus(), kind.String(), err.Error())
}

func writeErrorBody(w http.ResponseWriter, status int, code, msg string) {
	b, _ := jsonIter.Marshal(ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
