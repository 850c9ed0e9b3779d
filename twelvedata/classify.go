package twelvedata

import (
	"encoding/json"
	"strings"

	"github.com/buger/jsonparser"
)

const unknownErrorMessage = "Unknown error"

// Response is the raw result of one transport call.
type Response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	// Batch is set when the API answers with an Is_batch: true header.
	Batch bool
}

// IsCSV reports whether the response carries CSV content.
func (r *Response) IsCSV() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "text/csv")
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Classify turns a transport response into its success payload or a typed
// *APIError. CSV and batch responses are judged by HTTP status alone. JSON
// bodies that fail to parse are returned unchanged on a 2xx status.
func Classify(resp *Response) ([]byte, error) {
	if resp.IsCSV() || resp.Batch {
		return classifyStatus(resp)
	}
	return classifyJSON(resp)
}

func classifyStatus(resp *Response) ([]byte, error) {
	if !resp.Successful() {
		return nil, NewAPIError(resp.StatusCode, string(resp.Body))
	}
	return resp.Body, nil
}

func classifyJSON(resp *Response) ([]byte, error) {
	if !json.Valid(resp.Body) {
		return classifyStatus(resp)
	}

	if env, ok := parseErrorEnvelope(resp.Body); ok {
		code := env.Code
		if code == 0 && !resp.Successful() {
			code = resp.StatusCode
		}
		return nil, NewAPIError(code, env.Message)
	}

	return classifyStatus(resp)
}

// parseErrorEnvelope extracts {status, code, message} when status is "error".
func parseErrorEnvelope(body []byte) (*ErrorEnvelope, bool) {
	status, err := jsonparser.GetString(body, "status")
	if err != nil || status != "error" {
		return nil, false
	}

	env, err := MapErrorEnvelope(body)
	if err != nil {
		return nil, false
	}
	return env, true
}
