package twelvedata

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForCode(t *testing.T) {
	tests := []struct {
		code int
		want Kind
		err  error
	}{
		{400, KindBadRequest, ErrBadRequest},
		{401, KindUnauthorized, ErrUnauthorized},
		{403, KindForbidden, ErrForbidden},
		{404, KindNotFound, ErrNotFound},
		{414, KindParameterTooLong, ErrParameterTooLong},
		{429, KindRateLimit, ErrRateLimit},
		{500, KindInternalServer, ErrInternalServer},
		{502, KindServer, ErrServer},
		{503, KindServer, ErrServer},
		{599, KindServer, ErrServer},
		{418, KindGeneric, nil},
		{0, KindGeneric, nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code %d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, KindForCode(tt.code))

			err := NewAPIError(tt.code, "msg")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.Nil(t, err.Unwrap())
			}
		})
	}
}

func TestErrInvalidAPIKeyAlias(t *testing.T) {
	assert.ErrorIs(t, NewAPIError(401, "bad key"), ErrInvalidAPIKey)
}

func TestClassify_ErrorEnvelope(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404, 414, 429, 500, 502} {
		t.Run(fmt.Sprintf("code %d", code), func(t *testing.T) {
			message := fmt.Sprintf("**symbol** failure %d", code)
			body := fmt.Sprintf(`{"status":"error","code":%d,"message":%q}`, code, message)

			_, err := Classify(&Response{StatusCode: 200, Body: []byte(body), ContentType: "application/json"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, code, apiErr.Code)
			assert.Equal(t, message, apiErr.Message)
			assert.Equal(t, KindForCode(code), apiErr.Kind)

			// same error through the HTTP status
			_, statusErr := Classify(&Response{StatusCode: code, Body: []byte(message)})
			var statusAPIErr *APIError
			require.True(t, errors.As(statusErr, &statusAPIErr))
			assert.Equal(t, apiErr.Kind, statusAPIErr.Kind)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		resp     *Response
		wantBody string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "json success",
			resp:     &Response{StatusCode: 200, Body: []byte(`{"price":"1.0"}`)},
			wantBody: `{"price":"1.0"}`,
		},
		{
			name:     "status ok passes",
			resp:     &Response{StatusCode: 200, Body: []byte(`{"status":"ok","values":[]}`)},
			wantBody: `{"status":"ok","values":[]}`,
		},
		{
			name:     "unparseable body on 2xx is returned",
			resp:     &Response{StatusCode: 200, Body: []byte("not json")},
			wantBody: "not json",
		},
		{
			name:     "unparseable body on error status",
			resp:     &Response{StatusCode: 502, Body: []byte("<html>bad gateway</html>")},
			wantCode: 502,
			wantMsg:  "<html>bad gateway</html>",
		},
		{
			name:     "envelope without code or message",
			resp:     &Response{StatusCode: 200, Body: []byte(`{"status":"error"}`)},
			wantCode: 0,
			wantMsg:  "Unknown error",
		},
		{
			name:     "envelope without code on error status uses status",
			resp:     &Response{StatusCode: 429, Body: []byte(`{"status":"error","message":"slow down"}`)},
			wantCode: 429,
			wantMsg:  "slow down",
		},
		{
			name:     "json without envelope on error status",
			resp:     &Response{StatusCode: 404, Body: []byte(`{"detail":"missing"}`)},
			wantCode: 404,
			wantMsg:  `{"detail":"missing"}`,
		},
		{
			name:     "csv success ignores error-looking body",
			resp:     &Response{StatusCode: 200, Body: []byte(`{"status":"error","code":400}`), ContentType: "text/csv; charset=utf-8"},
			wantBody: `{"status":"error","code":400}`,
		},
		{
			name:     "csv failure by status",
			resp:     &Response{StatusCode: 401, Body: []byte("denied"), ContentType: "text/csv"},
			wantCode: 401,
			wantMsg:  "denied",
		},
		{
			name:     "batch classified by status only",
			resp:     &Response{StatusCode: 200, Body: []byte(`{"status":"error","code":500}`), Batch: true},
			wantBody: `{"status":"error","code":500}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := Classify(tt.resp)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
				return
			}

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "expected *APIError, got %v", err)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}
