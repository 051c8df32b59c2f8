package graph

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// CheckStatus tests
// ---------------------------------------------------------------------------

func Test_CheckStatus_Cases(t *testing.T) {
	tests := []struct {
		name         string
		statusCode   int
		body         string
		extraSuccess []int
		wantErr      bool
		wantSentinel error
	}{
		{
			name:       "200 OK succeeds",
			statusCode: http.StatusOK,
			body:       `{"value":[]}`,
			wantErr:    false,
		},
		{
			name:       "201 Created succeeds",
			statusCode: http.StatusCreated,
			body:       `{"id":"x"}`,
			wantErr:    false,
		},
		{
			name:         "202 fails without extra success",
			statusCode:   http.StatusAccepted,
			body:         ``,
			wantErr:      true,
			wantSentinel: ErrUnexpectedStatus,
		},
		{
			name:         "202 succeeds when listed as extra success",
			statusCode:   http.StatusAccepted,
			body:         ``,
			extraSuccess: []int{http.StatusAccepted},
			wantErr:      false,
		},
		{
			name:         "400 maps to ErrBadRequest",
			statusCode:   http.StatusBadRequest,
			body:         `{"error":{"code":"Request_BadRequest"}}`,
			wantErr:      true,
			wantSentinel: ErrBadRequest,
		},
		{
			name:         "401 maps to ErrUnauthorized",
			statusCode:   http.StatusUnauthorized,
			body:         `{"error":{"code":"InvalidAuthenticationToken"}}`,
			wantErr:      true,
			wantSentinel: ErrUnauthorized,
		},
		{
			name:         "403 maps to ErrForbidden",
			statusCode:   http.StatusForbidden,
			body:         `{"error":{"code":"Forbidden"}}`,
			wantErr:      true,
			wantSentinel: ErrForbidden,
		},
		{
			name:         "404 maps to ErrNotFound",
			statusCode:   http.StatusNotFound,
			body:         `{"error":{"code":"Request_ResourceNotFound"}}`,
			wantErr:      true,
			wantSentinel: ErrNotFound,
		},
		{
			name:         "429 maps to ErrRateLimited",
			statusCode:   http.StatusTooManyRequests,
			body:         `{"error":{"code":"TooManyRequests"}}`,
			wantErr:      true,
			wantSentinel: ErrRateLimited,
		},
		{
			name:         "500 maps to ErrServerError",
			statusCode:   http.StatusInternalServerError,
			body:         `internal`,
			wantErr:      true,
			wantSentinel: ErrServerError,
		},
		{
			name:         "502 maps to ErrServerError",
			statusCode:   http.StatusBadGateway,
			body:         `bad gateway`,
			wantErr:      true,
			wantSentinel: ErrServerError,
		},
		{
			name:         "503 maps to ErrServerError",
			statusCode:   http.StatusServiceUnavailable,
			body:         `unavailable`,
			wantErr:      true,
			wantSentinel: ErrServerError,
		},
		{
			name:         "302 maps to ErrUnexpectedStatus",
			statusCode:   http.StatusFound,
			body:         ``,
			wantErr:      true,
			wantSentinel: ErrUnexpectedStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.statusCode, Body: []byte(tt.body)}
			err := CheckStatus(resp, tt.extraSuccess...)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantSentinel != nil && !errors.Is(err, tt.wantSentinel) {
				t.Errorf("errors.Is(err, %v) = false, err = %v", tt.wantSentinel, err)
			}
		})
	}
}

func Test_CheckStatus_PreservesBodyText(t *testing.T) {
	body := `{"error":{"code":"Forbidden","message":"Insufficient privileges"}}`
	resp := &Response{StatusCode: http.StatusForbidden, Body: []byte(body)}

	err := CheckStatus(resp)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Insufficient privileges") {
		t.Errorf("error = %q, want it to contain the raw body text", err.Error())
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %q, want it to contain the status code", err.Error())
	}
}

// ---------------------------------------------------------------------------
// StatusError tests
// ---------------------------------------------------------------------------

func Test_StatusError_ErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *StatusError
		want string
	}{
		{
			name: "code and body",
			err:  &StatusError{Code: 404, Body: "not here", kind: ErrNotFound},
			want: "status 404: not here",
		},
		{
			name: "empty body omits detail",
			err:  &StatusError{Code: 404, Body: "", kind: ErrNotFound},
			want: "status 404",
		},
		{
			name: "whitespace-only body omits detail",
			err:  &StatusError{Code: 500, Body: "  \n", kind: ErrServerError},
			want: "status 500",
		},
		{
			name: "body whitespace is trimmed",
			err:  &StatusError{Code: 400, Body: "  bad input\n", kind: ErrBadRequest},
			want: "status 400: bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_StatusError_UnwrapThroughWrapping(t *testing.T) {
	resp := &Response{StatusCode: http.StatusNotFound, Body: []byte(`missing`)}
	err := CheckStatus(resp)

	// Wrapping the way managers do must not break errors.Is / errors.As.
	wrapped := fmt.Errorf("teams: get team members: %w", err)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is(wrapped, ErrNotFound) = false, want true")
	}

	var statusErr *StatusError
	if !errors.As(wrapped, &statusErr) {
		t.Fatal("errors.As(wrapped, *StatusError) = false, want true")
	}
	if statusErr.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want %d", statusErr.Code, http.StatusNotFound)
	}
	if statusErr.Body != "missing" {
		t.Errorf("Body = %q, want %q", statusErr.Body, "missing")
	}
}

// ---------------------------------------------------------------------------
// classify tests
// ---------------------------------------------------------------------------

func Test_classify_UnmappedClientCodes(t *testing.T) {
	// 4xx codes without a dedicated sentinel fall through to unexpected.
	for _, code := range []int{402, 405, 409, 410, 422} {
		if got := classify(code); !errors.Is(got, ErrUnexpectedStatus) {
			t.Errorf("classify(%d) = %v, want ErrUnexpectedStatus", code, got)
		}
	}
}
