package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantKind apperrors.Code
		wantMsg  string
	}{
		{
			name:     "bad request",
			err:      apperrors.BadRequestError(errors.New("boom"), "invalid JSON"),
			wantCode: http.StatusBadRequest,
			wantKind: apperrors.CodeInvalidRequest,
			wantMsg:  "invalid JSON",
		},
		{
			name:     "user rejected",
			err:      apperrors.UserRejectedError(nil, "user rejected the request"),
			wantCode: http.StatusForbidden,
			wantKind: apperrors.CodeUserRejected,
			wantMsg:  "user rejected the request",
		},
		{
			name:     "timeout",
			err:      apperrors.TimeoutError(nil, apperrors.CodeConnectionTimeout, "connection timed out"),
			wantCode: http.StatusGatewayTimeout,
			wantKind: apperrors.CodeConnectionTimeout,
			wantMsg:  "connection timed out",
		},
		{
			name:     "plain error",
			err:      errors.New("database exploded"),
			wantCode: http.StatusInternalServerError,
			wantKind: apperrors.CodeInternal,
			wantMsg:  "Unexpected Service Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandleError(func(http.ResponseWriter, *http.Request) error { return tt.err }, zap.NewNop())
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			var got ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response JSON: %v", err)
			}
			if got.ErrMsg != tt.wantMsg || got.ErrorCode != string(tt.wantKind) || got.ErrMsgCode != tt.wantCode {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}

func TestHandleError_Success(t *testing.T) {
	h := HandleError(func(w http.ResponseWriter, _ *http.Request) error {
		WriteJSON(w, http.StatusCreated, map[string]string{"ok": "yes"})
		return nil
	}, nil)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type %q, got %q", "application/json", ct)
	}
}
