package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	var env SuccessEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["status"] != "ok" {
		t.Fatalf("unexpected envelope: %s", rec.Body.String())
	}
}

func TestWriteErrorMapsTypedCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{pkgerrors.New(pkgerrors.CodeNotFound, "alert not found"), 404, "NOT_FOUND"},
		{pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient units"), 400, "INSUFFICIENT_STOCK"},
		{pkgerrors.New(pkgerrors.CodeValidation, "message required"), 400, "VALIDATION_ERROR"},
		{errors.New("totally untyped"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tc.err)
		if rec.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var env ErrorEnvelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Error.Code != tc.code {
			t.Errorf("%v: code = %s, want %s", tc.err, env.Error.Code, tc.code)
		}
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "connection string leaked"))

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Message != "internal server error" {
		t.Fatalf("internal message should be masked, got %q", env.Error.Message)
	}
}
