package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

var errorStatusCodes = []int{
	http.StatusBadRequest,
	http.StatusUnauthorized,
	http.StatusForbidden,
	http.StatusNotFound,
	http.StatusConflict,
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusServiceUnavailable,
}

func TestProperty_ErrorsHaveConsistentEnvelope(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every error response carries code, message and timestamp", prop.ForAll(
		func(message string, codeIndex int) bool {
			if codeIndex < 0 {
				codeIndex = -codeIndex
			}
			statusCode := errorStatusCodes[codeIndex%len(errorStatusCodes)]

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}

			if response.Error.Code == "" || response.Error.Message != message {
				return false
			}

			_, err := time.Parse(time.RFC3339, response.Error.Timestamp)
			return err == nil
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorDetailsSurviveSerialization(t *testing.T) {
	w := httptest.NewRecorder()
	respondWithErrorDetails(w, http.StatusBadRequest, "listing rejected", map[string]interface{}{
		"field": "price",
	})

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON error body: %v", err)
	}
	if response.Error.Details["field"] != "price" {
		t.Errorf("details = %v", response.Error.Details)
	}
}

func TestValidationErrorsLandInDetails(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithValidationErrors(w, []ValidationError{
		{Field: "rating", Message: "rating must be at most 5"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON error body: %v", err)
	}
	if _, ok := response.Error.Details["validation_errors"]; !ok {
		t.Error("validation errors missing from details")
	}
}

func TestProperty_JSONResponsesAreParseable(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("RespondWithJSON emits valid JSON with the requested status", prop.ForAll(
		func(codeIndex int, payload map[string]string) bool {
			codes := []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}
			if codeIndex < 0 {
				codeIndex = -codeIndex
			}
			statusCode := codes[codeIndex%len(codes)]

			w := httptest.NewRecorder()
			RespondWithJSON(w, statusCode, payload)

			if w.Code != statusCode {
				return false
			}

			var decoded map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
				return false
			}
			return len(decoded) == len(payload)
		},
		gen.Int(),
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	handler := ErrorHandlingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("panic response is not a JSON error envelope: %v", err)
	}
}
