package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsWrappedError(t *testing.T) {
	base := NotFound("session_not_found", errors.New("no such session"))
	got := From(fmt.Errorf("lookup: %w", base), "internal")
	if got.Status != http.StatusNotFound || got.Code != "session_not_found" {
		t.Fatalf("got status=%d code=%q", got.Status, got.Code)
	}
}

func TestFromFallsBackTo500(t *testing.T) {
	got := From(errors.New("boom"), "internal")
	if got.Status != http.StatusInternalServerError || got.Code != "internal" {
		t.Fatalf("got status=%d code=%q", got.Status, got.Code)
	}
	if got.Error() != "boom" {
		t.Fatalf("message=%q", got.Error())
	}
}
