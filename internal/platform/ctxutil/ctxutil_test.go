package ctxutil

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if GetTraceData(ctx) != nil || GetAuthData(ctx) != nil || RequestID(ctx) != "" {
		t.Fatalf("empty context should carry nothing")
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t", RequestID: "r"})
	ctx = WithAuthData(ctx, &AuthData{UserID: "u1", Username: "lin"})
	if RequestID(ctx) != "r" {
		t.Fatalf("RequestID=%q", RequestID(ctx))
	}
	if ad := GetAuthData(ctx); ad == nil || ad.UserID != "u1" {
		t.Fatalf("auth data=%+v", ad)
	}
}
