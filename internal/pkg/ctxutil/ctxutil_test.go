package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestDefault(t *testing.T) {
	if Default(nil) == nil {
		t.Fatal("nil context: expected background fallback")
	}
	ctx := context.WithValue(context.Background(), struct{}{}, "v")
	if Default(ctx) != ctx {
		t.Fatal("non-nil context: expected same context back")
	}
}

func TestRequestDataRoundTrip(t *testing.T) {
	if rd := GetRequestData(context.Background()); rd != nil {
		t.Fatalf("empty context: expected nil, got %+v", rd)
	}

	want := &RequestData{TokenString: "tok", ProviderID: uuid.New()}
	ctx := WithRequestData(context.Background(), want)
	got := GetRequestData(ctx)
	if got == nil || got.ProviderID != want.ProviderID || got.TokenString != "tok" {
		t.Fatalf("round trip: got %+v", got)
	}
}
