package services

import (
	"math"
	"testing"

	"github.com/yardvine/yardvine-backend/internal/types"
)

func TestNormalizeLineItems(t *testing.T) {
	items, subtotal, err := normalizeLineItems([]types.QuoteLineItem{
		{Description: "Mowing", Quantity: 2, UnitPrice: 45, Total: 999},
		{Description: "  Edging ", Quantity: 1, UnitPrice: 30},
	})
	if err != nil {
		t.Fatalf("normalizeLineItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Supplied totals are ignored and recomputed.
	if items[0].Total != 90 {
		t.Fatalf("expected recomputed total 90, got %v", items[0].Total)
	}
	if items[1].Description != "Edging" {
		t.Fatalf("expected trimmed description, got %q", items[1].Description)
	}
	if math.Abs(subtotal-120) > 1e-9 {
		t.Fatalf("expected subtotal 120, got %v", subtotal)
	}
}

func TestNormalizeLineItemsRejectsBlankDescription(t *testing.T) {
	if _, _, err := normalizeLineItems([]types.QuoteLineItem{{Description: "  ", Quantity: 1, UnitPrice: 10}}); err == nil {
		t.Fatal("expected error for blank description")
	}
}

func TestNormalizeLineItemsRejectsNegatives(t *testing.T) {
	if _, _, err := normalizeLineItems([]types.QuoteLineItem{{Description: "x", Quantity: -1, UnitPrice: 10}}); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" lawn ", "VIP", "vip", "", "Lawn"})
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %v", got)
	}
	if got[0] != "lawn" || got[1] != "VIP" {
		t.Fatalf("unexpected tags %v", got)
	}
}
