package features

import (
	"context"
	"testing"
)

func TestBetaFiltersContext(t *testing.T) {
	if BetaFiltersFromContext(context.Background()) {
		t.Fatalf("expected beta filters to be off without a flag")
	}
	ctx := ContextWithBetaFilters(context.Background(), true)
	if !BetaFiltersFromContext(ctx) {
		t.Fatalf("expected beta filters to be on")
	}
	ctx = ContextWithBetaFilters(ctx, false)
	if BetaFiltersFromContext(ctx) {
		t.Fatalf("expected inner value to override")
	}
}

func TestParseBetaFilters(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", false, false},
		{"", true, true},
		{"true", false, true},
		{"1", false, true},
		{"false", true, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		if got := ParseBetaFilters(tc.raw, tc.def); got != tc.want {
			t.Fatalf("ParseBetaFilters(%q, %v): expected %v, got %v", tc.raw, tc.def, tc.want, got)
		}
	}
}

func TestClientsTitle(t *testing.T) {
	if ClientsTitle(true) != "Clients - New Beta" {
		t.Fatalf("unexpected beta title")
	}
	if ClientsTitle(false) != "Clients" {
		t.Fatalf("unexpected default title")
	}
}
