package reference

import (
	"errors"
	"testing"
)

func TestPriceTier(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1, "cheap"},
		{2, "normal"},
		{3, "expensive"},
		{4, "gourmet"},
		{0, "gourmet"},
		{-1, "gourmet"},
		{99, "gourmet"},
	}

	for _, tt := range tests {
		if got := PriceTier(tt.in); got != tt.want {
			t.Errorf("PriceTier(%d) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountryName(t *testing.T) {
	tables := Default()

	name, err := tables.CountryName(30)
	if err != nil {
		t.Fatalf("CountryName(30): %v", err)
	}
	if name != "Brazil" {
		t.Errorf("CountryName(30) = %q; want Brazil", name)
	}

	if _, err := tables.CountryName(9999); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("CountryName(9999) err = %v; want ErrKeyNotFound", err)
	}
}

func TestCurrencyCode(t *testing.T) {
	tables := Default()

	cur, err := tables.CurrencyCode(215)
	if err != nil {
		t.Fatalf("CurrencyCode(215): %v", err)
	}
	if cur != "GBP" {
		t.Errorf("CurrencyCode(215) = %q; want GBP", cur)
	}

	if _, err := tables.CurrencyCode(0); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("CurrencyCode(0) err = %v; want ErrKeyNotFound", err)
	}
}

func TestColorLabel(t *testing.T) {
	tables := Default()

	tests := []struct {
		in   string
		want string
	}{
		{"3F7E00", "darkgreen"},
		{"#5ba829", "green"},
		{"FF7800", "darkred"},
		{"CBCBC8", "darkred"},
	}
	for _, tt := range tests {
		got, err := tables.ColorLabel(tt.in)
		if err != nil {
			t.Errorf("ColorLabel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ColorLabel(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}

	if _, err := tables.ColorLabel("000000"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("ColorLabel(000000) err = %v; want ErrKeyNotFound", err)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	tables := Default()

	countries := tables.Countries()
	countries[30] = "Atlantis"

	name, _ := tables.CountryName(30)
	if name != "Brazil" {
		t.Errorf("mutating accessor copy leaked into table: got %q", name)
	}
	if len(tables.Currencies()) != 15 {
		t.Errorf("Currencies len: got %d, want 15", len(tables.Currencies()))
	}
	if len(tables.Colors()) != 7 {
		t.Errorf("Colors len: got %d, want 7", len(tables.Colors()))
	}
}
