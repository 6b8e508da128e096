package geo

import (
	"errors"
	"kill-chain-service/internal/domain"
	"math"
	"testing"
)

func TestParseDMS(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "N68°47′48″", want: 68 + 47.0/60 + 48.0/3600},
		{in: "E36°07′42″", want: 36 + 7.0/60 + 42.0/3600},
		{in: "S33°52′04.5″", want: -(33 + 52.0/60 + 4.5/3600)},
		{in: "W118°14′37″", want: -(118 + 14.0/60 + 37.0/3600)},
		{in: " N0°00′00″ ", want: 0},
	}

	for _, tc := range tests {
		got, err := ParseDMS(tc.in)
		if err != nil {
			t.Fatalf("ParseDMS(%q): unexpected error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("ParseDMS(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDMSSign(t *testing.T) {
	for _, h := range []string{"S", "W"} {
		got, err := ParseDMS(h + "12°30′15″")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got >= 0 {
			t.Fatalf("%s hemisphere gave %v, want negative", h, got)
		}
	}
	for _, h := range []string{"N", "E"} {
		got, err := ParseDMS(h + "12°30′15″")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got < 0 {
			t.Fatalf("%s hemisphere gave %v, want non-negative", h, got)
		}
	}
}

func TestParseDMSMalformed(t *testing.T) {
	inputs := []string{
		"",
		"X68°47′48″",
		"N68 47′48″",
		"N68°47'48\"",
		"N68°47′48",
		"N68°4a′48″",
		"N68°47′48″″",
		"68°47′48″",
	}

	for _, in := range inputs {
		_, err := ParseDMS(in)
		var mc *domain.MalformedCoordinateError
		if !errors.As(err, &mc) {
			t.Fatalf("ParseDMS(%q) err = %v, want MalformedCoordinateError", in, err)
		}
	}
}

func TestParsePointChecksAxes(t *testing.T) {
	if _, err := ParsePoint("E36°07′42″", "N68°47′48″"); err == nil {
		t.Fatal("expected error for swapped axes")
	}
	if _, err := ParsePoint("N95°00′00″", "E10°00′00″"); err == nil {
		t.Fatal("expected error for latitude beyond 90")
	}

	p, err := ParsePoint("N68°47′48″", "E36°07′42″")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat <= 0 || p.Lon <= 0 {
		t.Fatalf("unexpected point %+v", p)
	}
}

func TestFormatDMSRoundTrip(t *testing.T) {
	for _, in := range []string{"N68°47′48″", "W118°14′37″", "S1°02′03″"} {
		v, err := ParseDMS(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		isLat := in[0] == 'N' || in[0] == 'S'
		if got := FormatDMS(v, isLat); got != in {
			t.Fatalf("FormatDMS(%v) = %q, want %q", v, got, in)
		}
	}
}
