package circular

import (
	"errors"
	"math"
	"testing"
)

func TestOnAxisProfile(t *testing.T) {
	in := Input{
		QKPa:    200,
		RadiusM: 1,
		DepthsM: []float64{0.01, 0.5, 1, 2, 5, 20},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.SigmaKPa) != len(in.DepthsM) {
		t.Fatalf("output length %d, want %d", len(res.SigmaKPa), len(in.DepthsM))
	}
	if res.OffsetM != 0 {
		t.Fatalf("offset: got %v, want 0", res.OffsetM)
	}

	// Near-surface stress under the center approaches q.
	if res.SigmaKPa[0] < 0.9*in.QKPa {
		t.Errorf("near-surface stress %v, want >= %v", res.SigmaKPa[0], 0.9*in.QKPa)
	}
	// At depth much greater than the radius it has mostly dissipated.
	last := res.SigmaKPa[len(res.SigmaKPa)-1]
	if last > 0.1*in.QKPa {
		t.Errorf("deep stress %v, want <= %v", last, 0.1*in.QKPa)
	}
	// Strictly decreasing on the axis.
	for i := 1; i < len(res.SigmaKPa); i++ {
		if res.SigmaKPa[i] >= res.SigmaKPa[i-1] {
			t.Fatalf("on-axis stress not decreasing at depth %v: %v -> %v",
				in.DepthsM[i], res.SigmaKPa[i-1], res.SigmaKPa[i])
		}
	}
}

func TestZeroLoad(t *testing.T) {
	res, err := Calculate(Input{QKPa: 0, RadiusM: 2, XCenterM: 1, DepthsM: []float64{1, 2, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.SigmaKPa {
		if v != 0 {
			t.Fatalf("sigma[%d] = %v, want 0 for q=0", i, v)
		}
	}
}

func TestOffAxisBelowOnAxis(t *testing.T) {
	depths := []float64{0.5, 1, 2, 4}
	onAxis, err := Calculate(Input{QKPa: 100, RadiusM: 1, DepthsM: depths})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	offAxis, err := Calculate(Input{QKPa: 100, RadiusM: 1, XCenterM: 2, YCenterM: 1, DepthsM: depths})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range depths {
		if offAxis.SigmaKPa[i] < -1e-10 {
			t.Errorf("off-axis stress negative at depth %v: %v", depths[i], offAxis.SigmaKPa[i])
		}
		if offAxis.SigmaKPa[i] >= onAxis.SigmaKPa[i] {
			t.Errorf("off-axis stress %v not below on-axis %v at depth %v",
				offAxis.SigmaKPa[i], onAxis.SigmaKPa[i], depths[i])
		}
	}
}

func TestOffAxisDecaysAtDepth(t *testing.T) {
	res, err := Calculate(Input{QKPa: 100, RadiusM: 1, XCenterM: 3, DepthsM: []float64{50}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SigmaKPa[0] > 1 {
		t.Errorf("far-field stress %v, want near 0", res.SigmaKPa[0])
	}
}

func TestValidationRejections(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"negative q", Input{QKPa: -5, RadiusM: 1, DepthsM: []float64{1}}, "q"},
		{"zero radius", Input{QKPa: 1, RadiusM: 0, DepthsM: []float64{1}}, "radius"},
		{"zero depth", Input{QKPa: 1, RadiusM: 1, DepthsM: []float64{1, 0, 2}}, "depth"},
		{"negative depth", Input{QKPa: 1, RadiusM: 1, DepthsM: []float64{-0.5}}, "depth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ip *InvalidParameterError
			if !errors.As(err, &ip) {
				t.Fatalf("want InvalidParameterError, got %T: %v", err, err)
			}
			if ip.Field != tc.field {
				t.Errorf("offending field: got %q, want %q", ip.Field, tc.field)
			}
		})
	}
}

func TestNoDepths(t *testing.T) {
	_, err := Calculate(Input{QKPa: 1, RadiusM: 1})
	if err == nil {
		t.Fatal("expected error for empty depth list")
	}
	var ip *InvalidParameterError
	if !errors.As(err, &ip) {
		t.Fatalf("want InvalidParameterError, got %T: %v", err, err)
	}
	if ip.Field != "depths" {
		t.Errorf("offending field: got %q, want depths", ip.Field)
	}
}

func TestOffAxisMatchesClosedFormFarField(t *testing.T) {
	// Deep below the load the disc acts like a point load Q = q*pi*a^2;
	// the polar superposition must agree with that limit.
	q, a, z := 100.0, 1.0, 25.0
	res, err := Calculate(Input{QKPa: q, RadiusM: a, XCenterM: 1e-6, DepthsM: []float64{z}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := q * math.Pi * a * a
	want := 3 * total / (2 * math.Pi * z * z)
	got := res.SigmaKPa[0]
	if got < 0.95*want || got > 1.05*want {
		t.Errorf("far-field limit: got %v, want ~%v", got, want)
	}
}
