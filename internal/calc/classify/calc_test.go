package classify

import "testing"

func TestClassifyCases(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want string
	}{
		{
			"well-graded gravel",
			Input{GravelPct: 60, SandPct: 37, FinesPct: 3, Cu: 5, Cz: 1.5},
			"GW",
		},
		{
			"poorly graded sand",
			Input{GravelPct: 10, SandPct: 87, FinesPct: 3, Cu: 3, Cz: 1},
			"SP",
		},
		{
			"well-graded sand, borderline fines",
			Input{GravelPct: 10, SandPct: 80, FinesPct: 10, Cu: 8, Cz: 2},
			"SW-SC/SM",
		},
		{
			"clayey sand",
			Input{GravelPct: 10, SandPct: 70, FinesPct: 20, PI: 15, LL: 35},
			"SC",
		},
		{
			"silty gravel",
			Input{GravelPct: 55, SandPct: 25, FinesPct: 20, PI: 3, LL: 30},
			"GM",
		},
		{
			"low-plasticity clay",
			Input{GravelPct: 5, SandPct: 30, FinesPct: 65, LL: 40, PI: 20},
			"CL",
		},
		{
			"low-plasticity silt",
			Input{GravelPct: 5, SandPct: 30, FinesPct: 65, LL: 30, PI: 2},
			"ML",
		},
		{
			"clayey silt",
			Input{GravelPct: 5, SandPct: 30, FinesPct: 65, LL: 30, PI: 5},
			"CL-ML",
		},
		{
			"high-plasticity clay",
			Input{GravelPct: 0, SandPct: 20, FinesPct: 80, LL: 70, PI: 45},
			"CH",
		},
		{
			"high-plasticity silt",
			Input{GravelPct: 0, SandPct: 20, FinesPct: 80, LL: 70, PI: 20},
			"MH",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Calculate(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Symbol != tc.want {
				t.Errorf("symbol %q, want %q", res.Symbol, tc.want)
			}
		})
	}
}

func TestClassifyRejections(t *testing.T) {
	if _, err := Calculate(Input{GravelPct: 50, SandPct: 30, FinesPct: 5}); err == nil {
		t.Error("fractions not summing to 100 accepted")
	}
	if _, err := Calculate(Input{GravelPct: 120, SandPct: -20, FinesPct: 0}); err == nil {
		t.Error("negative fraction accepted")
	}
	if _, err := Calculate(Input{GravelPct: 0, SandPct: 20, FinesPct: 80, LL: -5}); err == nil {
		t.Error("negative liquid limit accepted")
	}
}
