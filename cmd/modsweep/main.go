// Command modsweep scans a list of candidate small prime moduli and, for
// each one, counts how many small (a, d) curve-parameter pairs satisfy the
// twisted Hessian non-singularity condition a*(27a-d^3) invertible in
// F_q[ε]/(ε²). It writes an HTML bar chart, and a JSON summary when -json
// is given. This is a
// diagnostic/search tool, not a benchmark: no timing is recorded.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	lring "github.com/tuneinsight/lattigo/v4/ring"

	"github.com/rymnc/hessian/curve"
	"github.com/rymnc/hessian/fq"
	"github.com/rymnc/hessian/ring"
)

// sweepRingDegree is the lattigo ring degree used purely to validate that a
// candidate modulus is usable before the real sweep runs over our own
// fq/ring/curve stack; it mirrors ntru.Params.BuildRings's defensive
// "can a Ring be built over this modulus at all" check.
const sweepRingDegree = 16

type modulusResult struct {
	Modulus      uint64 `json:"modulus"`
	Candidates   int    `json:"candidates"`
	NonSingular  int    `json:"non_singular"`
	RingBuildErr string `json:"ring_build_error,omitempty"`
}

func main() {
	moduliFlag := flag.String("moduli", "5,7,11,13,17,19,23", "comma-separated candidate prime moduli")
	outPath := flag.String("out", "modsweep.html", "path to write the HTML bar chart")
	jsonPath := flag.String("json", "", "optional path to write a JSON summary (default: none)")
	coeffBound := flag.Uint64("coeff-bound", 3, "coefficients 0..coeff-bound-1 are swept for each of a0,a1,d0,d1")
	flag.Parse()

	moduli, err := parseModuli(*moduliFlag)
	if err != nil {
		log.Fatalf("modsweep: %v", err)
	}

	results := make([]modulusResult, 0, len(moduli))
	for _, q := range moduli {
		results = append(results, sweepModulus(q, *coeffBound))
	}

	if *jsonPath != "" {
		if err := writeJSON(*jsonPath, results); err != nil {
			log.Fatalf("modsweep: writing JSON: %v", err)
		}
	}

	if err := writeChart(*outPath, results); err != nil {
		log.Fatalf("modsweep: writing chart: %v", err)
	}

	for _, r := range results {
		fmt.Printf("q=%d: %d/%d (a,d) pairs non-singular\n", r.Modulus, r.NonSingular, r.Candidates)
	}
}

func parseModuli(spec string) ([]uint64, error) {
	parts := strings.Split(spec, ",")
	moduli := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid modulus %q: %w", p, err)
		}
		moduli = append(moduli, v)
	}
	if len(moduli) == 0 {
		return nil, fmt.Errorf("no moduli given")
	}
	return moduli, nil
}

// sweepModulus builds a lattigo ring for q (a defensive sanity check, not
// used for the arithmetic itself), then counts non-singular (a, d) pairs
// with coefficients drawn from [0, coeffBound).
func sweepModulus(q, coeffBound uint64) modulusResult {
	result := modulusResult{Modulus: q}

	if _, err := lring.NewRing(sweepRingDegree, []uint64{q}); err != nil {
		result.RingBuildErr = err.Error()
	}

	for a0 := uint64(0); a0 < coeffBound; a0++ {
		for a1 := uint64(0); a1 < coeffBound; a1++ {
			for d0 := uint64(0); d0 < coeffBound; d0++ {
				for d1 := uint64(0); d1 < coeffBound; d1++ {
					result.Candidates++
					a, err := ring.New(fq.MustNew(q, a0), fq.MustNew(q, a1))
					if err != nil {
						continue
					}
					d, err := ring.New(fq.MustNew(q, d0), fq.MustNew(q, d1))
					if err != nil {
						continue
					}
					ok, err := curve.VerifyCurveConstraints(a, d)
					if err == nil && ok {
						result.NonSingular++
					}
				}
			}
		}
	}
	return result
}

func writeJSON(path string, results []modulusResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeChart(path string, results []modulusResult) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Non-singular twisted Hessian curves per modulus",
			Subtitle: "a*(27a-d^3) invertible in F_q[ε]/(ε²), small-coefficient sweep",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "modulus q"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "non-singular pairs"}),
	)

	labels := make([]string, len(results))
	counts := make([]opts.BarData, len(results))
	for i, r := range results {
		labels[i] = strconv.FormatUint(r.Modulus, 10)
		counts[i] = opts.BarData{Value: r.NonSingular}
	}

	bar.SetXAxis(labels).AddSeries("non-singular", counts)

	page := components.NewPage().SetPageTitle("modsweep")
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
