// Command analysis generates Falcon keys, signs random messages and renders
// coefficient and norm histograms of the results as one HTML page.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	flag "github.com/spf13/pflag"

	"falcon-signature/falcon"
	"falcon-signature/internal/logging"
	"falcon-signature/ntru"
)

var logger = logging.New("analysis")

type series struct {
	f, g, F, G, h []float64
	s0, s1       []float64
	norms        []float64
	point        []float64
	base         []float64
}

func appendInt64(vals []float64, xs []int64) []float64 {
	for _, v := range xs {
		vals = append(vals, float64(v))
	}
	return vals
}

// recoverS0 recomputes s0 = point - s1*h, centered, from a valid signature.
func recoverS0(pk *falcon.PublicKey, msg, sig []byte) (s0, s1, point []int64, err error) {
	par := pk.Params()
	salt := sig[ntru.HeadLen : ntru.HeadLen+ntru.SaltLen]
	s1, err = ntru.Decompress(sig[ntru.HeadLen+ntru.SaltLen:], par.SigByteLen-ntru.HeadLen-ntru.SaltLen, par.N)
	if err != nil {
		return nil, nil, nil, err
	}
	point, err = ntru.HashToPoint(msg, salt, par.N)
	if err != nil {
		return nil, nil, nil, err
	}
	zr, err := ntru.RingFor(par.N)
	if err != nil {
		return nil, nil, nil, err
	}
	s0 = ntru.CenterModQ(zr.Sub(point, zr.Mul(s1, pk.H())))
	return s0, s1, point, nil
}

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64, stats summaryStats) *charts.Bar {
	nbins := freedmanDiaconisBins(values)
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		xLabels[i] = fmt.Sprintf("%.2f", 0.5*(edges[i]+edges[i+1]))
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3f, std=%.3f, median=%.3f, IQR=%.3f", stats.Count, stats.Mean, stats.Std, stats.Median, stats.IQR)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func main() {
	degree := flag.Int("degree", 64, "ring degree n")
	runs := flag.IntP("runs", "r", 5, "number of key pairs")
	signs := flag.Int("signs", 50, "signatures per key pair")
	baseSamples := flag.Int("base", 20000, "samples drawn from SamplerZ(0.5, 1.5, 1.2)")
	seed := flag.String("seed", "", "deterministic seed; empty uses crypto/rand")
	outDir := flag.StringP("out", "o", "Measure_Reports", "output directory for reports")
	flag.Parse()
	if err := logging.SetLevel("info"); err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("mkdir")
	}
	var rng io.Reader = rand.Reader
	if *seed != "" {
		rng = ntru.NewRNG([]byte(*seed))
	}

	var all series
	for i := 0; i < *runs; i++ {
		logger.Info().Int("key", i+1).Int("of", *runs).Int("n", *degree).Msg("generating")
		sk, pk, err := falcon.GenerateKeyPairContext(context.Background(), *degree, falcon.KeyGenOptions{Rand: rng})
		if err != nil {
			logger.Fatal().Err(err).Msg("keygen")
		}
		f, g, F, G := sk.Polys()
		all.f = appendInt64(all.f, f)
		all.g = appendInt64(all.g, g)
		all.F = appendInt64(all.F, F)
		all.G = appendInt64(all.G, G)
		all.h = appendInt64(all.h, pk.H())
		for j := 0; j < *signs; j++ {
			msg := []byte(fmt.Sprintf("analysis-%d-%d", i, j))
			sig, err := sk.SignWithRand(rng, msg)
			if err != nil {
				logger.Fatal().Err(err).Msg("sign")
			}
			s0, s1, point, err := recoverS0(pk, msg, sig)
			if err != nil {
				logger.Fatal().Err(err).Msg("decode")
			}
			all.s0 = appendInt64(all.s0, s0)
			all.s1 = appendInt64(all.s1, s1)
			all.point = appendInt64(all.point, point)
			var norm int64
			for k := range s0 {
				norm += s0[k]*s0[k] + s1[k]*s1[k]
			}
			all.norms = append(all.norms, float64(norm)/float64(sk.Params().SigBound))
		}
	}
	sz := ntru.NewSamplerZ(rng)
	for i := 0; i < *baseSamples; i++ {
		all.base = append(all.base, float64(sz.Sample(0.5, 1.5, 1.2)))
	}

	named := []struct {
		name string
		vals []float64
	}{
		{"f (private small)", all.f},
		{"g (private small)", all.g},
		{"F (private)", all.F},
		{"G (private)", all.G},
		{"h (public)", all.h},
		{"s0 (signature)", all.s0},
		{"s1 (signature)", all.s1},
		{"squared norm / bound", all.norms},
		{"HashToPoint coefficients", all.point},
		{"SamplerZ(0.5, 1.5)", all.base},
	}

	outStats := map[string]summaryStats{}
	page := components.NewPage()
	for _, s := range named {
		if len(s.vals) == 0 {
			continue
		}
		st := computeStats(s.vals)
		outStats[s.name] = st
		page.AddCharts(newHistogramChart(s.name, s.vals, st))
	}

	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("falcon_stats_%s.json", ts))
	if err := saveJSON(jsonPath, outStats); err != nil {
		logger.Warn().Err(err).Msg("save stats")
	}
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("falcon_histograms_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("create html")
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		logger.Fatal().Err(err).Msg("render html")
	}
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
