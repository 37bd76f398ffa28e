package experiment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/linalg"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func run(t *testing.T, cfg *config.Config, name string) *Result {
	t.Helper()
	res, err := New(cfg, quiet()).Run(context.Background(), name)
	if err != nil {
		t.Fatalf("run %s: %v", name, err)
	}
	return res
}

func value(g *WithT, res *Result, label string) float64 {
	v, ok := res.Value(label)
	g.Expect(ok).To(BeTrue(), "missing value %q", label)
	return v
}

func TestRegistry(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	g.Expect(r.Names()).To(Equal([]string{"precision", "linear", "interpolation", "convolution", "circuit"}))

	byID, err := r.Get("Q5")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(byID.Name).To(Equal("circuit"))

	byName, err := r.Get(" linear ")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(byName.ID).To(Equal("q2"))

	_, err = r.Get("q9")
	g.Expect(err).To(MatchError(ErrUnknownSection))
}

func TestRegistry_ReplaceKeepsOrder(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()
	r.Register(Section{ID: "q1", Name: "precision", Title: "replaced"})
	r.Register(Section{ID: "x1", Name: "extra", Title: "extra"})

	names := r.Names()
	g.Expect(names).To(HaveLen(6))
	g.Expect(names[0]).To(Equal("precision"))
	g.Expect(names[5]).To(Equal("extra"))
	g.Expect(r.List()[0].Title).To(Equal("replaced"))
}

func TestPrecisionSection(t *testing.T) {
	g := NewWithT(t)
	res := run(t, nil, "q1")

	g.Expect(res.Section).To(Equal("precision"))
	g.Expect(value(g, res, "upper")).To(Equal(0.25 + math.Ldexp(1, -54)))
	g.Expect(value(g, res, "lower")).To(Equal(0.25 - math.Ldexp(1, -55)))
	g.Expect(value(g, res, "lower of upper")).To(Equal(0.25))
	g.Expect(value(g, res, "upper of lower")).To(Equal(0.25))
	g.Expect(res.Passed()).To(BeTrue())

	sweep, ok := res.FindSeries("fractional range")
	g.Expect(ok).To(BeTrue())
	g.Expect(sweep.X).To(HaveLen(config.DefaultSweepSamples))
	g.Expect(sweep.Y).To(HaveLen(config.DefaultSweepSamples))
}

func TestLinearSection(t *testing.T) {
	g := NewWithT(t)
	res := run(t, nil, "linear")

	g.Expect(value(g, res, "determinant")).To(BeNumerically("~", 712224, 1e-6))
	g.Expect(value(g, res, "max |A·x - b|")).To(BeNumerically("<=", linalg.SolveTol))
	g.Expect(value(g, res, "max |inv·A - I|")).To(BeNumerically("<", 1e-13))
	g.Expect(value(g, res, "max |inv·b - x|")).To(BeNumerically("<", 1e-13))

	names := make([]string, 0, len(res.Checks))
	for _, c := range res.Checks {
		names = append(names, c.Name)
	}
	g.Expect(names).To(Equal([]string{linalg.CheckFactorize, linalg.CheckDeterminant, "solve", linalg.CheckInverse}))
	g.Expect(res.Passed()).To(BeTrue())

	var x []float64
	for _, v := range res.Vectors {
		if v.Name == "x" {
			x = v.V
		}
	}
	g.Expect(x).To(HaveLen(5))
	g.Expect(x[0]).To(BeNumerically("~", 0.46168059486902996, 1e-12))
	g.Expect(x[4]).To(BeNumerically("~", 0.186480657770589, 1e-12))
}

func TestLinearSection_WithoutVerification(t *testing.T) {
	g := NewWithT(t)
	cfg := config.GetPreset("linear", "shared")
	cfg.Verify = false

	res := run(t, cfg, "linear")
	g.Expect(res.Checks).To(BeEmpty())
	g.Expect(res.Matrices).To(ContainElement(HaveField("Name", "inverse")))
}

func TestLinearSection_SingularFails(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Linear.A = [][]float64{{0, 1}, {1, 0}}
	cfg.Linear.B = []float64{1, 1}

	_, err := New(cfg, quiet()).Run(context.Background(), "linear")
	g.Expect(err).To(MatchError(linalg.ErrSingular))
	g.Expect(err.Error()).To(HavePrefix("linear: "))
}

func TestVerifiedRecordsOracleFailures(t *testing.T) {
	g := NewWithT(t)
	res := new(Result)

	oracle := &linalg.ValidationError{Check: linalg.CheckDeterminant, Row: -1, Col: -1, Got: 1, Want: 2, Tol: 1e-8}
	g.Expect(res.verified(linalg.CheckDeterminant, true, oracle)).To(Succeed())
	g.Expect(res.verified("solve", true, nil)).To(Succeed())
	g.Expect(res.verified("quiet", false, nil)).To(Succeed())
	g.Expect(res.verified("inverse", true, linalg.ErrSingular)).To(MatchError(linalg.ErrSingular))

	g.Expect(res.Checks).To(HaveLen(2))
	g.Expect(res.Checks[0].Passed).To(BeFalse())
	g.Expect(res.Checks[0].Detail).To(ContainSubstring("determinant"))
	g.Expect(res.Checks[1].Passed).To(BeTrue())
	g.Expect(res.Passed()).To(BeFalse())
}

func TestInterpolationSection(t *testing.T) {
	g := NewWithT(t)
	res := run(t, nil, "q3")

	g.Expect(res.Passed()).To(BeTrue())
	g.Expect(value(g, res, "spline cubic max error")).To(BeNumerically("<", 0.1))

	spline, ok := res.FindSeries("cubic spline")
	g.Expect(ok).To(BeTrue())
	g.Expect(spline.Y).To(HaveLen(config.DefaultSplineSample))
	g.Expect(spline.Y[0]).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(spline.Y[len(spline.Y)-1]).To(BeNumerically("~", -0.08, 1e-12))
}

func TestConvolutionSection(t *testing.T) {
	g := NewWithT(t)
	res := run(t, nil, "convolution")

	g.Expect(value(g, res, "peak t (n=4001)")).To(BeNumerically("~", 6, 0.05))
	g.Expect(value(g, res, "dt (n=41)")).To(BeNumerically("~", 1, 1e-12))

	peak := value(g, res, "peak value (n=4001)")
	g.Expect(peak).To(BeNumerically("~", value(g, res, "reference peak value (n=4001)"), 1e-9))

	_, ok := res.FindSeries("|G(f)|")
	g.Expect(ok).To(BeTrue())
}

func TestCircuitSection(t *testing.T) {
	g := NewWithT(t)
	res := run(t, nil, "circuit")

	g.Expect(value(g, res, "RK4 mean relative error (n=401)")).To(BeNumerically("~", 1.816e-5, 1e-7))
	g.Expect(value(g, res, "RK4 mean relative error (n=1601)")).To(BeNumerically("<", 1e-7))
	g.Expect(value(g, res, "AB4 mean relative error (n=1601)")).To(BeNumerically("<", 1e-5))
	g.Expect(value(g, res, "RK4 order (n=401->801)")).To(BeNumerically("~", 4, 0.2))

	g.Expect(res.Checks).To(HaveLen(4))
	g.Expect(res.Passed()).To(BeTrue())

	resp, ok := res.FindSeries("RK4 step response")
	g.Expect(ok).To(BeTrue())
	g.Expect(resp.Y[0]).To(Equal(1.0))

	_, ok = res.FindSeries("RK4 square response T=0.5")
	g.Expect(ok).To(BeTrue())
}

func TestCircuitSection_MethodFromConfig(t *testing.T) {
	g := NewWithT(t)
	res := run(t, config.GetPreset("circuit", "ab4"), "circuit")

	_, ok := res.FindSeries("AB4 step response")
	g.Expect(ok).To(BeTrue())
	_, ok = res.FindSeries("AB4 square response T=2")
	g.Expect(ok).To(BeTrue())
}

func TestRunAll(t *testing.T) {
	g := NewWithT(t)
	e := New(config.GetPreset("circuit", "coarse"), quiet())

	results, err := e.RunAll(context.Background(), "q2", "circuit")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))
	g.Expect(results[0].Section).To(Equal("linear"))
	g.Expect(results[1].Title).To(Equal("RC low-pass integration"))

	_, err = e.RunAll(context.Background(), "linear", "nope")
	g.Expect(err).To(MatchError(ErrUnknownSection))
}

func TestRunAll_Cancelled(t *testing.T) {
	g := NewWithT(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(nil, quiet()).RunAll(ctx)
	g.Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	g.Expect(results).To(BeEmpty())
}

func TestRun_InvalidConfig(t *testing.T) {
	g := NewWithT(t)
	cfg := config.DefaultConfig()
	cfg.Circuit.Method = "XYZ"

	_, err := New(cfg, quiet()).Run(context.Background(), "precision")
	g.Expect(err).To(MatchError(config.ErrInvalid))
}
