package linalg_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/linalg"
)

var _ = Describe("Solve", func() {
	var k *linalg.Kernel

	BeforeEach(func() {
		k = linalg.New(linalg.WithVerification(true))
	})

	It("solves the coursework system within the residual tolerance", func() {
		a, b := coursework()

		x, err := k.Solve(a, b)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(HaveLen(5))

		ax := a.MulVec(x)
		for i := range b {
			Expect(ax[i]).To(BeNumerically("~", b[i], linalg.SolveTol), "residual %d", i)
		}
		Expect(x[0]).To(BeNumerically("~", 0.46168059486903, 1e-13))
		Expect(x[4]).To(BeNumerically("~", 0.186480657770589, 1e-13))
	})

	It("gives the same answer with and without verification", func() {
		a, b := coursework()

		checked, err := k.Solve(a, b)
		Expect(err).NotTo(HaveOccurred())
		plain, err := linalg.Solve(a, b)
		Expect(err).NotTo(HaveOccurred())
		Expect(plain).To(Equal(checked))
	})

	It("solves a 1×1 system", func() {
		x, err := k.Solve(linalg.Matrix{{4}}, linalg.Vector{2})
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(Equal(linalg.Vector{0.5}))
	})

	It("rejects a right-hand side of the wrong length", func() {
		a, _ := coursework()
		_, err := k.Solve(a, linalg.Vector{1, 2})
		Expect(err).To(MatchError(linalg.ErrDimensionMismatch))
	})

	It("rejects a matrix singular in its last pivot", func() {
		_, err := k.Solve(linalg.Matrix{{1, 2}, {2, 4}}, linalg.Vector{1, 1})
		Expect(err).To(MatchError(linalg.ErrSingular))
	})
})

var _ = Describe("Inverse", func() {
	var k *linalg.Kernel

	BeforeEach(func() {
		k = linalg.New(linalg.WithVerification(true))
	})

	It("produces a two-sided inverse of the coursework matrix", func() {
		a, _ := coursework()

		inv, err := k.Inverse(a)
		Expect(err).NotTo(HaveOccurred())
		expectClose(a.Mul(inv), linalg.Identity(5), linalg.InverseTol)
		expectClose(inv.Mul(a), linalg.Identity(5), 1e-13)
	})

	It("is consistent with Solve", func() {
		a, b := coursework()

		inv, err := k.Inverse(a)
		Expect(err).NotTo(HaveOccurred())
		x, err := k.Solve(a, b)
		Expect(err).NotTo(HaveOccurred())

		invB := inv.MulVec(b)
		for i := range x {
			Expect(invB[i]).To(BeNumerically("~", x[i], 1e-13))
		}
	})

	It("matches column-wise solves when factors are shared", func() {
		a, _ := coursework()

		perColumn, err := k.Inverse(a)
		Expect(err).NotTo(HaveOccurred())
		shared, err := linalg.New(linalg.WithVerification(true), linalg.WithSharedFactors(true)).Inverse(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(shared).To(Equal(perColumn))
	})

	It("inverts a 1×1 matrix", func() {
		inv, err := k.Inverse(linalg.Matrix{{4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(inv).To(Equal(linalg.Matrix{{0.25}}))
	})

	It("reports the failing column for a singular matrix", func() {
		_, err := k.Inverse(linalg.Matrix{{1, 2}, {2, 4}})
		Expect(err).To(MatchError(linalg.ErrSingular))
		Expect(err.Error()).To(ContainSubstring("column 0"))
	})

	It("never reports singular input as a validation failure", func() {
		_, err := k.Inverse(linalg.Matrix{{0, 1}, {1, 0}})
		Expect(errors.Is(err, linalg.ErrValidation)).To(BeFalse())
	})
})
