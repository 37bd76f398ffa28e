package linalg_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/linalg"
)

// coursework returns the tridiagonal 5×5 system from the exercises.
func coursework() (linalg.Matrix, linalg.Vector) {
	a := linalg.Matrix{
		{3, 1, 0, 0, 0},
		{3, 9, 4, 0, 0},
		{0, 8, 20, 10, 0},
		{0, 0, -22, 31, -25},
		{0, 0, 0, -35, 61},
	}
	b := linalg.Vector{2, 5, -4, 8, 9}
	return a, b
}

func expectUnitLower(l linalg.Matrix) {
	for i := range l {
		Expect(l[i][i]).To(Equal(1.0), "L[%d][%d]", i, i)
		for j := i + 1; j < len(l); j++ {
			Expect(l[i][j]).To(BeZero(), "L[%d][%d]", i, j)
		}
	}
}

func expectUpper(u linalg.Matrix) {
	for i := range u {
		for j := 0; j < i; j++ {
			Expect(u[i][j]).To(BeZero(), "U[%d][%d]", i, j)
		}
	}
}

func expectClose(got, want linalg.Matrix, tol float64) {
	Expect(got).To(HaveLen(len(want)))
	for i := range want {
		for j := range want[i] {
			Expect(got[i][j]).To(BeNumerically("~", want[i][j], tol), "entry [%d,%d]", i, j)
		}
	}
}

var _ = Describe("Factorize", func() {
	var k *linalg.Kernel

	BeforeEach(func() {
		k = linalg.New(linalg.WithVerification(true))
	})

	It("recovers known Doolittle factors exactly", func() {
		lExp := linalg.Matrix{{1, 0, 0}, {2, 1, 0}, {3, 4, 1}}
		uExp := linalg.Matrix{{5, 6, 7}, {0, 8, 9}, {0, 0, 10}}
		a := lExp.Mul(uExp)

		f, err := k.Factorize(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.L).To(Equal(lExp))
		Expect(f.U).To(Equal(uExp))
	})

	It("produces triangular factors that reconstruct the coursework matrix", func() {
		a, _ := coursework()

		f, err := k.Factorize(a)
		Expect(err).NotTo(HaveOccurred())
		expectUnitLower(f.L)
		expectUpper(f.U)
		expectClose(f.L.Mul(f.U), a, linalg.FactorTol)
	})

	It("packs U and the strict lower part of L into Res without aliasing", func() {
		a, _ := coursework()

		f, err := k.Factorize(a)
		Expect(err).NotTo(HaveOccurred())
		for i := range a {
			for j := range a {
				if j < i {
					Expect(f.Res[i][j]).To(Equal(f.L[i][j]))
				} else {
					Expect(f.Res[i][j]).To(Equal(f.U[i][j]))
				}
			}
		}

		f.Res[3][1] = 99
		f.Res[0][0] = -99
		Expect(f.U[3][1]).To(BeZero())
		Expect(f.U[0][0]).To(Equal(3.0))
	})

	It("leaves the input untouched", func() {
		a, _ := coursework()
		orig := a.Clone()

		_, err := k.Factorize(a)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(orig))
	})

	It("handles a 1×1 matrix", func() {
		f, err := k.Factorize(linalg.Matrix{{4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(f.L).To(Equal(linalg.Matrix{{1}}))
		Expect(f.U).To(Equal(linalg.Matrix{{4}}))
		Expect(f.Res).To(Equal(linalg.Matrix{{4}}))
	})

	It("accepts a zero pivot in the last position", func() {
		f, err := k.Factorize(linalg.Matrix{{1, 2}, {2, 4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(f.U[1][1]).To(BeZero())
	})

	DescribeTable("rejects unusable input",
		func(a linalg.Matrix, want error) {
			_, err := k.Factorize(a)
			Expect(err).To(MatchError(want))
		},
		Entry("empty", linalg.Matrix{}, linalg.ErrEmpty),
		Entry("ragged", linalg.Matrix{{1, 2}, {3}}, linalg.ErrNotSquare),
		Entry("rectangular", linalg.Matrix{{1, 2, 3}, {4, 5, 6}}, linalg.ErrNotSquare),
		Entry("leading zero pivot", linalg.Matrix{{0, 1}, {1, 0}}, linalg.ErrSingular),
	)
})

var _ = Describe("Determinant", func() {
	It("is the product of U's diagonal and agrees with the reference", func() {
		a, _ := coursework()
		k := linalg.New(linalg.WithVerification(true))

		d, err := k.Determinant(a)
		Expect(err).NotTo(HaveOccurred())

		f, err := k.Factorize(a)
		Expect(err).NotTo(HaveOccurred())
		prod := 1.0
		for i := range f.U {
			prod *= f.U[i][i]
		}
		Expect(d).To(Equal(prod))
		Expect(d).To(BeNumerically("~", 712224, linalg.DeterminantTol*1e3))
	})

	It("is zero for a matrix that is singular only in its last pivot", func() {
		d, err := linalg.New(linalg.WithVerification(true)).Determinant(linalg.Matrix{{1, 2}, {2, 4}})
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(d)).To(BeZero())
	})
})
