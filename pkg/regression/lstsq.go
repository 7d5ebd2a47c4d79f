package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// rankRCond is the relative singular value cutoff used to determine the
// numerical rank of a least-squares system. Singular values below this
// fraction of the largest one are treated as zero.
const rankRCond = 1e-12

// solveLeastSquares solves the complex least-squares problem A·c ≈ b for
// c, where a holds the rows-by-cols matrix A in row-major order and b has
// length rows. The solution of length cols is written into dst.
//
// The solve goes through the real embedding
//
//	[[Re A, -Im A], [Im A, Re A]] · [Re c; Im c] = [Re b; Im b]
//
// which preserves both the residual norm and the solution norm, so the
// minimum-norm solution of the embedded system is exactly the embedded
// minimum-norm complex solution. Rank-deficient systems (too few samples,
// degenerate microstructures) are therefore not errors: the SVD-based
// solve returns the minimum-norm coefficient vector.
func solveLeastSquares(a []complex128, rows, cols int, b, dst []complex128) error {
	em := mat.NewDense(2*rows, 2*cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			re := real(a[i*cols+j])
			im := imag(a[i*cols+j])
			em.Set(i, j, re)
			em.Set(i, cols+j, -im)
			em.Set(rows+i, j, im)
			em.Set(rows+i, cols+j, re)
		}
	}

	rhs := mat.NewDense(2*rows, 1, nil)
	for i := 0; i < rows; i++ {
		rhs.Set(i, 0, real(b[i]))
		rhs.Set(rows+i, 0, imag(b[i]))
	}

	var svd mat.SVD
	if ok := svd.Factorize(em, mat.SVDThin); !ok {
		return fmt.Errorf("least-squares SVD failed to converge")
	}

	rank := svd.Rank(rankRCond)
	if rank == 0 {
		// All-zero system; the minimum-norm solution is zero.
		for j := 0; j < cols; j++ {
			dst[j] = 0
		}
		return nil
	}

	var x mat.Dense
	svd.SolveTo(&x, rhs, rank)
	for j := 0; j < cols; j++ {
		dst[j] = complex(x.At(j, 0), x.At(cols+j, 0))
	}
	return nil
}
