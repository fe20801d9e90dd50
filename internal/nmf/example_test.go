package nmf_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/Anirban95/PSO-BADINIT/internal/nmf"
)

func ExampleSolver_Fit() {
	// Recover the coefficients of X = W*H for a trivially separable W.
	W := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	X := mat.NewDense(2, 1, []float64{3, 4})

	solver := nmf.New()
	solver.SetSeed(42)

	H, err := solver.Fit(W, X)
	if err != nil {
		panic(err)
	}

	fmt.Printf("H[0][0] = %.2f\n", H.At(0, 0))
	fmt.Printf("H[1][0] = %.2f\n", H.At(1, 0))
	// Output:
	// H[0][0] = 3.00
	// H[1][0] = 4.00
}
