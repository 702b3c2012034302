package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData はベンチマーク用のデータを生成する
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.VecDense) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.NormFloat64())
		}
	}

	// y = X * weights + 小さなノイズ（標準化済みを想定して切片なし）
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * float64(j+1) * 0.5
		}
		y.SetVec(i, sum+(rng.Float64()-0.5)*0.1)
	}

	return X, y
}

// BenchmarkRidgeFit はFitメソッドのベンチマークを実行する
func BenchmarkRidgeFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"CancerReg_2500x28", 2500, 28},
		{"Medium_10000x28", 10000, 28},
		{"Large_50000x50", 50000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r, err := NewRidge(1.0)
				if err != nil {
					b.Fatal(err)
				}
				if err := r.Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
