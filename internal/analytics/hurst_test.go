package analytics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHurst(t *testing.T) {
	t.Run("independent returns estimate near one half", func(t *testing.T) {
		// Statistical property: uncorrected R/S runs a little high on
		// finite samples, so the tolerance is generous.
		var sum float64
		seeds := []int64{1, 7, 42, 1234, 99}
		for _, seed := range seeds {
			rng := rand.New(rand.NewSource(seed))
			values := make([]float64, 2000)
			for i := range values {
				values[i] = rng.NormFloat64() * 0.01
			}
			h, _, err := Hurst(values)
			require.NoError(t, err)
			sum += h
		}
		avg := sum / float64(len(seeds))
		assert.InDelta(t, 0.5, avg, 0.15)
	})

	t.Run("persistent series classifies as trending", func(t *testing.T) {
		// Returns drawn from one slow sine cycle: cumulative deviations
		// grow nearly linearly with window size.
		values := make([]float64, 2000)
		for i := range values {
			values[i] = 0.01 * math.Sin(2*math.Pi*float64(i)/4000)
		}
		h, class, err := Hurst(values)
		require.NoError(t, err)
		assert.Greater(t, h, HurstTrendingThreshold)
		assert.Equal(t, ClassTrending, class)
	})

	t.Run("alternating series classifies as mean reverting", func(t *testing.T) {
		values := make([]float64, 2000)
		for i := range values {
			if i%2 == 0 {
				values[i] = 0.01
			} else {
				values[i] = -0.01
			}
		}
		h, class, err := Hurst(values)
		require.NoError(t, err)
		assert.Less(t, h, HurstReversionThreshold)
		assert.Equal(t, ClassMeanReverting, class)
	})

	t.Run("short series is insufficient", func(t *testing.T) {
		_, _, err := Hurst(make([]float64, 50))
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("constant series is degenerate", func(t *testing.T) {
		values := make([]float64, 500)
		for i := range values {
			values[i] = 0.01
		}
		_, _, err := Hurst(values)
		var um *UndefinedMetricError
		assert.ErrorAs(t, err, &um)
	})
}
