package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCAGR(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		years  int
		want   float64
		wantOK bool
	}{
		{
			name:   "ten percent over two years",
			series: []float64{121, 110, 100},
			years:  2,
			want:   0.10,
			wantOK: true,
		},
		{
			name:   "one year is plain growth",
			series: []float64{150, 100},
			years:  1,
			want:   0.50,
			wantOK: true,
		},
		{
			name:   "declining revenue gives negative rate",
			series: []float64{81, 90, 100},
			years:  2,
			want:   -0.10,
			wantOK: true,
		},
		{
			name:   "non-positive baseline is undefined",
			series: []float64{121, 110, 0},
			years:  2,
			wantOK: false,
		},
		{
			name:   "negative baseline is undefined",
			series: []float64{121, 110, -5},
			years:  2,
			wantOK: false,
		},
		{
			name:   "negative ending is undefined",
			series: []float64{-10, 110, 100},
			years:  2,
			wantOK: false,
		},
		{
			name:   "gaps are dropped before windowing",
			series: []float64{121, math.NaN(), 110, 100},
			years:  2,
			want:   0.10,
			wantOK: true,
		},
		{
			name:   "gap shrinks history below the minimum",
			series: []float64{121, math.NaN(), 100},
			years:  2,
			wantOK: false,
		},
		{
			name:   "zero years is undefined",
			series: []float64{121, 110, 100},
			years:  0,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CAGR(tt.series, tt.years)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

// A series with exactly `years` entries never has enough history,
// regardless of the lookback.
func TestCAGR_InsufficientHistory(t *testing.T) {
	for years := 1; years <= 6; years++ {
		series := make([]float64, years)
		for i := range series {
			series[i] = float64(100 + i)
		}

		_, ok := CAGR(series, years)
		assert.False(t, ok, "series of length %d must be undefined for years=%d", years, years)
	}
}

func TestCAGR_EndToEndScenarioWindow(t *testing.T) {
	// Screener scenario from the dashboard: [160,140,120,100] over 3 years
	got, ok := CAGR([]float64{160, 140, 120, 100}, 3)
	assert.True(t, ok)
	assert.InDelta(t, 0.1696, got, 0.0001)
}
