package domain

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleDBH    = 10.0
	sampleHeight = 60.0
	sampleMTop   = 4.0
	tolerance    = 1e-9
)

func sampleEstimator() Estimator {
	return NewEstimator(sampleDBH, sampleHeight, sampleMTop)
}

func TestSlashGreenWeight_Sample(t *testing.T) {
	want := 0.1763*math.Pow(10, 1.9604)*math.Pow(60, 0.9761) -
		0.1167*(math.Pow(4, 3.6422)/math.Pow(10, 1.5441))*(60-4.5)

	got, err := sampleEstimator().SlashGreenWeight()
	require.NoError(t, err)
	assert.InDelta(t, want, got, tolerance)
}

func TestLoblollyGreenWeight_LCPSample(t *testing.T) {
	want := 0.0740959*math.Pow(10, 1.829983)*math.Pow(60, 1.247669) +
		(-0.123329)*(math.Pow(4, 3.523107)/math.Pow(10, 1.449947))*(60-4.5)

	got, err := sampleEstimator().LoblollyGreenWeight("lcp")
	require.NoError(t, err)
	assert.InDelta(t, want, got, tolerance)
}

func TestLoblollyGreenWeight_UCPSample(t *testing.T) {
	want := 0.141534*math.Pow(10, 1.917146)*math.Pow(60, 1.038452) -
		0.0932063*(math.Pow(4, 3.589155)/math.Pow(10, 1.413061))*(60-4.5)

	got, err := sampleEstimator().LoblollyGreenWeight("ucp")
	require.NoError(t, err)
	assert.InDelta(t, want, got, tolerance)
}

func TestLoblollyGreenWeight_LogLinearForm(t *testing.T) {
	c := RegionNLA.Coefficients()
	want := math.Exp(c.A+c.B*math.Log(10)+c.C*math.Log(60)) *
		(1 - c.D*(math.Pow(4, c.E)/math.Pow(10, c.F)))

	got, err := sampleEstimator().LoblollyGreenWeight("nla")
	require.NoError(t, err)
	assert.InDelta(t, want, got, tolerance)
	assert.Positive(t, got)
}

func TestLoblollyGreenWeight_CaseInsensitive(t *testing.T) {
	est := sampleEstimator()
	lower, err := est.LoblollyGreenWeight("lcp")
	require.NoError(t, err)

	for _, name := range []string{"LCP", "Lcp", "lCp", " lcp "} {
		got, err := est.LoblollyGreenWeight(name)
		require.NoError(t, err, name)
		assert.Equal(t, lower, got, name)
	}
}

func TestLoblollyGreenWeight_Synonyms(t *testing.T) {
	est := sampleEstimator()

	pied, err := est.LoblollyGreenWeight("pied")
	require.NoError(t, err)
	piedmont, err := est.LoblollyGreenWeight("Piedmont")
	require.NoError(t, err)
	assert.Equal(t, pied, piedmont)

	nla, err := est.LoblollyGreenWeight("nla")
	require.NoError(t, err)
	texas, err := est.LoblollyGreenWeight("texas")
	require.NoError(t, err)
	louisiana, err := est.LoblollyGreenWeight("LOUISIANA")
	require.NoError(t, err)
	assert.Equal(t, nla, texas)
	assert.Equal(t, nla, louisiana)
}

func TestLoblollyGreenWeight_UnknownRegion(t *testing.T) {
	got, err := sampleEstimator().LoblollyGreenWeight("unknown")

	require.ErrorIs(t, err, ErrInvalidRegion)
	assert.Zero(t, got)
	for _, key := range []string{"lcp", "ucp", "pied", "piedmont", "nla", "texas", "louisiana"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoblollyGreenWeightFor_UnknownRegionValue(t *testing.T) {
	_, err := sampleEstimator().LoblollyGreenWeightFor(Region(99))
	require.ErrorIs(t, err, ErrInvalidRegion)
}

func longleafVolumeRatio(dbh, h, mtop float64) float64 {
	v4 := -0.84281 + 0.00216*dbh*dbh*h
	v5 := v4 * (1 - 0.682125*(math.Pow(5, 4.543282)/math.Pow(dbh, 4.369255)))
	coef := (0.00545415 * (mtop*mtop + 4*4) / 2 * (4 - mtop)) * (1 / (0.00545415 * (4.0*4.0 + 5.0*5.0) / 2))
	wt4 := -36.83043 + 0.15608*dbh*dbh*h
	return wt4 * (1 + coef*((v4-v5)/v4))
}

func longleafTaper(dbh, h, mtop float64) float64 {
	wt4 := -36.83043 + 0.15608*dbh*dbh*h
	return wt4 * (1 - 0.647787*(math.Pow(mtop, 4.321359)/math.Pow(dbh, 4.122653)))
}

func TestLongleafGreenWeight_Sample(t *testing.T) {
	est := sampleEstimator()
	require.False(t, est.LongleafUsesTaper())

	got, err := est.LongleafGreenWeight()
	require.NoError(t, err)
	assert.InDelta(t, longleafVolumeRatio(10, 60, 4), got, tolerance)
}

func TestLongleafGreenWeight_Branches(t *testing.T) {
	tests := []struct {
		name  string
		mtop  float64
		taper bool
	}{
		{"no top", 0, false},
		{"three inch top", 3, false},
		{"boundary is volume ratio", 4, false},
		{"just above boundary", 4.0001, true},
		{"six inch top", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := NewEstimator(12, 70, tt.mtop)
			assert.Equal(t, tt.taper, est.LongleafUsesTaper())

			got, err := est.LongleafGreenWeight()
			require.NoError(t, err)

			want := longleafVolumeRatio(12, 70, tt.mtop)
			if tt.taper {
				want = longleafTaper(12, 70, tt.mtop)
			}
			assert.InDelta(t, want, got, tolerance)
		})
	}
}

func TestLongleafGreenWeight_BoundaryNotTaper(t *testing.T) {
	got, err := NewEstimator(10, 60, 4).LongleafGreenWeight()
	require.NoError(t, err)
	assert.NotEqual(t, longleafTaper(10, 60, 4), got)
}

func TestWeights_ZeroDBHIsNumericDomainError(t *testing.T) {
	est := NewEstimator(0, 60, 4)

	_, err := est.SlashGreenWeight()
	require.ErrorIs(t, err, ErrNumericDomain)

	_, err = est.LoblollyGreenWeight("lcp")
	require.ErrorIs(t, err, ErrNumericDomain)

	_, err = est.LongleafGreenWeight()
	require.ErrorIs(t, err, ErrNumericDomain)
}

func TestLongleafGreenWeight_ZeroV4IsNumericDomainError(t *testing.T) {
	// Heights where 0.00216·dbh²·h rounds to exactly 0.84281.
	tests := []struct {
		dbh, height float64
	}{
		{1, 390.1898148148148},
		{1.5, 173.417695473251},
		{2, 97.5474537037037},
		{3, 43.35442386831275},
	}

	for _, tt := range tests {
		est := NewEstimator(tt.dbh, tt.height, 3)
		require.False(t, est.LongleafUsesTaper())

		got, err := est.LongleafGreenWeight()
		require.ErrorIs(t, err, ErrNumericDomain, "dbh=%v height=%v", tt.dbh, tt.height)
		assert.Contains(t, err.Error(), "4-inch volume is zero")
		assert.Zero(t, got)
	}
}

func TestLongleafGreenWeight_TaperBranchIgnoresZeroV4(t *testing.T) {
	got, err := NewEstimator(2, 97.5474537037037, 5).LongleafGreenWeight()
	require.NoError(t, err)
	assert.InDelta(t, longleafTaper(2, 97.5474537037037, 5), got, tolerance)
}

func TestWeights_FiniteOverPositiveGrid(t *testing.T) {
	regions := RegionNames()
	for _, dbh := range []float64{2, 6, 10, 16, 24} {
		for _, h := range []float64{10, 40, 60, 100} {
			for _, mtop := range []float64{0, 1, 2, 3, 4, 4.5, 6} {
				if mtop >= dbh {
					continue
				}
				est := NewEstimator(dbh, h, mtop)

				v, err := est.SlashGreenWeight()
				require.NoError(t, err)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))

				v, err = est.LongleafGreenWeight()
				require.NoError(t, err, "dbh=%v h=%v mtop=%v", dbh, h, mtop)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))

				for _, r := range regions {
					v, err = est.LoblollyGreenWeight(r)
					require.NoError(t, err, r)
					assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				}
			}
		}
	}
}

func TestWeights_Deterministic(t *testing.T) {
	est := NewEstimator(14.2, 81, 3.5)
	a, errA := est.LongleafGreenWeight()
	b, errB := est.LongleafGreenWeight()
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestLoblollyGreenWeight_ConcurrentReaders(t *testing.T) {
	want, err := sampleEstimator().LoblollyGreenWeight("ucp")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = sampleEstimator().LoblollyGreenWeight("UCP")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestGreenWeight_Dispatch(t *testing.T) {
	est := sampleEstimator()

	slash, err := est.SlashGreenWeight()
	require.NoError(t, err)
	got, err := est.GreenWeight(SpeciesSlash, "ignored")
	require.NoError(t, err)
	assert.Equal(t, slash, got)

	longleaf, err := est.LongleafGreenWeight()
	require.NoError(t, err)
	got, err = est.GreenWeight(SpeciesLongleaf, "")
	require.NoError(t, err)
	assert.Equal(t, longleaf, got)

	lob, err := est.LoblollyGreenWeight("pied")
	require.NoError(t, err)
	got, err = est.GreenWeight(SpeciesLoblolly, "piedmont")
	require.NoError(t, err)
	assert.Equal(t, lob, got)

	_, err = est.GreenWeight(SpeciesLoblolly, "")
	require.ErrorIs(t, err, ErrInvalidRegion)

	_, err = est.GreenWeight(Species("spruce"), "")
	require.ErrorIs(t, err, ErrInvalidSpecies)
}
