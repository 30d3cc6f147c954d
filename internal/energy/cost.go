package energy

import (
	"math"

	"github.com/bryanmalak/real-time-power-monitoring/internal/models"
)

// DefaultRateUSDPerKWh is the electricity rate assumed when none is
// configured.
const DefaultRateUSDPerKWh = 0.12

// Estimator converts buffered power readings into running cost
// projections at a fixed electricity rate.
type Estimator struct {
	ratePerKWh float64
}

// NewEstimator builds an estimator for the given $/kWh rate. Rates of
// zero or below fall back to DefaultRateUSDPerKWh.
func NewEstimator(ratePerKWh float64) Estimator {
	if ratePerKWh <= 0 {
		ratePerKWh = DefaultRateUSDPerKWh
	}
	return Estimator{ratePerKWh: ratePerKWh}
}

// RateUSDPerKWh returns the configured electricity rate.
func (e Estimator) RateUSDPerKWh() float64 {
	return e.ratePerKWh
}

// CostProjection extrapolates the running cost of one device from its
// mean draw over the buffered window.
type CostProjection struct {
	Device     models.Device `json:"device"`
	MeanWatts  float64       `json:"mean_watts"`
	HourlyUSD  float64       `json:"hourly_usd"`
	DailyUSD   float64       `json:"daily_usd"`
	MonthlyUSD float64       `json:"monthly_usd"`
	AnnualUSD  float64       `json:"annual_usd"`
}

// Cost returns the price of drawing watts continuously for the given
// number of hours at the estimator's rate.
func (e Estimator) Cost(watts, hours float64) float64 {
	kwh := watts * hours / 1000
	return kwh * e.ratePerKWh
}

// Project derives the hourly, daily, monthly, and annual cost of one
// device from its buffered series. An empty series projects to zero.
func (e Estimator) Project(device models.Device, series []models.Sample) CostProjection {
	mean := MeanWatts(series)
	hourly := e.Cost(mean, 1)
	return CostProjection{
		Device:     device,
		MeanWatts:  round2(mean),
		HourlyUSD:  round4(hourly),
		DailyUSD:   round2(hourly * 24),
		MonthlyUSD: round2(hourly * 24 * 30),
		AnnualUSD:  round2(hourly * 24 * 365),
	}
}

// Summary aggregates the buffered window of one device for the dashboard
// side panel.
type Summary struct {
	Device      models.Device `json:"device"`
	Samples     int           `json:"samples"`
	LatestWatts float64       `json:"latest_watts"`
	MeanWatts   float64       `json:"mean_watts"`
	PeakWatts   float64       `json:"peak_watts"`
}

// Summarize computes the usage summary for one device's series.
func Summarize(device models.Device, series []models.Sample) Summary {
	s := Summary{Device: device, Samples: len(series)}
	if len(series) == 0 {
		return s
	}
	peak := series[0].Watts
	for _, sample := range series {
		if sample.Watts > peak {
			peak = sample.Watts
		}
	}
	s.LatestWatts = series[len(series)-1].Watts
	s.MeanWatts = round2(MeanWatts(series))
	s.PeakWatts = peak
	return s
}

// MeanWatts averages the readings of a series, ignoring NaN values.
// An empty series averages to zero.
func MeanWatts(series []models.Sample) float64 {
	var sum float64
	var n int
	for _, sample := range series {
		if math.IsNaN(sample.Watts) {
			continue
		}
		sum += sample.Watts
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
