package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/runline/internal/models"
)

// PITBins is the resolution of the probability integral transform histogram.
// A well-calibrated model fills the bins approximately uniformly.
const PITBins = 10

// logLossClamp keeps log-loss finite when a side probability degenerates.
const logLossClamp = 1e-6

// SampleResult is one scored historical game.
type SampleResult struct {
	GameID          uuid.UUID `json:"game_id"`
	GameDate        time.Time `json:"game_date"`
	HomeTeam        string    `json:"home_team"`
	AwayTeam        string    `json:"away_team"`
	MarketLine      float64   `json:"market_line"`
	ActualTotal     int       `json:"actual_total"`
	PredictedTotal  float64   `json:"predicted_total"`
	PredictedSide   string    `json:"predicted_side"`
	SideProbability float64   `json:"side_probability"`
	Correct         bool      `json:"correct"`
	Push            bool      `json:"push"`
	LogLoss         float64   `json:"log_loss"`
	CRPS            float64   `json:"crps"`
	PIT             float64   `json:"pit"`
	Edge            float64   `json:"edge"`
	Confidence      float64   `json:"confidence"`
}

// BucketStats aggregates accuracy over a band of games.
type BucketStats struct {
	Games    int     `json:"games"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
	ROI      float64 `json:"roi"`

	profit float64
}

// Report is the backtest output: headline calibration metrics, the PIT
// histogram as a first-class field, bracket breakdowns from the analysis
// layer, and the per-game samples.
type Report struct {
	TotalGames int `json:"total_games"`
	Scored     int `json:"scored"`
	Skipped    int `json:"skipped"`
	Pushes     int `json:"pushes"`

	Accuracy   float64 `json:"accuracy"`
	AvgLogLoss float64 `json:"avg_log_loss"`
	AvgCRPS    float64 `json:"avg_crps"`

	PITHistogram [PITBins]int `json:"pit_histogram"`

	ConfidenceBrackets map[string]*BucketStats `json:"confidence_brackets"`
	EdgeBuckets        map[string]*BucketStats `json:"edge_buckets"`

	Samples []SampleResult `json:"sample_results"`
}

// NewReport initializes an empty report.
func NewReport() *Report {
	return &Report{
		ConfidenceBrackets: make(map[string]*BucketStats),
		EdgeBuckets:        make(map[string]*BucketStats),
	}
}

// ScoreGame scores a prediction against the known final total: side
// correctness, log loss of the predicted side, distributional CRPS from the
// retained sample, and the PIT value of the actual total under the empirical
// distribution.
func ScoreGame(game models.GameLog, result *models.SimulationResult) SampleResult {
	actual := game.ActualTotal()
	side := result.PredictedSide()
	sideProb := result.SideProbability()

	push := float64(actual) == game.ClosingLine
	correct := false
	if !push {
		actualOver := float64(actual) > game.ClosingLine
		correct = (side == "over") == actualOver
	}

	observedProb := sideProb
	if !push && !correct {
		observedProb = 1 - sideProb
	}

	return SampleResult{
		GameID:          game.ID,
		GameDate:        game.GameDate,
		HomeTeam:        game.HomeTeam,
		AwayTeam:        game.AwayTeam,
		MarketLine:      game.ClosingLine,
		ActualTotal:     actual,
		PredictedTotal:  result.PredictedTotal,
		PredictedSide:   side,
		SideProbability: sideProb,
		Correct:         correct,
		Push:            push,
		LogLoss:         logLoss(observedProb),
		CRPS:            crps(result.Distribution, result.PredictedTotal, actual),
		PIT:             pitValue(result.Distribution, actual),
		Edge:            result.EdgeVsMarket,
		Confidence:      result.Confidence,
	}
}

// Add accumulates one scored game into the report.
func (r *Report) Add(s SampleResult) {
	r.Samples = append(r.Samples, s)
	r.Scored++
	if s.Push {
		r.Pushes++
	}

	bin := int(s.PIT * PITBins)
	if bin >= PITBins {
		bin = PITBins - 1
	}
	if bin < 0 {
		bin = 0
	}
	r.PITHistogram[bin]++

	r.bucket(r.ConfidenceBrackets, confidenceBracket(s.SideProbability), s)
	r.bucket(r.EdgeBuckets, edgeBucket(s.Edge), s)
}

func (r *Report) bucket(buckets map[string]*BucketStats, key string, s SampleResult) {
	b, ok := buckets[key]
	if !ok {
		b = &BucketStats{}
		buckets[key] = b
	}
	if s.Push {
		return
	}
	b.Games++
	if s.Correct {
		b.Correct++
	}
	b.profit += models.FlatStakeProfit(models.StandardVigOdds, s.Correct)
}

// Finalize computes the aggregate metrics. Pushes are excluded from the
// accuracy denominator.
func (r *Report) Finalize() *Report {
	decided := 0
	correct := 0
	lossSum := 0.0
	crpsSum := 0.0
	for _, s := range r.Samples {
		lossSum += s.LogLoss
		crpsSum += s.CRPS
		if s.Push {
			continue
		}
		decided++
		if s.Correct {
			correct++
		}
	}
	if decided > 0 {
		r.Accuracy = float64(correct) / float64(decided)
	}
	if r.Scored > 0 {
		r.AvgLogLoss = lossSum / float64(r.Scored)
		r.AvgCRPS = crpsSum / float64(r.Scored)
	}
	for _, b := range r.ConfidenceBrackets {
		finalizeBucket(b)
	}
	for _, b := range r.EdgeBuckets {
		finalizeBucket(b)
	}
	return r
}

func finalizeBucket(b *BucketStats) {
	if b.Games == 0 {
		return
	}
	b.Accuracy = float64(b.Correct) / float64(b.Games)
	b.ROI = b.profit / float64(b.Games)
}

// PITUniformityDeviation measures how far the PIT histogram strays from
// uniform: the maximum absolute deviation of any bin share from 1/PITBins.
func (r *Report) PITUniformityDeviation() float64 {
	if r.Scored == 0 {
		return 0
	}
	expected := 1.0 / PITBins
	maxDev := 0.0
	for _, count := range r.PITHistogram {
		dev := math.Abs(float64(count)/float64(r.Scored) - expected)
		if dev > maxDev {
			maxDev = dev
		}
	}
	return maxDev
}

func logLoss(observedProb float64) float64 {
	p := math.Max(logLossClamp, math.Min(1-logLossClamp, observedProb))
	return -math.Log(p)
}

// crps computes the continuous ranked probability score. With the retained
// Monte Carlo sample it uses the full distributional form
// E|X-y| - E|X-X'|/2; without a sample it degrades to the mean absolute
// error approximation.
func crps(sample []int, predictedMean float64, actual int) float64 {
	if len(sample) == 0 {
		return math.Abs(predictedMean - float64(actual))
	}
	n := len(sample)
	sorted := make([]int, n)
	copy(sorted, sample)
	sort.Ints(sorted)

	absErr := 0.0
	for _, v := range sorted {
		absErr += math.Abs(float64(v - actual))
	}
	absErr /= float64(n)

	// Gini mean difference via the sorted-sample identity, O(n log n).
	pairSum := 0.0
	for i, v := range sorted {
		pairSum += float64(v) * float64(2*i-n+1)
	}
	meanDiff := 2 * pairSum / float64(n*n)

	return absErr - meanDiff/2
}

// pitValue is the empirical CDF of the predicted distribution evaluated at
// the actual total, with the midpoint convention for the discrete mass at
// the observed value.
func pitValue(sample []int, actual int) float64 {
	if len(sample) == 0 {
		return 0.5
	}
	less, equal := 0, 0
	for _, v := range sample {
		switch {
		case v < actual:
			less++
		case v == actual:
			equal++
		}
	}
	return (float64(less) + 0.5*float64(equal)) / float64(len(sample))
}

func confidenceBracket(sideProb float64) string {
	switch {
	case sideProb < 0.55:
		return "<0.55"
	case sideProb < 0.65:
		return "0.55-0.65"
	case sideProb < 0.75:
		return "0.65-0.75"
	default:
		return ">0.75"
	}
}

func edgeBucket(edge float64) string {
	abs := math.Abs(edge)
	switch {
	case abs < 0.02:
		return "0-2%"
	case abs < 0.05:
		return "2-5%"
	case abs < 0.10:
		return "5-10%"
	default:
		return ">10%"
	}
}
