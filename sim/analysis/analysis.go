// Package analysis reduces replication results to means, standard deviations
// and staffing recommendations.
package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/juanmaya19/problema-bancario/sim"
)

// DefaultMaxAcceptableMinutes is the teller mean above which another teller is recommended.
const DefaultMaxAcceptableMinutes = 5.0

// ErrNoResults is returned when there is nothing to analyze.
var ErrNoResults = errors.New("no replication results to analyze")

// Options tunes the recommendations.
type Options struct {
	MaxAcceptableMinutes float64 // threshold for the extra-teller recommendation
}

// Summary is the mean and population standard deviation of a sample.
type Summary struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// ReplicationTotals is the per-replication count of served customers by class and kind.
type ReplicationTotals map[sim.TransactionClass]map[sim.CustomerKind]int

// Report holds everything the analyzer derives from a batch of replications.
type Report struct {
	Replications int `yaml:"replications"`
	NumStations  int `yaml:"num_stations"`

	// MeanCompletionTime is, per station, the mean completion timestamp of a
	// replication (0 when it served nobody), averaged over replications.
	MeanCompletionTime map[int]float64 `yaml:"mean_completion_time"`
	FastestStation     int             `yaml:"fastest_station"`
	SlowestStation     int             `yaml:"slowest_station"`

	// KindCounts summarizes per-station completed counts over every
	// (replication, station) pair.
	KindCounts map[sim.TransactionClass]map[sim.CustomerKind]Summary `yaml:"kind_counts"`

	Totals []ReplicationTotals `yaml:"replication_totals"`

	// LeastServed is the 0-based index of the replication with the fewest completions.
	LeastServed        int                                                       `yaml:"least_served"`
	LeastServedRecords map[int]map[sim.TransactionClass]map[sim.CustomerKind]int `yaml:"least_served_records"`

	MaxAcceptableMinutes float64 `yaml:"max_acceptable_minutes"`
	NeedsExtraTeller     bool    `yaml:"needs_extra_teller"`

	WithdrawalTellers int `yaml:"withdrawal_tellers"`
	PaymentTellers    int `yaml:"payment_tellers"`
}

// Analyze reduces results. All results must come from runs with the same
// number of stations.
func Analyze(results []*sim.ReplicationResult, opts Options) (*Report, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	for _, r := range results {
		if r == nil || r.Records == nil {
			return nil, errors.New("nil replication result")
		}
	}
	numStations := len(results[0].Assignment)
	for _, r := range results {
		if len(r.Assignment) != numStations {
			return nil, errors.New("replications disagree on station count")
		}
	}
	if opts.MaxAcceptableMinutes <= 0 {
		opts.MaxAcceptableMinutes = DefaultMaxAcceptableMinutes
	}

	rep := &Report{
		Replications:         len(results),
		NumStations:          numStations,
		MeanCompletionTime:   meanCompletionTimes(results),
		KindCounts:           kindCounts(results),
		Totals:               replicationTotals(results),
		MaxAcceptableMinutes: opts.MaxAcceptableMinutes,
	}
	rep.FastestStation, rep.SlowestStation = extremes(rep.MeanCompletionTime, numStations)

	least := 0
	for i, r := range results {
		if r.Records.Total() < results[least].Records.Total() {
			least = i
		}
	}
	rep.LeastServed = least
	rep.LeastServedRecords = results[least].Records.Completed

	for _, mean := range rep.MeanCompletionTime {
		if mean > rep.MaxAcceptableMinutes {
			rep.NeedsExtraTeller = true
			break
		}
	}

	rep.WithdrawalTellers, rep.PaymentTellers = splitTellers(rep.KindCounts, numStations)
	return rep, nil
}

func meanCompletionTimes(results []*sim.ReplicationResult) map[int]float64 {
	perStation := make(map[int][]float64)
	for _, r := range results {
		for _, id := range r.StationIDs() {
			perStation[id] = append(perStation[id], sim.MeanCompletionTime(r.Records.CompletionTimes[id]))
		}
	}
	out := make(map[int]float64, len(perStation))
	for id, means := range perStation {
		out[id] = stat.Mean(means, nil)
	}
	return out
}

// extremes returns the stations with the lowest and highest mean.
// Ties go to the lower station ID.
func extremes(means map[int]float64, numStations int) (fastest, slowest int) {
	fastest, slowest = 1, 1
	for id := 2; id <= numStations; id++ {
		if means[id] < means[fastest] {
			fastest = id
		}
		if means[id] > means[slowest] {
			slowest = id
		}
	}
	return fastest, slowest
}

func kindCounts(results []*sim.ReplicationResult) map[sim.TransactionClass]map[sim.CustomerKind]Summary {
	out := make(map[sim.TransactionClass]map[sim.CustomerKind]Summary, len(sim.AllClasses))
	for _, class := range sim.AllClasses {
		out[class] = make(map[sim.CustomerKind]Summary, len(sim.AllKinds))
		for _, kind := range sim.AllKinds {
			samples := make([]float64, 0, len(results)*len(results[0].Assignment))
			for _, r := range results {
				for _, id := range r.StationIDs() {
					samples = append(samples, float64(r.Records.Completed[id][class][kind]))
				}
			}
			out[class][kind] = summarize(samples)
		}
	}
	return out
}

func summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	return Summary{
		Mean:   stat.Mean(samples, nil),
		StdDev: stat.PopStdDev(samples, nil),
	}
}

func replicationTotals(results []*sim.ReplicationResult) []ReplicationTotals {
	out := make([]ReplicationTotals, len(results))
	for i, r := range results {
		totals := make(ReplicationTotals, len(sim.AllClasses))
		for _, class := range sim.AllClasses {
			totals[class] = make(map[sim.CustomerKind]int, len(sim.AllKinds))
			for _, kind := range sim.AllKinds {
				totals[class][kind] = r.Records.CountByKind(class, kind)
			}
		}
		out[i] = totals
	}
	return out
}

// splitTellers divides numStations between classes in proportion to the mean
// number of customers each class served, rounding half to even. With no
// customers served at all, every teller goes to withdrawals.
func splitTellers(counts map[sim.TransactionClass]map[sim.CustomerKind]Summary, numStations int) (withdrawal, payment int) {
	var served [2]float64
	for i, class := range sim.AllClasses {
		for _, kind := range sim.AllKinds {
			served[i] += counts[class][kind].Mean
		}
	}
	total := served[0] + served[1]
	if total == 0 {
		return numStations, 0
	}
	withdrawal = int(math.RoundToEven(served[0] / total * float64(numStations)))
	return withdrawal, numStations - withdrawal
}
