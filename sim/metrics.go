package sim

import "gonum.org/v1/gonum/stat"

// ServiceRecords is the aggregate written by departures during one run:
// completed counts per station, class and kind, and each station's
// completion timestamps in the order they were processed.
// It has a single writer, the event loop, and needs no locking while the
// engine stays single-threaded.
type ServiceRecords struct {
	Completed       map[int]map[TransactionClass]map[CustomerKind]int `yaml:"completed"`
	CompletionTimes map[int][]float64                                 `yaml:"completion_times"`
}

// NewServiceRecords returns zeroed counters for every class and kind of each
// station, and empty timestamp sequences.
func NewServiceRecords(stationIDs []int) *ServiceRecords {
	r := &ServiceRecords{
		Completed:       make(map[int]map[TransactionClass]map[CustomerKind]int, len(stationIDs)),
		CompletionTimes: make(map[int][]float64, len(stationIDs)),
	}
	for _, id := range stationIDs {
		byClass := make(map[TransactionClass]map[CustomerKind]int, len(AllClasses))
		for _, class := range AllClasses {
			byKind := make(map[CustomerKind]int, len(AllKinds))
			for _, kind := range AllKinds {
				byKind[kind] = 0
			}
			byClass[class] = byKind
		}
		r.Completed[id] = byClass
		r.CompletionTimes[id] = []float64{}
	}
	return r
}

// RecordCompletion counts one finished service and appends its timestamp.
func (r *ServiceRecords) RecordCompletion(stationID int, class TransactionClass, kind CustomerKind, at float64) {
	r.Completed[stationID][class][kind]++
	r.CompletionTimes[stationID] = append(r.CompletionTimes[stationID], at)
}

// StationTotal returns all completions at one station.
func (r *ServiceRecords) StationTotal(stationID int) int {
	total := 0
	for _, byKind := range r.Completed[stationID] {
		for _, n := range byKind {
			total += n
		}
	}
	return total
}

// Total returns all completions across stations.
func (r *ServiceRecords) Total() int {
	total := 0
	for id := range r.Completed {
		total += r.StationTotal(id)
	}
	return total
}

// CountByKind sums completions for one class and kind across stations.
func (r *ServiceRecords) CountByKind(class TransactionClass, kind CustomerKind) int {
	total := 0
	for _, byClass := range r.Completed {
		total += byClass[class][kind]
	}
	return total
}

// MeanCompletionTime returns the mean of a station's completion timestamps.
// An empty sequence yields 0 rather than an undefined value.
func MeanCompletionTime(times []float64) float64 {
	if len(times) == 0 {
		return 0
	}
	return stat.Mean(times, nil)
}

// ReplicationResult is everything one run produces. It is not modified after Run returns.
type ReplicationResult struct {
	Assignment map[int]TransactionClass `yaml:"assignment"` // class bound to each station
	Records    *ServiceRecords          `yaml:"records"`
	Arrivals   map[int]int              `yaml:"arrivals"`  // customers spawned per station
	Abandoned  map[int]int              `yaml:"abandoned"` // waiting or in service at the horizon
	EndTime    float64                  `yaml:"end_time"`
}

// StationIDs returns station identities in ascending order.
func (r *ReplicationResult) StationIDs() []int {
	ids := make([]int, 0, len(r.Assignment))
	for id := 1; id <= len(r.Assignment); id++ {
		ids = append(ids, id)
	}
	return ids
}
