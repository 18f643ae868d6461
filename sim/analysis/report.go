package analysis

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/juanmaya19/problema-bancario/sim"
)

// Print writes the human-readable report.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Teller Simulation Report ===")
	fmt.Fprintf(w, "Replications : %d\n", r.Replications)
	fmt.Fprintf(w, "Tellers      : %d\n", r.NumStations)

	fmt.Fprintln(w, "\n1. Mean completion time per teller:")
	for id := 1; id <= r.NumStations; id++ {
		fmt.Fprintf(w, "%s: %.2f minutes\n", tellerName(id), r.MeanCompletionTime[id])
	}
	fmt.Fprintf(w, "Teller with the lowest mean: %s\n", tellerName(r.FastestStation))
	fmt.Fprintf(w, "Teller with the highest mean: %s\n", tellerName(r.SlowestStation))

	fmt.Fprintln(w, "\n2. Customers served per teller, by type:")
	for _, class := range sim.AllClasses {
		for _, kind := range sim.AllKinds {
			s := r.KindCounts[class][kind]
			fmt.Fprintf(w, "%s %s: mean = %.2f, std dev = %.2f\n", title(class), kind, s.Mean, s.StdDev)
		}
	}

	fmt.Fprintln(w, "\n3. Customers served in each replication, by type:")
	for i, totals := range r.Totals {
		fmt.Fprintf(w, "Replication %d:\n", i+1)
		for _, class := range sim.AllClasses {
			for _, kind := range sim.AllKinds {
				fmt.Fprintf(w, "  %s %s: %d\n", title(class), kind, totals[class][kind])
			}
		}
	}

	fmt.Fprintf(w, "\nReplication with the fewest customers served (replication %d):\n", r.LeastServed+1)
	for id := 1; id <= r.NumStations; id++ {
		fmt.Fprintf(w, "%s:\n", tellerName(id))
		for _, class := range sim.AllClasses {
			for _, kind := range sim.AllKinds {
				fmt.Fprintf(w, "  %s %s: %d\n", title(class), kind, r.LeastServedRecords[id][class][kind])
			}
		}
	}

	fmt.Fprintln(w, "\n4. Is another teller needed?")
	if r.NeedsExtraTeller {
		fmt.Fprintf(w, "Yes: at least one teller's mean exceeds %.1f minutes.\n", r.MaxAcceptableMinutes)
	} else {
		fmt.Fprintf(w, "No: every teller's mean is within %.1f minutes.\n", r.MaxAcceptableMinutes)
	}

	fmt.Fprintln(w, "\n5. Teller split between withdrawals and payments:")
	fmt.Fprintf(w, "Assign %d tellers to withdrawals and %d tellers to payments.\n", r.WithdrawalTellers, r.PaymentTellers)
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func tellerName(id int) string {
	return fmt.Sprintf("Teller_%d", id)
}

func title(class sim.TransactionClass) string {
	s := string(class)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
