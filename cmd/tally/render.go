package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/tydonelson/ranked-choice/irv"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func render(w io.Writer, results *irv.PollResults, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case formatTable:
		return renderTable(w, results)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatJSON, formatTable)
	}
}

// renderTable prints one line per round. Exhausted is derived from the
// counts so fetched results render the same as computed ones.
func renderTable(w io.Writer, results *irv.PollResults) error {
	fmt.Fprintf(w, "Poll %s: %d ballots\n", results.PollID, results.TotalVotes)
	if len(results.Rounds) == 0 {
		fmt.Fprintln(w, "No rounds.")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(results.Rounds) > 0 {
		fmt.Fprintln(tw, "ROUND\tVOTES\tEXHAUSTED\tELIMINATED")
	}
	for _, r := range results.Rounds {
		eliminated := r.Eliminated
		if eliminated == "" {
			eliminated = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", r.RoundNumber, formatVotes(r.Votes), results.TotalVotes-r.Countable(), eliminated)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if results.HasWinner() {
		_, err := fmt.Fprintf(w, "Winner: %s\n", results.Winner)
		return err
	}
	_, err := fmt.Fprintln(w, "No winner.")
	return err
}

func formatVotes(votes map[string]int) string {
	names := make([]string, 0, len(votes))
	for name := range votes {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, votes[name])
	}
	return strings.Join(parts, " ")
}
