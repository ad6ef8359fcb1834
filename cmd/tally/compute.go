package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tydonelson/ranked-choice/api/models"
	"github.com/tydonelson/ranked-choice/irv"
)

// pollExport is a poll with its ballots, in the API's response shapes.
type pollExport struct {
	Poll    models.PollResponse   `json:"poll"`
	Ballots []models.VoteResponse `json:"ballots"`
}

func newComputeCmd() *cobra.Command {
	var file, format string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Tabulate a poll export file",
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := readExport(file)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), computeExport(export), format)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a poll export (JSON)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json or table")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readExport(path string) (*pollExport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	var export pollExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("failed to parse export %s: %w", path, err)
	}
	if export.Poll.ID == "" {
		return nil, fmt.Errorf("export %s has no poll id", path)
	}
	return &export, nil
}

func computeExport(export *pollExport) *irv.PollResults {
	ballots := make([]irv.Ballot, 0, len(export.Ballots))
	for _, v := range export.Ballots {
		ballots = append(ballots, irv.Ballot{ID: v.ID, Rankings: v.Rankings, VotedAt: v.VotedAt})
	}

	poll := irv.Poll{ID: export.Poll.ID, Candidates: export.Poll.Candidates}
	return irv.ComputeResults(poll, ballots)
}
