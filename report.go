package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
)

type report struct {
	RunID        string       `yaml:"runId"`
	Started      time.Time    `yaml:"started"`
	Finished     time.Time    `yaml:"finished"`
	Capabilities string       `yaml:"capabilities"`
	Summary      summary      `yaml:"summary"`
	Tests        []testReport `yaml:"tests"`
}

type summary struct {
	Total   int `yaml:"total"`
	Passed  int `yaml:"passed"`
	Failed  int `yaml:"failed"`
	Skipped int `yaml:"skipped"`
}

type testReport struct {
	ID         string            `yaml:"id"`
	Verdict    framework.Verdict `yaml:"verdict"`
	Reason     string            `yaml:"reason,omitempty"`
	Errors     []string          `yaml:"errors,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// newReport lists every test that has a verdict of its own.
func newReport(runID, capabilities string, started time.Time, results framework.Results) report {
	r := report{
		RunID:        runID,
		Started:      started.UTC(),
		Finished:     time.Now().UTC(),
		Capabilities: capabilities,
		Summary: summary{
			Total:   results.Total(),
			Passed:  results.Passed(),
			Failed:  len(results.Failures),
			Skipped: len(results.Skipped),
		},
	}
	for _, t := range results.Tests {
		if !t.Counted() {
			continue
		}
		tr := testReport{
			ID:         t.TestID.String(),
			Verdict:    t.Verdict(),
			Reason:     t.SkipReason,
			Attributes: t.Attributes,
		}
		for _, e := range t.Errors {
			tr.Errors = append(tr.Errors, e.Error())
		}
		r.Tests = append(r.Tests, tr)
	}
	return r
}

func writeReport(path string, r report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create report file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return enc.Close()
}
