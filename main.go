package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ogccite/csw-dgiwg-contract-tests/capabilities"
	"github.com/ogccite/csw-dgiwg-contract-tests/client"
	"github.com/ogccite/csw-dgiwg-contract-tests/cswtests"
	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
	"github.com/ogccite/csw-dgiwg-contract-tests/logging"
	"github.com/ogccite/csw-dgiwg-contract-tests/sampler"
	"github.com/ogccite/csw-dgiwg-contract-tests/schemas"
	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
	"github.com/ogccite/csw-dgiwg-contract-tests/validation"
)

// runIDHeader carries the run identifier of the report on every request, so that
// catalogue logs can be matched to a run.
const runIDHeader = "X-Test-Run-ID"

// errTestsFailed makes the command exit with a non-zero status without printing
// anything more.
var errTestsFailed = errors.New("some tests failed")

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csw-contract-tests",
		Short: "DGIWG Basic CSW GetRecords conformance tests",
		Long: `csw-contract-tests checks a CSW 2.0.2 catalogue against the GetRecords
requirements of the DGIWG Basic CSW profile.

It reads the capabilities document of the catalogue, samples a few records, and
submits filtered GetRecords requests for the Dublin Core and ISO 19139 output
schemas, validating each response.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newConfig(cmd.Flags())
			if err != nil {
				return err
			}
			params, err := readParams(v, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), params, out)
		},
	}
	addFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, params commandParams, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(os.Stderr, params.verbose)
	started := time.Now()
	runID := uuid.NewString()

	cswClient := client.NewCSWClient(params.timeout, logger, client.WithHeader(runIDHeader, runID))

	capsData, capsSource, err := loadCapabilities(ctx, params, cswClient, out)
	if err != nil {
		return err
	}
	caps, err := capabilities.Parse(capsData)
	if err != nil {
		return fmt.Errorf("invalid capabilities document from %s: %w", capsSource, err)
	}
	logger.Debug("capabilities parsed", "operations", caps.Operations())

	schemaDir := params.schemaDir
	if schemaDir == "" {
		dir, err := os.MkdirTemp("", "csw-schemas-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		if err := schemas.Extract(dir); err != nil {
			return fmt.Errorf("cannot extract bundled schemas: %w", err)
		}
		schemaDir = dir
	}
	validators, closeValidators := compileValidators(schemaDir, logger)
	defer closeValidators()

	env := cswtests.Environment{
		Context:      ctx,
		Capabilities: caps,
		Records: sampler.New(cswClient, samplingEndpoint(caps),
			sampler.WithSampleSize(params.sampleSize.OrElse(sampler.DefaultSampleSize)),
			sampler.WithLogger(logger)),
		Transport:  cswClient,
		Validators: validators,
	}

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters, cswtests.MissingFeatures(caps))

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := cswtests.RunTestSuite(env, params.filters.AsFilter, testLogger)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)

	if params.reportFile != "" {
		if err := writeReport(params.reportFile, newReport(runID, capsSource, started, results)); err != nil {
			return err
		}
		logger.Info("report written", "file", params.reportFile)
	}
	if !results.OK() {
		return errTestsFailed
	}
	return nil
}

func loadCapabilities(ctx context.Context, params commandParams, c *client.CSWClient, out io.Writer) ([]byte, string, error) {
	if params.capabilitiesFile != "" {
		data, err := os.ReadFile(params.capabilitiesFile)
		if err != nil {
			return nil, "", fmt.Errorf("cannot read capabilities document: %w", err)
		}
		return data, params.capabilitiesFile, nil
	}
	data, err := c.FetchCapabilities(ctx, params.capabilitiesURL, params.startupWait, out)
	if err != nil {
		return nil, "", fmt.Errorf("catalogue service error: %w", err)
	}
	return data, params.capabilitiesURL, nil
}

// compileValidators builds the Dublin Core and ISO 19139 validators. A validator
// that cannot be compiled is left nil, which fails the tests that need it.
func compileValidators(dir string, logger *slog.Logger) (cswtests.Validators, func()) {
	var validators cswtests.Validators
	var compiled []*validation.SchemaValidator
	closeAll := func() {
		for _, v := range compiled {
			v.Close()
		}
	}

	catalog, err := validation.NewCatalog(dir)
	if err != nil {
		logger.Warn("schemas are not available, responses cannot be validated", "dir", dir, "error", err)
		return validators, closeAll
	}

	if v, err := validation.Compile(catalog, servicedef.NamespaceCSW); err != nil {
		logger.Warn("cannot compile CSW schema", "error", err)
	} else {
		validators.CSW = v
		compiled = append(compiled, v)
	}
	if v, err := validation.Compile(catalog,
		servicedef.NamespaceGMD, servicedef.NamespaceSRV, servicedef.NamespaceCSW); err != nil {
		logger.Warn("cannot compile ISO 19139 schemas", "error", err)
	} else {
		validators.ISO = v
		compiled = append(compiled, v)
	}
	return validators, closeAll
}

// samplingEndpoint returns the POST binding of GetRecords, or "" if there is none.
func samplingEndpoint(caps *capabilities.Index) string {
	uri, _ := caps.EndpointFor(servicedef.OperationGetRecords, servicedef.POST)
	return uri
}
