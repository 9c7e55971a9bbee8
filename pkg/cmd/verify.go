package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vipr-check/vipr-smt/pkg/block"
	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/deps"
	"github.com/vipr-check/vipr-smt/pkg/dispatch"
	"github.com/vipr-check/vipr-smt/pkg/parse"
	"github.com/vipr-check/vipr-smt/pkg/util"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <in> <out> <sat|unsat> [block_size]",
	Short: "Parse a VIPR certificate, emit its SMT-LIB encoding, and check the verdict.",
	Args:  cobra.RangeArgs(3, 4),
	Run:   runVerify,
}

func init() {
	verifyCmd.Flags().String("runner", "", "path to the external solver runner executable (default: $VIPR_SMT_RUNNER or \"solver\")")
	verifyCmd.Flags().StringSlice("slots", nil, "worker slot machine identifiers (default: three local slots)")
	verifyCmd.Flags().Bool("single", false, "write the entire emission to one file instead of partitioning into blocks")
}

func runVerify(cmd *cobra.Command, args []string) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	in, out, verdictTag := args[0], args[1], args[2]

	expectedSat, err := parseVerdictTag(verdictTag)
	if err != nil {
		abort(err)
	}

	requestedBlockSize := 0
	if len(args) == 4 {
		requestedBlockSize, err = strconv.Atoi(args[3])
		if err != nil {
			abort(fmt.Errorf("bad block_size %q: %w", args[3], err))
		}
	}

	runner := getString(cmd, "runner")
	if runner == "" {
		runner = defaultRunner()
	}

	slots := getStringSlice(cmd, "slots")
	if len(slots) == 0 {
		slots = dispatch.DefaultSlots()
	}

	single := getFlag(cmd, "single")

	total := util.NewPerfStats()

	cert, tParse := mustParse(in)
	tPrecompute := mustPrecompute(cert)

	files, blockSize, tGenerate := mustGenerate(cert, out, requestedBlockSize, single)

	log.Debugf("dispatching %d file(s) to %d slot(s) via %s", len(files), len(slots), runner)

	ok, err := dispatch.RunVerdict(runner, slots, files, expectedSat)
	if err != nil {
		abort(fmt.Errorf("dispatch: %w", err))
	}

	fmt.Fprintln(os.Stderr, resultsLine(in, ok, blockSize, tParse, tPrecompute, tGenerate, total.Elapsed(), cert.Summary()))

	if !ok {
		os.Exit(1)
	}
}

func defaultRunner() string {
	if r := os.Getenv("VIPR_SMT_RUNNER"); r != "" {
		return r
	}

	return "solver"
}

// parseVerdictTag accepts exactly the two tags spec.md §6 names.
func parseVerdictTag(tag string) (bool, error) {
	switch tag {
	case "sat":
		return true, nil
	case "unsat":
		return false, nil
	default:
		return false, fmt.Errorf("expected \"sat\" or \"unsat\", got %q", tag)
	}
}

func mustParse(in string) (*certificate.Certificate, time.Duration) {
	f, err := os.Open(in)
	if err != nil {
		abort(fmt.Errorf("open %s: %w", in, err))
	}
	defer f.Close()

	stats := util.NewPerfStats()

	cert, err := parse.NewParser(f).Parse()
	if err != nil {
		abort(fmt.Errorf("parse %s: %w", in, err))
	}

	return cert, stats.Elapsed()
}

func mustPrecompute(cert *certificate.Certificate) time.Duration {
	stats := util.NewPerfStats()

	if err := deps.Build(cert); err != nil {
		abort(fmt.Errorf("precompute: %w", err))
	}

	return stats.Elapsed()
}

func mustGenerate(cert *certificate.Certificate, out string, requestedBlockSize int, single bool) ([]string, int, time.Duration) {
	stats := util.NewPerfStats()

	if single {
		path, err := block.WriteSingle(cert, out)
		if err != nil {
			abort(fmt.Errorf("generate: %w", err))
		}

		return []string{path}, requestedBlockSize, stats.Elapsed()
	}

	resolved := block.ResolveSize(requestedBlockSize, cert.NumDerived())

	files, err := block.WriteBlocks(cert, out, resolved)
	if err != nil {
		abort(fmt.Errorf("generate: %w", err))
	}

	return files, resolved, stats.Elapsed()
}

// resultsLine renders spec.md §6's exact diagnostics format:
// Results: <in>|<OK|ERR>|<block_size>|<t_parse>|<t_precompute>|<t_generate>|<t_total>|<n_vars>|<n_prob>|<n_deriv>|<n_sol>|<feasible?0|1>|<lb=-inf?>|<ub=+inf?>
func resultsLine(in string, ok bool, blockSize int, tParse, tPrecompute, tGenerate, tTotal time.Duration, s certificate.Summary) string {
	status := "OK"
	if !ok {
		status = "ERR"
	}

	return fmt.Sprintf("Results: %s|%s|%d|%.6f|%.6f|%.6f|%.6f|%d|%d|%d|%d|%s|%s|%s",
		in, status, blockSize,
		tParse.Seconds(), tPrecompute.Seconds(), tGenerate.Seconds(), tTotal.Seconds(),
		s.NumVariables, s.NumProblem, s.NumDerived, s.NumSolutions,
		boolFlag(s.Feasible), boolFlag(s.LowerIsNegInf), boolFlag(s.UpperIsPosInf))
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}

	return "0"
}

func abort(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
