// Package block partitions a certificate's derived constraints into
// contiguous ranges and writes each range to its own self-contained
// SMT-LIB file, per spec.md §4.H. In single-file (non-parallel) mode it
// instead writes the whole certificate to one file.
package block

import (
	"bufio"
	"fmt"
	"os"

	"github.com/vipr-check/vipr-smt/pkg/certificate"
	"github.com/vipr-check/vipr-smt/pkg/smt"
)

// DefaultSize returns spec.md §4.H's default block size, max(1, D/384).
func DefaultSize(numDerived uint) int {
	size := int(numDerived) / 384
	if size < 1 {
		size = 1
	}

	return size
}

// ResolveSize returns requested if positive, else DefaultSize(numDerived) —
// spec.md §8's "block_size = 0 derives the default" boundary behavior.
func ResolveSize(requested int, numDerived uint) int {
	if requested > 0 {
		return requested
	}

	return DefaultSize(numDerived)
}

// Range is a half-open [Start, End) slice into a certificate's derivation
// list.
type Range struct {
	Start, End int
}

// Ranges partitions [0, numDerived) into contiguous blocks of size
// blockSize, the last one possibly shorter.
func Ranges(numDerived uint, blockSize int) []Range {
	if numDerived == 0 {
		return nil
	}

	var ranges []Range

	for start := 0; start < int(numDerived); start += blockSize {
		end := start + blockSize
		if end > int(numDerived) {
			end = int(numDerived)
		}

		ranges = append(ranges, Range{Start: start, End: end})
	}

	return ranges
}

// fileName renders the 1-based block filename spec.md §4.H specifies:
// "<out>.DER-<start>-<end>".
func fileName(out string, r Range) string {
	return fmt.Sprintf("%s.DER-%d-%d", out, r.Start+1, r.End)
}

// writeFile opens path, runs write against a buffered writer, and closes
// it — the shared "open, write, close" shape every file in this package
// follows.
func writeFile(path string, write func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("block: create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)

	werr := write(bw)
	if werr == nil {
		werr = bw.Flush()
	}

	if cerr := f.Close(); werr == nil {
		werr = cerr
	}

	if werr != nil {
		return fmt.Errorf("block: write %s: %w", path, werr)
	}

	return nil
}

// WriteBlocks writes one file per derivation range plus the SOL block and
// the terminal solution-check block, all under the out prefix, and
// returns every written filename in the order they should be dispatched
// — the parallel configuration of spec.md §4.H.
func WriteBlocks(cert *certificate.Certificate, out string, blockSize int) ([]string, error) {
	var files []string

	for _, r := range Ranges(cert.NumDerived(), blockSize) {
		path := fileName(out, r)

		if err := writeFile(path, func(w *bufio.Writer) error {
			return smt.WriteDerivationRange(w, cert, r.Start, r.End)
		}); err != nil {
			return nil, err
		}

		files = append(files, path)
	}

	solPath := out + ".SOL"
	if err := writeFile(solPath, func(w *bufio.Writer) error {
		return smt.WriteSolutionFile(w, cert)
	}); err != nil {
		return nil, err
	}

	files = append(files, solPath)

	checkPath := out + ".DER-solcheck"
	if err := writeFile(checkPath, func(w *bufio.Writer) error {
		return smt.WriteSolutionCheckFile(w, cert)
	}); err != nil {
		return nil, err
	}

	files = append(files, checkPath)

	return files, nil
}

// WriteSingle writes the entire certificate to one file at out — spec.md
// §4.H's non-parallel configuration — and returns that single filename.
func WriteSingle(cert *certificate.Certificate, out string) (string, error) {
	if err := writeFile(out, func(w *bufio.Writer) error {
		return smt.WriteSingleFile(w, cert)
	}); err != nil {
		return "", err
	}

	return out, nil
}
