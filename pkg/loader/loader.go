// Package loader reads whitespace-delimited design listings into a Library.
//
// The expected file format is UTF-8 text with a header line (discarded
// unconditionally, never validated) followed by one row per design block:
//
//	name  lower_left_x  lower_left_y  upper_right_x  upper_right_y  poly_count  checksum
//
// Coordinates are micrometers. The checksum column is carried through as an
// opaque string.
package loader

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/densitool/pkg/design"
	"github.com/matzehuels/densitool/pkg/errors"
)

// columnCount is the fixed number of whitespace-separated tokens per row.
const columnCount = 7

// maxLineBytes bounds a single listing row. Generated listings occasionally
// carry very long hierarchical names.
const maxLineBytes = 1024 * 1024

// Policy controls how rows with the wrong column count are handled.
type Policy int

const (
	// PolicySkip silently drops rows that do not have exactly columnCount
	// tokens. This is the permissive behavior of a best-effort ingestion
	// tool: truncated or padded rows vanish without failing the load.
	PolicySkip Policy = iota

	// PolicyStrict fails the load on the first row with the wrong column
	// count, reporting its line number.
	PolicyStrict
)

// String returns the policy name as used in cache keys and diagnostics.
func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

// Options configures a load.
type Options struct {
	// Policy selects skip-vs-fail handling of rows with the wrong column
	// count. The zero value is PolicySkip.
	Policy Policy

	// Logger receives debug diagnostics, e.g. for skipped rows. May be nil.
	// Skipped rows are never an error and never reach stdout; this hook is
	// the only trace they leave.
	Logger func(msg string, args ...any)
}

func (o Options) logf(msg string, args ...any) {
	if o.Logger != nil {
		o.Logger(msg, args...)
	}
}

// LoadFile opens path and loads it with Load. The file handle is released
// on all paths.
func LoadFile(path string, opts Options) (*design.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Load(f, opts)
}

// Load parses a design listing from r. The first line is a header and is
// discarded without inspection; every following line is split on whitespace
// and handled per Options.Policy.
//
// A non-numeric token in a numeric column fails the whole load with a
// descriptive error, under either policy. Column-count mismatches are the
// expected noise in these listings; a coordinate that does not parse means
// the column layout itself is off, and silently dropping such rows would
// hide a corrupt file.
func Load(r io.Reader, opts Options) (*design.Library, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lib := design.NewLibrary()

	// Header line. Empty input yields an empty library.
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return lib, nil
	}

	line := 1
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) != columnCount {
			if opts.Policy == PolicyStrict {
				return nil, errors.New(errors.ErrCodeMalformedRow,
					"line %d: got %d columns, want %d", line, len(fields), columnCount)
			}
			opts.logf("skipping malformed row at line %d (%d columns)", line, len(fields))
			continue
		}
		d, err := parseRow(fields, line)
		if err != nil {
			return nil, err
		}
		lib.Add(d)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lib, nil
}

// coordColumns names the numeric geometry columns, in row order, for error
// messages.
var coordColumns = [4]string{"lx", "ly", "ux", "uy"}

func parseRow(fields []string, line int) (design.Design, error) {
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return design.Design{}, errors.New(errors.ErrCodeParse,
				"line %d: column %s: invalid coordinate %q", line, coordColumns[i], fields[i+1])
		}
		coords[i] = v
	}
	polys, err := strconv.Atoi(fields[5])
	if err != nil {
		return design.Design{}, errors.New(errors.ErrCodeParse,
			"line %d: column poly_count: invalid count %q", line, fields[5])
	}
	return design.New(fields[0], coords[0], coords[1], coords[2], coords[3], polys, fields[6]), nil
}
