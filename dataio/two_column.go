// Package dataio reads and writes two-column numeric text records such as
// time/value or frequency/amplitude traces.
package dataio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-scope/logging"
)

// DefaultSeparator separates the two columns unless WithSeparator is given
const DefaultSeparator = ','

// TwoColumn is a parsed record. XName and YName hold the header
// descriptions when the record has a header.
type TwoColumn struct {
	XName string
	YName string
	X     []float64
	Y     []float64
}

// Len returns the number of rows
func (tc *TwoColumn) Len() int { return len(tc.X) }

type options struct {
	separator rune
	header    bool
}

// Option configures reading and writing
type Option func(*options)

// WithSeparator sets the column separator
func WithSeparator(sep rune) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithHeader controls whether the first non-blank line holds the two column
// descriptions. Headers are expected by default.
func WithHeader(header bool) Option {
	return func(o *options) {
		o.header = header
	}
}

func newOptions(opts []Option) options {
	o := options{separator: DefaultSeparator, header: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ReadTwoColumn parses r. Blank lines are skipped, numbers use '.' as the
// decimal point and may carry an exponent. Any row without exactly two
// columns is an error naming its line number.
func ReadTwoColumn(r io.Reader, opts ...Option) (*TwoColumn, error) {
	o := newOptions(opts)
	sep := string(o.separator)

	tc := &TwoColumn{}
	scanner := bufio.NewScanner(r)
	needHeader := o.header
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, sep)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", line, len(fields))
		}

		if needHeader {
			tc.XName = strings.TrimSpace(fields[0])
			tc.YName = strings.TrimSpace(fields[1])
			needHeader = false
			continue
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse first column: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse second column: %w", line, err)
		}
		tc.X = append(tc.X, x)
		tc.Y = append(tc.Y, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read two-column data: %w", err)
	}
	if needHeader {
		return nil, fmt.Errorf("missing header line")
	}

	return tc, nil
}

// LoadTwoColumnFile reads the two-column file at path
func LoadTwoColumnFile(path string, opts ...Option) (*TwoColumn, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	tc, err := ReadTwoColumn(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.Debug("Loaded two-column file", logging.Fields{
		"path":   path,
		"rows":   tc.Len(),
		"x_name": tc.XName,
		"y_name": tc.YName,
	})
	return tc, nil
}

// WriteTwoColumn writes tc in the format ReadTwoColumn accepts. The header
// is written when the header option is on (the default).
func WriteTwoColumn(w io.Writer, tc *TwoColumn, opts ...Option) error {
	if len(tc.X) != len(tc.Y) {
		return fmt.Errorf("length mismatch: %d x values, %d y values", len(tc.X), len(tc.Y))
	}

	o := newOptions(opts)
	bw := bufio.NewWriter(w)
	if o.header {
		fmt.Fprintf(bw, "%s%c%s\n", tc.XName, o.separator, tc.YName)
	}
	for i := range tc.X {
		bw.WriteString(strconv.FormatFloat(tc.X[i], 'g', -1, 64))
		bw.WriteRune(o.separator)
		bw.WriteString(strconv.FormatFloat(tc.Y[i], 'g', -1, 64))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write two-column data: %w", err)
	}
	return nil
}
