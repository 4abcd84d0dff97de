/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Authors:
 *	- Sendu Bala <sb10@sanger.ac.uk>
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be included
 * in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY
 * CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
 * TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 ******************************************************************************/

// package bed reads the tab-delimited lines of a primer scheme file and writes
// BED files of amplicon features.

package bed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotInteger = Error("field is not an integer")

	fieldSep = "\t"

	maxLineLength = 1024 * 1024
	userPerm = 0644
)

// Record is one line of an input file, split on tabs. Line is the 1-based
// line number it came from.
type Record struct {
	Line   int
	Fields []string
}

// Field returns the field in the given column, or an empty string if the
// record doesn't have that many columns.
func (r Record) Field(col int) string {
	if col >= len(r.Fields) {
		return ""
	}

	return r.Fields[col]
}

// Ints converts the fields in the given columns to ints, returning an error
// wrapping ErrNotInteger if any of them are missing or not integers.
func (r Record) Ints(cols ...int) ([]int, error) {
	c := &converter{rec: r}
	ints := make([]int, len(cols))

	for i, col := range cols {
		ints[i] = c.ToInt(col)
	}

	if c.Err != nil {
		return nil, c.Err
	}

	return ints, nil
}

// Parse reads tab-delimited lines from r, returning one Record per non-blank
// line in file order. Lines that are empty or contain only whitespace (spaces
// or tabs) are skipped. Line terminators are stripped; the number of fields is
// not checked. Lines longer than 1 MiB result in bufio.ErrTooLong.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLength)
	ln := 0

	for scanner.Scan() {
		ln++

		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		records = append(records, Record{Line: ln, Fields: strings.Split(line, fieldSep)})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ReadFile parses the file at the given path. See Parse().
func ReadFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return records, nil
}

// Feature is a 6 column BED entry.
type Feature struct {
	Ref    string
	Start  int
	End    int
	Name   string
	Score  string
	Strand string
}

// String returns the tab-separated BED line for this feature, without a
// trailing newline.
func (f Feature) String() string {
	return strings.Join([]string{
		f.Ref,
		strconv.Itoa(f.Start),
		strconv.Itoa(f.End),
		f.Name,
		f.Score,
		f.Strand,
	}, fieldSep)
}

// Write writes the given features to w, one newline-terminated line each, with
// no header.
func Write(w io.Writer, features []Feature) error {
	bw := bufio.NewWriter(w)

	for _, f := range features {
		if _, err := bw.WriteString(f.String() + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile renders all the given features and then writes them to the given
// path in one go, so that a failure part way through rendering never leaves a
// truncated file behind.
func WriteFile(path string, features []Feature) error {
	var sb strings.Builder

	if err := Write(&sb, features); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(sb.String()), userPerm)
}
