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

// package amplicons turns paired primers in to amplicon ranges, and trims those
// ranges so that neighbouring amplicons don't overlap.

package amplicons

import (
	"fmt"
	"strings"

	"github.com/wtsi-hgi/primers-to-amplicons/bed"
	"github.com/wtsi-hgi/primers-to-amplicons/primers"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrIncompletePair  = Error("amplicon is missing its left or right primer")
	ErrTooFewAmplicons = Error("at least 2 amplicons are needed to make unique amplicons")

	DefaultPattern = "nCoV-2019_"
	DefaultOffset  = 30

	strand       = "+"
	minAmplicons = 2

	reasonIncomplete = "amplicon is missing its left or right primer"
)

// Options control how amplicon ranges are made from primer pairs.
type Options struct {
	// Pattern is removed from amplicon identifiers to get amplicon names.
	Pattern string

	// Reference, if set, is used as the reference name of every amplicon
	// instead of the reference of the amplicon's primers.
	Reference string

	// Strict makes incomplete primer pairs an error instead of skipping them.
	Strict bool
}

// DefaultOptions returns Options with the default Pattern.
func DefaultOptions() Options {
	return Options{Pattern: DefaultPattern}
}

// Ranges returns an amplicon range for every complete pair, in the order the
// pairs were first seen. Each range starts at the end of the left primer, ends
// at the start of the right primer, is named after the amplicon identifier with
// opts.Pattern removed, and has the full identifier as its score.
//
// Incomplete pairs are skipped and described in the returned warnings, unless
// opts.Strict is true, in which case they result in ErrIncompletePair.
func Ranges(pairs *primers.Pairs, opts Options) ([]bed.Feature, []primers.Warning, error) {
	ranges := make([]bed.Feature, 0, pairs.Len())

	var warnings []primers.Warning

	for _, p := range pairs.All() {
		if !p.Complete() {
			if opts.Strict {
				return nil, nil, fmt.Errorf("%s: %w", p.ID, ErrIncompletePair)
			}

			warnings = append(warnings, primers.Warning{PrimerID: p.ID, Reason: reasonIncomplete})

			continue
		}

		ranges = append(ranges, bed.Feature{
			Ref:    opts.reference(p),
			Start:  p.LeftEnd,
			End:    p.RightStart,
			Name:   name(p.ID, opts.Pattern),
			Score:  p.ID,
			Strand: strand,
		})
	}

	return ranges, warnings, nil
}

func (o Options) reference(p *primers.Pair) string {
	if o.Reference != "" {
		return o.Reference
	}

	return p.Ref
}

func name(id, pattern string) string {
	if pattern == "" {
		return id
	}

	return strings.ReplaceAll(id, pattern, "")
}

// Unique returns new ranges where each range's start is moved to offset after
// the end of the previous range, and its end is moved to offset before the
// start of the next range. The first range keeps its start and the last keeps
// its end. Neighbours are always read from the given ranges, which are not
// altered.
//
// Results are not clamped, so may be negative or have start after end.
// Returns ErrTooFewAmplicons if there are fewer than 2 ranges.
func Unique(ranges []bed.Feature, offset int) ([]bed.Feature, error) {
	n := len(ranges)
	if n < minAmplicons {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewAmplicons, n)
	}

	unique := make([]bed.Feature, n)

	for i, r := range ranges {
		if i > 0 {
			r.Start = ranges[i-1].End + offset
		}

		if i < n-1 {
			r.End = ranges[i+1].Start - offset
		}

		unique[i] = r
	}

	return unique, nil
}

// Result holds the output of Convert().
type Result struct {
	Ranges   []bed.Feature
	Unique   []bed.Feature
	Warnings []primers.Warning
}

// Convert reads the primer scheme file at the given path, pairs its primers,
// makes amplicon ranges from them, and then makes those ranges unique using
// the given offset.
func Convert(path string, popts primers.Options, aopts Options, offset int) (*Result, error) {
	records, err := bed.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pairs, pairWarnings, err := primers.NewPairs(records, popts)
	if err != nil {
		return nil, err
	}

	ranges, rangeWarnings, err := Ranges(pairs, aopts)
	if err != nil {
		return nil, err
	}

	unique, err := Unique(ranges, offset)
	if err != nil {
		return nil, err
	}

	return &Result{
		Ranges:   ranges,
		Unique:   unique,
		Warnings: append(pairWarnings, rangeWarnings...),
	}, nil
}
