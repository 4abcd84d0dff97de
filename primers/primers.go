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

// package primers pairs up the left and right primers of a primer scheme by
// their amplicon identifier.

package primers

import (
	"fmt"
	"strings"

	"github.com/wtsi-hgi/primers-to-amplicons/bed"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrEmptyMarker = Error("left and right markers must not be empty")

	DefaultLeft  = "_LEFT"
	DefaultRight = "_RIGHT"

	colRef      = 0
	colStart    = 1
	colEnd      = 2
	colPrimerID = 3
	minColumns  = colPrimerID + 1

	reasonUnknownMarker = "primer id has neither left nor right marker"
	reasonTooFewColumns = "too few columns"
)

// Options control how primer ids are interpreted.
type Options struct {
	// Left and Right are the substrings in a primer id that mark it as a left
	// or right primer. Default to DefaultLeft and DefaultRight.
	Left  string
	Right string

	// Anchored makes the markers only match at the end of a primer id.
	// Otherwise they match anywhere in it.
	Anchored bool
}

// DefaultOptions returns Options with the default markers and substring
// matching.
func DefaultOptions() Options {
	return Options{Left: DefaultLeft, Right: DefaultRight}
}

// Warning describes an input record or pair that was skipped.
type Warning struct {
	Line     int
	PrimerID string
	Reason   string
}

func (w Warning) String() string {
	if w.Line == 0 {
		return fmt.Sprintf("skipped %s: %s", w.PrimerID, w.Reason)
	}

	return fmt.Sprintf("skipped line %d (%s): %s", w.Line, w.PrimerID, w.Reason)
}

// Pair holds the coordinates of the left and right primers of one amplicon.
// Coordinates are only meaningful if the corresponding Has* is true.
type Pair struct {
	ID         string
	Ref        string
	LeftStart  int
	LeftEnd    int
	RightStart int
	RightEnd   int
	HasLeft    bool
	HasRight   bool
}

// Complete returns true if both the left and right primer have been seen.
func (p *Pair) Complete() bool {
	return p.HasLeft && p.HasRight
}

// Pairs is a map of amplicon identifier to Pair that remembers the order
// identifiers were first seen in.
type Pairs struct {
	pairs []*Pair
	index map[string]*Pair
}

func newPairs() *Pairs {
	return &Pairs{index: make(map[string]*Pair)}
}

// getOrAdd returns the Pair with the given id, appending a new one if
// necessary.
func (ps *Pairs) getOrAdd(id, ref string) *Pair {
	if p, found := ps.index[id]; found {
		return p
	}

	p := &Pair{ID: id, Ref: ref}
	ps.pairs = append(ps.pairs, p)
	ps.index[id] = p

	return p
}

// Get returns the Pair with the given amplicon identifier.
func (ps *Pairs) Get(id string) (*Pair, bool) {
	p, found := ps.index[id]

	return p, found
}

// Len returns the number of amplicon identifiers seen.
func (ps *Pairs) Len() int {
	return len(ps.pairs)
}

// IDs returns the amplicon identifiers in first-seen order.
func (ps *Pairs) IDs() []string {
	ids := make([]string, len(ps.pairs))

	for i, p := range ps.pairs {
		ids[i] = p.ID
	}

	return ids
}

// All returns the Pairs in first-seen order.
func (ps *Pairs) All() []*Pair {
	return ps.pairs
}

// NewPairs groups the given records by amplicon identifier, which is the primer
// id (4th column) with the left and right markers removed. Left primers set
// LeftStart and LeftEnd from the 2nd and 3rd columns; right primers set
// RightStart and RightEnd. A repeated primer overwrites the earlier one.
//
// Records without a recognised marker, or with fewer than 4 columns, are
// skipped and described in the returned warnings; they never create a Pair.
// Non-integer coordinates are an error.
func NewPairs(records []bed.Record, opts Options) (*Pairs, []Warning, error) {
	if opts.Left == "" || opts.Right == "" {
		return nil, nil, ErrEmptyMarker
	}

	m := newMatcher(opts)
	pairs := newPairs()

	var warnings []Warning

	for _, rec := range records {
		if len(rec.Fields) < minColumns {
			warnings = append(warnings, Warning{Line: rec.Line, PrimerID: rec.Field(colPrimerID),
				Reason: reasonTooFewColumns})

			continue
		}

		primerID := rec.Fields[colPrimerID]

		switch {
		case m.isLeft(primerID):
			coords, err := rec.Ints(colStart, colEnd)
			if err != nil {
				return nil, nil, err
			}

			p := pairs.getOrAdd(m.amplicon(primerID), rec.Fields[colRef])
			p.LeftStart, p.LeftEnd, p.HasLeft = coords[0], coords[1], true
		case m.isRight(primerID):
			coords, err := rec.Ints(colStart, colEnd)
			if err != nil {
				return nil, nil, err
			}

			p := pairs.getOrAdd(m.amplicon(primerID), rec.Fields[colRef])
			p.RightStart, p.RightEnd, p.HasRight = coords[0], coords[1], true
		default:
			warnings = append(warnings, Warning{Line: rec.Line, PrimerID: primerID, Reason: reasonUnknownMarker})
		}
	}

	return pairs, warnings, nil
}

// matcher recognises and strips the left and right markers in primer ids.
type matcher struct {
	left     string
	right    string
	anchored bool
	replacer *strings.Replacer
}

func newMatcher(opts Options) *matcher {
	return &matcher{
		left:     opts.Left,
		right:    opts.Right,
		anchored: opts.Anchored,
		replacer: strings.NewReplacer(opts.Left, "", opts.Right, ""),
	}
}

func (m *matcher) isLeft(primerID string) bool {
	return m.has(primerID, m.left)
}

func (m *matcher) has(primerID, marker string) bool {
	if m.anchored {
		return strings.HasSuffix(primerID, marker)
	}

	return strings.Contains(primerID, marker)
}

func (m *matcher) isRight(primerID string) bool {
	return m.has(primerID, m.right)
}

// amplicon returns the amplicon identifier for the given primer id.
func (m *matcher) amplicon(primerID string) string {
	if !m.anchored {
		return m.replacer.Replace(primerID)
	}

	if id, found := strings.CutSuffix(primerID, m.left); found {
		return id
	}

	return strings.TrimSuffix(primerID, m.right)
}
