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

package bed

import (
	"fmt"
	"strconv"
)

// converter converts Record fields to ints. The conversions do not return
// errors, but instead set the error field. Check that field after doing all
// your conversions.
type converter struct {
	rec Record
	Err error
}

// ToInt converts the field in the given column to an int. If the column is
// missing or the conversion fails, the error field is set and 0 is returned.
//
// If the error field is already set, this function does nothing and returns 0.
func (c *converter) ToInt(col int) int {
	if c.Err != nil {
		return 0
	}

	if col >= len(c.rec.Fields) {
		c.Err = fmt.Errorf("line %d: %w: column %d missing", c.rec.Line, ErrNotInteger, col+1)

		return 0
	}

	i, err := strconv.Atoi(c.rec.Fields[col])
	if err != nil {
		c.Err = fmt.Errorf("line %d: %w: column %d is %q", c.rec.Line, ErrNotInteger, col+1, c.rec.Fields[col])

		return 0
	}

	return i
}
