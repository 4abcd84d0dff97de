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

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/primers-to-amplicons/amplicons"
	"github.com/wtsi-hgi/primers-to-amplicons/config"
)

func TestRoot(t *testing.T) {
	schemePath, err := filepath.Abs(filepath.Join("..", "amplicons", "testdata", "scheme.bed"))
	if err != nil {
		t.Fatal(err)
	}

	Convey("Given a default config", t, func() {
		c := config.Default()
		c.Output = filepath.Join(t.TempDir(), "unique.bed")

		Convey("Flags the user set override it", func() {
			err := RootCmd.ParseFlags([]string{"--offset", "10", "--pattern", "x", "--reference", "ref"})
			So(err, ShouldBeNil)

			applyFlags(RootCmd, c)
			So(c.Offset, ShouldEqual, 10)
			So(c.Pattern, ShouldEqual, "x")
			So(c.Reference, ShouldEqual, "ref")
			So(c.Left, ShouldEqual, "_LEFT")
			So(c.Output, ShouldEndWith, "unique.bed")
		})

		Convey("convert writes the unique amplicons of a scheme", func() {
			n, err := convert(schemePath, c)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 5)

			data, err := os.ReadFile(c.Output)
			So(err, ShouldBeNil)
			So(string(data), ShouldStartWith, "MN908947.3\t54\t312\t1\tnCoV-2019_1\t+\n")
		})

		Convey("convert requires a primer scheme", func() {
			_, err := convert("", c)
			So(err, ShouldEqual, ErrNoPrimers)
		})

		Convey("convert writes nothing if it fails", func() {
			strict = true
			defer func() { strict = false }()

			_, err := convert(schemePath, c)
			So(errors.Is(err, amplicons.ErrIncompletePair), ShouldBeTrue)

			_, err = os.Stat(c.Output)
			So(os.IsNotExist(err), ShouldBeTrue)
		})
	})
}
