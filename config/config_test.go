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

package config

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/primers-to-amplicons/amplicons"
	"github.com/wtsi-hgi/primers-to-amplicons/primers"
)

const filePerm = 0644

func TestConfig(t *testing.T) {
	Convey("With no env vars set, you get the default config", t, func() {
		for _, envVar := range []string{EnvVarOffset, EnvVarOutput, EnvVarPattern,
			EnvVarLeft, EnvVarRight, EnvVarReference} {
			t.Setenv(envVar, "")
		}

		config, err := FromEnv(t.TempDir())
		So(err, ShouldBeNil)
		So(config, ShouldResemble, &Config{
			Offset:  30,
			Output:  "out.bed",
			Pattern: "nCoV-2019_",
			Left:    "_LEFT",
			Right:   "_RIGHT",
		})
		So(config.PrimerOptions(), ShouldResemble, primers.DefaultOptions())
		So(config.AmpliconOptions(), ShouldResemble, amplicons.DefaultOptions())

		Convey("Given a full set of env vars, you can make a config", func() {
			t.Setenv(EnvVarOffset, "25")
			t.Setenv(EnvVarOutput, "amplicons.bed")
			t.Setenv(EnvVarPattern, "SARS-CoV-2_")
			t.Setenv(EnvVarLeft, "_L")
			t.Setenv(EnvVarRight, "_R")
			t.Setenv(EnvVarReference, "MN908947.3")

			config, err := FromEnv()
			So(err, ShouldBeNil)
			So(config.Offset, ShouldEqual, 25)
			So(config.Output, ShouldEqual, "amplicons.bed")
			So(config.Pattern, ShouldEqual, "SARS-CoV-2_")
			So(config.Left, ShouldEqual, "_L")
			So(config.Right, ShouldEqual, "_R")
			So(config.Reference, ShouldEqual, "MN908947.3")
			So(config.PrimerOptions(), ShouldResemble, primers.Options{Left: "_L", Right: "_R"})
			So(config.AmpliconOptions(), ShouldResemble,
				amplicons.Options{Pattern: "SARS-CoV-2_", Reference: "MN908947.3"})
		})

		Convey("A non-integer offset is an error", func() {
			t.Setenv(EnvVarOffset, "thirty")

			config, err := FromEnv()
			So(err, ShouldEqual, ErrBadOffset)
			So(config, ShouldBeNil)
		})

		Convey("You can load values from an .env file", func() {
			os.Unsetenv(EnvVarOffset)
			os.Unsetenv(EnvVarPattern)

			dir := t.TempDir()
			origWD, errWD := os.Getwd()
			So(errWD, ShouldBeNil)
			So(os.Chdir(dir), ShouldBeNil)
			t.Cleanup(func() { os.Chdir(origWD) }) //nolint:errcheck

			err = os.WriteFile(".env",
				[]byte(EnvVarOffset+"=40\n"+EnvVarPattern+"=filepattern_"), filePerm)
			So(err, ShouldBeNil)

			config, err = FromEnv()
			So(err, ShouldBeNil)
			So(config.Offset, ShouldEqual, 40)
			So(config.Pattern, ShouldEqual, "filepattern_")
			So(config.Output, ShouldEqual, DefaultOutput)

			os.Unsetenv(EnvVarOffset)
			os.Unsetenv(EnvVarPattern)
		})
	})
}
