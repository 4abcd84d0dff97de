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
	"strconv"

	"github.com/joho/godotenv"
	"github.com/wtsi-hgi/primers-to-amplicons/amplicons"
	"github.com/wtsi-hgi/primers-to-amplicons/primers"
)

const (
	EnvVarOffset    = "PRIMERS_TO_AMPLICONS_OFFSET"
	EnvVarOutput    = "PRIMERS_TO_AMPLICONS_OUTPUT"
	EnvVarPattern   = "PRIMERS_TO_AMPLICONS_PATTERN"
	EnvVarLeft      = "PRIMERS_TO_AMPLICONS_LEFT"
	EnvVarRight     = "PRIMERS_TO_AMPLICONS_RIGHT"
	EnvVarReference = "PRIMERS_TO_AMPLICONS_REFERENCE"

	DefaultOutput = "out.bed"
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrBadOffset = Error(EnvVarOffset + " must be an integer")

type Config struct {
	Offset    int
	Output    string
	Pattern   string
	Left      string
	Right     string
	Reference string
}

// Default returns a Config with the default offset, output path, amplicon name
// pattern and primer markers, and no reference override.
func Default() *Config {
	return &Config{
		Offset:  amplicons.DefaultOffset,
		Output:  DefaultOutput,
		Pattern: amplicons.DefaultPattern,
		Left:    primers.DefaultLeft,
		Right:   primers.DefaultRight,
	}
}

// FromEnv returns a new Config with properies populated from environment
// variables PRIMERS_TO_AMPLICONS_*, where * is amongst: OFFSET, OUTPUT,
// PATTERN, LEFT, RIGHT and REFERENCE. Unset (or empty) variables leave the
// property at its Default().
//
// If these environment variables are defined in a file called .env (and not
// previously set in an environment variable), they will be automatically
// loaded.
//
// Optionally supply a directory to look for the .env file in.
func FromEnv(dir ...string) (*Config, error) {
	var parentDir string
	if len(dir) == 1 {
		parentDir = dir[0] + string(os.PathSeparator)
	}

	godotenv.Load(parentDir + ".env") //nolint:errcheck

	c := Default()

	if offset := os.Getenv(EnvVarOffset); offset != "" {
		o, err := strconv.Atoi(offset)
		if err != nil {
			return nil, ErrBadOffset
		}

		c.Offset = o
	}

	setFromEnv(&c.Output, EnvVarOutput)
	setFromEnv(&c.Pattern, EnvVarPattern)
	setFromEnv(&c.Left, EnvVarLeft)
	setFromEnv(&c.Right, EnvVarRight)
	setFromEnv(&c.Reference, EnvVarReference)

	return c, nil
}

func setFromEnv(prop *string, envVar string) {
	if val := os.Getenv(envVar); val != "" {
		*prop = val
	}
}

// PrimerOptions returns primers.Options using this Config's markers.
func (c *Config) PrimerOptions() primers.Options {
	return primers.Options{Left: c.Left, Right: c.Right}
}

// AmpliconOptions returns amplicons.Options using this Config's pattern and
// reference.
func (c *Config) AmpliconOptions() amplicons.Options {
	return amplicons.Options{Pattern: c.Pattern, Reference: c.Reference}
}
