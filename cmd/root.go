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

// package cmd is the cobra file that handles command-line args.

package cmd

import (
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/primers-to-amplicons/amplicons"
	"github.com/wtsi-hgi/primers-to-amplicons/bed"
	"github.com/wtsi-hgi/primers-to-amplicons/config"
	"github.com/wtsi-hgi/primers-to-amplicons/primers"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoPrimers = Error("a primer scheme BED file is required (-p)")

	offsetFlag    = "offset"
	outputFlag    = "output"
	patternFlag   = "pattern"
	leftFlag      = "left"
	rightFlag     = "right"
	referenceFlag = "reference"
)

// appLogger is used for logging events in our commands.
var appLogger = log15.New()

// options for this cmd.
var (
	primersPath string
	offset      int
	output      string
	pattern     string
	left        string
	right       string
	reference   string
	anchored    bool
	strict      bool
	verbose     bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "primers-to-amplicons -p primers.bed",
	Short: "primers-to-amplicons creates a unique amplicon BED file",
	Long: `primers-to-amplicons creates a unique amplicon BED file.

Given a tiling PCR primer scheme in BED format (reference, start, end,
primer_id, score, strand), left and right primers are paired up by their
primer_id with the --left and --right markers removed. Each pair with both a
left and right primer becomes an amplicon spanning the end of the left primer
to the start of the right primer.

Each amplicon is then trimmed so that it doesn't overlap its neighbours: its
start becomes --offset after the end of the previous amplicon, and its end
becomes --offset before the start of the next amplicon. The first amplicon
keeps its start and the last keeps its end. At least 2 amplicons are needed.

The amplicons are written to -o in BED format, named after their primer_id
with --pattern removed, with the full amplicon id as the score.

Primers without a recognised marker, and amplicons missing a left or right
primer, are skipped with a warning (or, for the latter, cause an error with
--strict).

Defaults for --offset, -o, --pattern, --left, --right and --reference can be
set with the environment variables PRIMERS_TO_AMPLICONS_OFFSET, _OUTPUT,
_PATTERN, _LEFT, _RIGHT and _REFERENCE, which can also be defined in a .env
file in the current directory. An example command line could look like this:
$ primers-to-amplicons -p nCoV-2019.scheme.bed -o nCoV-2019.unique.bed
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if verbose {
			setLogLevel(log15.LvlDebug)
		}

		if primersPath == "" && len(args) == 1 {
			primersPath = args[0]
		}

		c, err := config.FromEnv()
		if err != nil {
			die("%s", err)
		}

		applyFlags(cmd, c)

		n, err := convert(primersPath, c)
		if err != nil {
			die("%s", err)
		}

		info("wrote %d unique amplicons to %s", n, c.Output)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once to
// the rootCmd. With no arguments at all, usage is printed to STDERR and we exit
// non zero.
func Execute() {
	if len(os.Args) <= 1 {
		RootCmd.SetOut(os.Stderr)
		RootCmd.Usage() //nolint:errcheck
		os.Exit(1)
	}

	if err := RootCmd.Execute(); err != nil {
		die("%s", err.Error())
	}
}

func init() {
	// set up logging to stderr
	setLogLevel(log15.LvlInfo)

	RootCmd.Flags().StringVarP(&primersPath, "primers", "p", "",
		"primer scheme in BED format")
	RootCmd.Flags().IntVar(&offset, offsetFlag, amplicons.DefaultOffset,
		"primer offset for coordinates")
	RootCmd.Flags().StringVarP(&output, outputFlag, "o", config.DefaultOutput,
		"filename to write BED to")
	RootCmd.Flags().StringVar(&pattern, patternFlag, amplicons.DefaultPattern,
		"amplicon name pattern")
	RootCmd.Flags().StringVar(&left, leftFlag, primers.DefaultLeft,
		"left primer marker in primer ids")
	RootCmd.Flags().StringVar(&right, rightFlag, primers.DefaultRight,
		"right primer marker in primer ids")
	RootCmd.Flags().StringVar(&reference, referenceFlag, "",
		"reference name for all amplicons (default: the primers' reference)")
	RootCmd.Flags().BoolVar(&anchored, "anchored", false,
		"only match --left and --right at the end of primer ids")
	RootCmd.Flags().BoolVar(&strict, "strict", false,
		"fail if an amplicon is missing its left or right primer")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log debug messages")
}

func setLogLevel(lvl log15.Lvl) {
	appLogger.SetHandler(log15.LvlFilterHandler(lvl, log15.StderrHandler))
}

// applyFlags overrides the config with any flags the user explicitly set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()

	if flags.Changed(offsetFlag) {
		c.Offset = offset
	}

	for flag, set := range map[string]struct {
		prop *string
		val  string
	}{
		outputFlag:    {&c.Output, output},
		patternFlag:   {&c.Pattern, pattern},
		leftFlag:      {&c.Left, left},
		rightFlag:     {&c.Right, right},
		referenceFlag: {&c.Reference, reference},
	} {
		if flags.Changed(flag) {
			*set.prop = set.val
		}
	}
}

// convert makes unique amplicons from the primer scheme at the given path and
// writes them to c.Output, returning the number written. Nothing is written if
// there's an error.
func convert(path string, c *config.Config) (int, error) {
	if path == "" {
		return 0, ErrNoPrimers
	}

	popts := c.PrimerOptions()
	popts.Anchored = anchored

	aopts := c.AmpliconOptions()
	aopts.Strict = strict

	appLogger.Debug("converting primer scheme", "path", path, "offset", c.Offset,
		"pattern", aopts.Pattern, "left", popts.Left, "right", popts.Right)

	result, err := amplicons.Convert(path, popts, aopts, c.Offset)
	if err != nil {
		return 0, err
	}

	for _, w := range result.Warnings {
		appLogger.Warn(w.String())
	}

	appLogger.Debug("made amplicon ranges", "amplicons", len(result.Ranges), "skipped", len(result.Warnings))

	if err = bed.WriteFile(c.Output, result.Unique); err != nil {
		return 0, err
	}

	return len(result.Unique), nil
}

// info is a convenience to log a message at the Info level.
func info(msg string, a ...interface{}) {
	appLogger.Info(fmt.Sprintf(msg, a...))
}

// die is a convenience to log a message at the Error level and exit non zero.
func die(msg string, a ...interface{}) {
	appLogger.Error(fmt.Sprintf(msg, a...))
	os.Exit(1)
}
