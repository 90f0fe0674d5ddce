// Copyright (c) 2013 Uwe Hoffmann. All rights reserved.

/*
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are
met:

   * Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.
   * Redistributions in binary form must reproduce the above
copyright notice, this list of conditions and the following disclaimer
in the documentation and/or other materials provided with the
distribution.
   * Neither the name of Google Inc. nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

package main

import (
	"fmt"
	stdflag "flag"
	"os"
	"strconv"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/schollz/progressbar/v3"

	"github.com/golang/glog"

	"github.com/ardenfel/packrat/blacklist"
	"github.com/ardenfel/packrat/config"
	"github.com/ardenfel/packrat/pipeline"
	"github.com/ardenfel/packrat/reader"
	"github.com/ardenfel/packrat/saver"
)

var cmd *commander.Commander

func init() {
	cmd = new(commander.Commander)
	cmd.Name = os.Args[0]
	cmd.Commands = make([]*commander.Command, 2)
	cmd.Flag = flag.NewFlagSet("packrat", flag.ExitOnError)
	cmd.Flag.Int("v", 0, "glog verbosity level")
	cmd.Flag.String("config", "", "path to a packrat TOML user-config file")

	cmd.Commands[0] = &commander.Command{
		Run:       repackZip,
		UsageLine: "repack-zip -out <output.zip> <input.zip>",
		Short:     "Repacks a ZIP archive, minifying and recompressing its entries.",
		Long: `
Reads every entry out of the input ZIP archive in central-directory order,
classifies it, runs it through the matching minifier when one applies, and
writes a fresh ZIP archive with each entry's compress-or-store decision made
independently by the oracle.`,
		Flag: *flag.NewFlagSet("packrat-repack-zip", flag.ExitOnError),
	}
	cmd.Commands[0].Flag.String("out", "", "output ZIP path")

	cmd.Commands[1] = &commander.Command{
		Run:       repackTree,
		UsageLine: "repack-tree -out <output.zip> <input dir>",
		Short:     "Repacks a directory tree into a ZIP archive.",
		Long: `
Walks the specified directory tree in depth-first order, classifies each
file by name, runs it through the matching minifier when one applies, and
writes a fresh ZIP archive with each entry's compress-or-store decision
made independently by the oracle.`,
		Flag: *flag.NewFlagSet("packrat-repack-tree", flag.ExitOnError),
	}
	cmd.Commands[1].Flag.String("out", "", "output ZIP path")
}

// loadEnv builds the shared config store and blacklist every subcommand
// needs, applying a -config TOML file when given.
func loadEnv() (*config.Store, *blacklist.Blacklist, error) {
	store := config.NewStore()
	bl := blacklist.New(blacklist.Extend, nil)

	configPath := cmd.Flag.Lookup("config").Value.Get().(string)
	if configPath == "" {
		return store, bl, nil
	}

	uc, err := config.LoadUserConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	uc.Apply(store)

	mode := blacklist.Extend
	if uc.Blacklist.Mode == "override" {
		mode = blacklist.Override
	}
	bl = blacklist.New(mode, uc.Blacklist.Extensions)

	return store, bl, nil
}

func runRepack(r reader.Reader, out string) error {
	store, bl, err := loadEnv()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sv, err := saver.NewZip(out, store.JAR())
	if err != nil {
		return fmt.Errorf("opening %s: %w", out, err)
	}

	prog := pipeline.NewProgress()
	errs := pipeline.NewErrorCollector()

	bar := progressbar.Default(int64(r.Len()))
	done := make(chan struct{})
	go renderProgress(prog, bar, done)

	runErr := pipeline.Run(r, sv, store, bl, prog, errs)
	close(done)

	if closeErr := sv.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	if closeErr := r.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}

	if errs.Len() > 0 {
		reportPath := out + ".errors.csv"
		if err := writeErrorReport(reportPath, errs); err != nil {
			glog.Errorf("failed to write error report %s: %v", reportPath, err)
		} else {
			glog.Infof("%d entries reported errors, see %s", errs.Len(), reportPath)
		}
	}

	return runErr
}

func repackZip(c *commander.Command, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "repack-zip takes exactly one input ZIP path")
		os.Exit(1)
	}
	out := c.Flag.Lookup("out").Value.Get().(string)
	if out == "" {
		fmt.Fprintln(os.Stderr, "-out is required")
		os.Exit(1)
	}

	r, err := reader.NewZip(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening %s: %v\n", args[0], err)
		os.Exit(1)
	}

	if err := runRepack(r, out); err != nil {
		fmt.Fprintf(os.Stderr, "repack failed: %v\n", err)
		os.Exit(1)
	}
}

func repackTree(c *commander.Command, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "repack-tree takes exactly one input directory")
		os.Exit(1)
	}
	out := c.Flag.Lookup("out").Value.Get().(string)
	if out == "" {
		fmt.Fprintln(os.Stderr, "-out is required")
		os.Exit(1)
	}

	r, err := reader.NewFS(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "walking %s: %v\n", args[0], err)
		os.Exit(1)
	}

	if err := runRepack(r, out); err != nil {
		fmt.Fprintf(os.Stderr, "repack failed: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if err := cmd.Flag.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "parsing cmd line flags failed: %v\n", err)
		os.Exit(1)
	}

	v := cmd.Flag.Lookup("v").Value.Get().(int)
	stdflag.Set("v", strconv.Itoa(v))
	stdflag.Set("logtostderr", "true")

	args := cmd.Flag.Args()
	if err := cmd.Run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
