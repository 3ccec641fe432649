// Copyright (C) 2021-2025 Chronicle Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronicleprotocol/go-vfs/config"
	"github.com/chronicleprotocol/go-vfs/errutil"
	"github.com/chronicleprotocol/go-vfs/sliceutil"
	"github.com/chronicleprotocol/go-vfs/vfs"
)

var headerColor = color.New(color.FgCyan, color.Bold)

type options struct {
	config   string
	verbose  bool
	include  []string
	checksum bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "vfsls [flags] URL...",
		Short: "List the files a classpath URL denotes",
		Long: `vfsls resolves classpath URLs to the directory, archive or virtual
filesystem location that backs them and prints the files found there.

Supported schemes: vfs, vfszip, vfsfile, file, jar. A URL without a
scheme is treated as a file path.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "HCL configuration file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringArrayVarP(&opts.include, "include", "i", nil, "Only list files matching the glob pattern (repeatable)")
	cmd.Flags().BoolVar(&opts.checksum, "checksum", false, "Print the Keccak-256 checksum of every file")
	return cmd
}

func run(out io.Writer, opts options, urls []string) error {
	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			return err
		}
	}
	log, err := cfg.Logger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	include := sliceutil.AppendUnique(sliceutil.Copy(cfg.Include()), opts.include...)
	include = sliceutil.Filter(include, func(p string) bool { return p != "" })
	if err := vfs.ValidPatterns(include...); err != nil {
		return err
	}
	mux, err := cfg.Mux(log)
	if err != nil {
		return err
	}
	l := &lister{
		out:      out,
		log:      log,
		include:  include,
		checksum: opts.checksum || cfg.Checksum(),
	}
	for _, url := range urls {
		if err := l.list(mux, url); err != nil {
			return err
		}
	}
	return nil
}

type lister struct {
	out      io.Writer
	log      *zap.SugaredLogger
	include  []string
	checksum bool
}

func (l *lister) list(mux *vfs.Mux, url string) (err error) {
	d, err := mux.FromString(url)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := d.Close(); cErr != nil {
			err = errutil.Append(err, cErr)
		}
	}()
	if _, err := headerColor.Fprintf(l.out, "%s\n", d.Path()); err != nil {
		return err
	}
	for f := range vfs.Filter(d, l.include...) {
		if !l.checksum {
			if _, err := fmt.Fprintln(l.out, f.RelativePath()); err != nil {
				return err
			}
			continue
		}
		h, err := vfs.Checksum(f)
		if err != nil {
			l.log.Warnw("Unable to compute checksum", "path", f.RelativePath(), "error", err)
			continue
		}
		if _, err := fmt.Fprintf(l.out, "%s  %s\n", h.String(), f.RelativePath()); err != nil {
			return err
		}
	}
	return nil
}
