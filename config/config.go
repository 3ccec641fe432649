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

// Package config loads the HCL configuration of the vfsls tool and builds
// the logger and URL multiplexer it describes.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty/function"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chronicleprotocol/go-vfs/hcl/funcs"
	"github.com/chronicleprotocol/go-vfs/vfs"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Config is the root of the configuration file.
//
// Example:
//
//	log {
//	  level  = "debug"
//	  format = "json"
//	}
//
//	virtual_fs {
//	  root = env("VFS_ROOT", "/var/lib/vfs")
//	}
//
//	list {
//	  include  = ["**/*.class"]
//	  checksum = true
//	}
type Config struct {
	Log       *LogConfig       `hcl:"log,block"`
	VirtualFS *VirtualFSConfig `hcl:"virtual_fs,block"`
	List      *ListConfig      `hcl:"list,block"`
}

type LogConfig struct {
	// Level is one of "debug", "info", "warn" or "error".
	Level string `hcl:"level,optional"`

	// Format is either "console" or "json".
	Format string `hcl:"format,optional"`
}

// VirtualFSConfig describes the host directory that backs the container
// virtual filesystem. Virtual filesystem URLs are looked up below Root.
type VirtualFSConfig struct {
	Root string `hcl:"root"`
}

type ListConfig struct {
	Include  []string `hcl:"include,optional"`
	Checksum bool     `hcl:"checksum,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errConfigFn(err)
	}
	return Parse(path, src)
}

// Parse decodes the configuration from src. The filename is only used in
// diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, errConfigFn(diags)
	}
	ctx := &hcl.EvalContext{
		Functions: map[string]function.Function{
			"env": funcs.Env(),
		},
	}
	c := Default()
	if diags := gohcl.DecodeBody(file.Body, ctx, c); diags.HasErrors() {
		return nil, errConfigFn(diags)
	}
	if c.List != nil {
		if err := vfs.ValidPatterns(c.List.Include...); err != nil {
			return nil, errConfigFn(err)
		}
	}
	return c, nil
}

// Logger builds the logger described by the log block. If verbose is true,
// the level is forced to debug.
func (c *Config) Logger(verbose bool) (*zap.SugaredLogger, error) {
	level, format := defaultLogLevel, defaultLogFormat
	if c.Log != nil {
		if c.Log.Level != "" {
			level = c.Log.Level
		}
		if c.Log.Format != "" {
			format = c.Log.Format
		}
	}
	if verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errConfigFn(err)
	}
	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, errConfigUnknownLogFormatFn(format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	log, err := zc.Build()
	if err != nil {
		return nil, errConfigFn(err)
	}
	return log.Sugar(), nil
}

// VirtualBackend returns the virtual filesystem backend, or nil if the
// configuration does not enable one or its root directory does not exist.
//
// The result is meant to be computed once and shared.
func (c *Config) VirtualBackend() (vfs.VirtualBackend, error) {
	if c.VirtualFS == nil || c.VirtualFS.Root == "" {
		return nil, nil
	}
	info, err := os.Stat(c.VirtualFS.Root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errConfigFn(err)
	case !info.IsDir():
		return nil, errConfigVirtualRootNotDirFn(c.VirtualFS.Root)
	}
	return vfs.NewAferoBackend(afero.NewBasePathFs(afero.NewOsFs(), c.VirtualFS.Root)), nil
}

// Mux builds the URL multiplexer for the VFS and file URL types.
func (c *Config) Mux(log *zap.SugaredLogger) (*vfs.Mux, error) {
	opts := []vfs.TypeOption{vfs.WithLogger(log)}
	b, err := c.VirtualBackend()
	if err != nil {
		return nil, err
	}
	switch {
	case b != nil:
		log.Debugw("Virtual filesystem backend enabled", "root", c.VirtualFS.Root)
		opts = append(opts, vfs.WithVirtualBackend(b))
	case c.VirtualFS != nil && c.VirtualFS.Root != "":
		log.Warnw("Virtual filesystem root does not exist, backend disabled", "root", c.VirtualFS.Root)
	}
	return vfs.NewMux(vfs.DefaultTypes(opts...)...), nil
}

// Include returns the configured include patterns.
func (c *Config) Include() []string {
	if c.List == nil {
		return nil
	}
	return c.List.Include
}

// Checksum reports whether entry checksums should be printed.
func (c *Config) Checksum() bool {
	return c.List != nil && c.List.Checksum
}

func errConfigFn(err error) error {
	return fmt.Errorf("config: %w", err)
}

func errConfigUnknownLogFormatFn(format string) error {
	return fmt.Errorf("config: unknown log format: %q", format)
}

func errConfigVirtualRootNotDirFn(root string) error {
	return fmt.Errorf("config: virtual filesystem root is not a directory: %s", root)
}
