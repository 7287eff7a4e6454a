// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package catalog provides a named collection of zones, configured via
// YAML or using the builtin set of zones.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/cosnicolaou/timezone/rules"
	"github.com/cosnicolaou/timezone/zone"
	"github.com/maypok86/otter/v2"
	"gopkg.in/yaml.v3"
)

type zoneConfig struct {
	Name  string      `yaml:"name" cmd:"the name of the zone"`
	DST   *rules.Rule `yaml:"dst" cmd:"the rule for the start of daylight saving time, omit if daylight saving time is not observed"`
	STD   *rules.Rule `yaml:"std" cmd:"the rule for the start of standard time"`
	POSIX string      `yaml:"posix" cmd:"a POSIX TZ string, eg. EST5EDT,M3.2.0,M11.1.0, as an alternative to dst and std"`
}

type catalogConfig struct {
	Zones []zoneConfig `yaml:"zones" cmd:"the zones in the catalog"`
}

// ZoneSpec represents the definition of a named zone.
type ZoneSpec struct {
	Name     string
	DST, STD rules.Rule
}

// Option represents an option to New and the functions that create
// a Catalog.
type Option func(o *options)

type options struct {
	logger    *slog.Logger
	cacheSize int
}

// WithLogger sets the logger used by the catalog and the zones it creates.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCacheSize sets the maximum number of per-zone, per-year transitions
// cached by TransitionTable.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// Catalog represents a set of named zones.
type Catalog struct {
	options
	specs  []ZoneSpec
	byName map[string]int
	cache  *otter.Cache[yearKey, zone.Transitions]
}

// New creates a Catalog from the supplied zone specifications. All of
// the rules are validated and the names must be unique and non-empty.
func New(specs []ZoneSpec, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		specs:  slices.Clone(specs),
		byName: make(map[string]int, len(specs)),
	}
	c.cacheSize = 10_000
	for _, fn := range opts {
		fn(&c.options)
	}
	if c.logger == nil {
		c.logger = logging.Discard
	}
	var errs errors.M
	for i, spec := range c.specs {
		if len(spec.Name) == 0 {
			errs.Append(fmt.Errorf("zone %v: missing name", i))
			continue
		}
		if _, ok := c.byName[spec.Name]; ok {
			errs.Append(fmt.Errorf("duplicate zone name: %v", spec.Name))
			continue
		}
		c.byName[spec.Name] = i
		if err := spec.DST.Validate(); err != nil {
			errs.Append(fmt.Errorf("zone %v: dst: %w", spec.Name, err))
		}
		if err := spec.STD.Validate(); err != nil {
			errs.Append(fmt.Errorf("zone %v: std: %w", spec.Name, err))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	c.cache = otter.Must(&otter.Options[yearKey, zone.Transitions]{
		MaximumSize: c.cacheSize,
	})
	return c, nil
}

// ParseConfigFile reads a catalog configuration from the specified file.
func ParseConfigFile(ctx context.Context, cfgFile string, opts ...Option) (*Catalog, error) {
	var cfg catalogConfig
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return nil, err
	}
	return cfg.createCatalog(opts)
}

// ParseConfig parses a catalog configuration from the supplied YAML.
func ParseConfig(_ context.Context, cfgData []byte, opts ...Option) (*Catalog, error) {
	var cfg catalogConfig
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return nil, err
	}
	return cfg.createCatalog(opts)
}

func (cfg catalogConfig) createCatalog(opts []Option) (*Catalog, error) {
	specs := make([]ZoneSpec, 0, len(cfg.Zones))
	var errs errors.M
	for _, zc := range cfg.Zones {
		spec, err := zc.spec()
		if err != nil {
			errs.Append(fmt.Errorf("zone %q: %w", zc.Name, err))
			continue
		}
		specs = append(specs, spec)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return New(specs, opts...)
}

func (zc zoneConfig) spec() (ZoneSpec, error) {
	if len(zc.POSIX) > 0 {
		if zc.DST != nil || zc.STD != nil {
			return ZoneSpec{}, fmt.Errorf("posix cannot be specified with dst or std")
		}
		z, err := zone.ParsePOSIX(zc.POSIX)
		if err != nil {
			return ZoneSpec{}, err
		}
		dst, std := z.Rules()
		return ZoneSpec{Name: zc.Name, DST: dst, STD: std}, nil
	}
	if zc.STD == nil {
		return ZoneSpec{}, fmt.Errorf("missing std rule")
	}
	spec := ZoneSpec{Name: zc.Name, DST: *zc.STD, STD: *zc.STD}
	if zc.DST != nil {
		spec.DST = *zc.DST
	}
	return spec, nil
}

// Lookup returns the specification for the named zone.
func (c *Catalog) Lookup(name string) (ZoneSpec, bool) {
	i, ok := c.byName[name]
	if !ok {
		return ZoneSpec{}, false
	}
	return c.specs[i], true
}

// Names returns the names of the zones in the order in which they
// were specified.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.specs))
	for i, s := range c.specs {
		names[i] = s.Name
	}
	return names
}

// Zone returns a new Zone for the named zone.
func (c *Catalog) Zone(name string) (*zone.Zone, error) {
	spec, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown zone: %q", name)
	}
	return zone.New(spec.DST, spec.STD, zone.WithName(spec.Name), zone.WithLogger(c.logger)), nil
}
