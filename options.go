/*
 * options.go, part of chemsel.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemsel

import (
	"log/slog"
	"runtime"

	"github.com/rmera/chemsel/bonds"
)

//Options for the evaluation of selections and the guessing of bonds.
type Options struct {
	cpus   int
	logger *slog.Logger
	table  *bonds.Table
	prune  bool
}

//DefaultOptions returns an Options with the default options.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cpus = runtime.NumCPU()
	ret.logger = slog.Default()
	ret.table = bonds.DefaultTable()
	ret.prune = false
	return ret
}

//Cpus returns the current value of the Cpus options (the maximum number of frames
//evaluated at the same time) and sets it, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//Logger returns the logger used for warnings and sets it, if a non-nil one is given.
func (o *Options) Logger(logger ...*slog.Logger) *slog.Logger {
	ret := o.logger
	if len(logger) > 0 && logger[0] != nil {
		o.logger = logger[0]
	}
	return ret
}

//Table returns the covalent radii table used to guess bonds and sets it, if
//a non-nil one is given.
func (o *Options) Table(table ...*bonds.Table) *bonds.Table {
	ret := o.table
	if len(table) > 0 && table[0] != nil {
		o.table = table[0]
	}
	return ret
}

//Prune returns whether bonds in excess of an atom's maximum are removed and sets
//the value to the one given, if any.
func (o *Options) Prune(prune ...bool) bool {
	ret := o.prune
	if len(prune) > 0 {
		o.prune = prune[0]
	}
	return ret
}

func (o *Options) bondOptions() *bonds.Options {
	b := bonds.DefaultOptions()
	b.Table(o.table)
	b.Prune(o.prune)
	return b
}

//getOptions returns a copy of the given options with the unset (zero) fields
//replaced by their defaults, or the default options if none were given.
func getOptions(options []*Options) *Options {
	if len(options) == 0 || options[0] == nil {
		return DefaultOptions()
	}
	ret := *options[0]
	if ret.cpus <= 0 {
		ret.cpus = runtime.NumCPU()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.table == nil {
		ret.table = bonds.DefaultTable()
	}
	return &ret
}
