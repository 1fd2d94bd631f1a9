/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package config holds the engine's flat options record: search gates,
// aspiration/time-management tunables, and logging levels, loaded from an
// optional TOML file with defaults set by each sub-struct's own init().
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// globally available config values
var (
	// LogLevel defines the general log level set by default or given by the command line arguments
	LogLevel = 2

	// SearchLogLevel defines the search log level set by default or given by the command line arguments
	SearchLogLevel = 2

	// Settings is the global configuration read in from file
	Settings conf

	initialized = false
)

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
}

// Setup loads the configuration file (if present) over the package
// defaults. Safe to call more than once; only the first call has effect.
func Setup(configFilePath string) {
	if initialized {
		return
	}

	if configFilePath != "" {
		if _, err := toml.DecodeFile(configFilePath, &Settings); err != nil {
			fmt.Println(err)
		}
	}

	setupLogLvl()
	setupSearch()

	initialized = true
}
