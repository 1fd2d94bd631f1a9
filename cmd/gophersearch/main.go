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

package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mkopp/gopher-search/config"
	"github.com/mkopp/gopher-search/logging"
	"github.com/mkopp/gopher-search/uci"
	"github.com/mkopp/gopher-search/version"
)

var out = message.NewPrinter(language.German)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	searchLogLvl := flag.String("searchloglvl", "", "search log level\n(critical|error|warning|notice|info|debug)")
	profileFlag := flag.Bool("profile", false, "enable CPU profiling, writes cpu.pprof to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *profileFlag {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.Setup(*configFile)

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	if lvl, found := config.LogLevels[*searchLogLvl]; found {
		config.SearchLogLevel = lvl
	}
	logging.GetLog()

	// No board representation or move generator ships with this module -
	// the core search subsystem treats them as external collaborators
	// (see board.Board). A deployment wires its own implementation in
	// here; until then the UCI loop answers protocol commands but "go"
	// and "position" report that no board is available.
	u := uci.NewUciHandler(nil, nil)
	u.Loop()
}

func printVersionInfo() {
	out.Printf("gopher-search %s\n", version.Version())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
