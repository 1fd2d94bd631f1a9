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

package uci

import (
	"strconv"
	"strings"

	"github.com/mkopp/gopher-search/config"
)

// init defines all available uci options and stores them into uciOptions.
func init() {
	s := &config.Settings.Search
	uciOptions = map[string]*uciOption{
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearCache, OptionType: Button},
		"Hash": {NameID: "Hash", HandlerFunc: cacheSize, OptionType: Spin,
			DefaultValue: "64", CurrentValue: strconv.Itoa(s.TTSizeMb), MinValue: "0", MaxValue: "65000"},
		"Use_Hash": {NameID: "Use_Hash", HandlerFunc: useHash, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseTT)},
		"Use_NullMove": {NameID: "Use_NullMove", HandlerFunc: useNullMove, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseNullMove)},
		"Use_Futility": {NameID: "Use_Futility", HandlerFunc: useFutility, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseFutility)},
		"Use_Razoring": {NameID: "Use_Razoring", HandlerFunc: useRazoring, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseRazoring)},
		"Use_MoveCountPruning": {NameID: "Use_MoveCountPruning", HandlerFunc: useMoveCountPruning, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseMoveCountPruning)},
		"Use_LMR": {NameID: "Use_LMR", HandlerFunc: useLmr, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.LmrEnabled)},
		"Use_SingularExtensions": {NameID: "Use_SingularExtensions", HandlerFunc: useSingularExtensions, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseSingularExtensions)},
		"Use_Aspiration": {NameID: "Use_Aspiration", HandlerFunc: useAspiration, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(s.UseAspiration)},
		"Aspiration_Growth": {NameID: "Aspiration_Growth", HandlerFunc: aspirationGrowth, OptionType: Combo,
			DefaultValue: "exponential", CurrentValue: s.AspirationGrowth,
			VarValue: "linear var moderate var exponential var adaptive"},
	}
}

// GetOptions returns all available uci options as a slice of strings to
// be sent to the UCI user interface during protocol initialization.
func (o optionMap) GetOptions() *[]string {
	var options []string
	for _, opt := range o {
		options = append(options, opt.String())
	}
	return &options
}

// String renders a uci option the way the UCI protocol expects it during
// initialization.
func (o *uciOption) String() string {
	var sb strings.Builder
	sb.WriteString("option name ")
	sb.WriteString(o.NameID)
	sb.WriteString(" type ")
	switch o.OptionType {
	case Check:
		sb.WriteString("check default ")
		sb.WriteString(o.DefaultValue)
	case Spin:
		sb.WriteString("spin default ")
		sb.WriteString(o.DefaultValue)
		sb.WriteString(" min ")
		sb.WriteString(o.MinValue)
		sb.WriteString(" max ")
		sb.WriteString(o.MaxValue)
	case Combo:
		sb.WriteString("combo default ")
		sb.WriteString(o.DefaultValue)
		sb.WriteString(" var ")
		sb.WriteString(o.VarValue)
	case Button:
		sb.WriteString("button")
	case String:
		sb.WriteString("string default ")
		sb.WriteString(o.DefaultValue)
	}
	return sb.String()
}

// uciOptionType is an enum representing the different UCI option types.
type uciOptionType int

const (
	Check  uciOptionType = 0
	Spin   uciOptionType = 1
	Combo  uciOptionType = 2
	Button uciOptionType = 3
	String uciOptionType = 4
)

// optionHandler is called when the uci option is changed by "setoption".
type optionHandler func(*UciHandler, *uciOption)

// uciOption defines a UCI option as described in the UCI protocol. Each
// has a handler called when "setoption" changes it.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

// optionMap is a convenience type for a map of uci options.
type optionMap map[string]*uciOption

// uciOptions stores all available uci options.
var uciOptions optionMap

// ////////////////////////////////////////////////////////////////
// HandlerFunc for uci options changes
// ////////////////////////////////////////////////////////////////

func clearCache(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared Cache")
}

func useHash(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseTT = v
	log.Debugf("Set Use_Hash to %v", v)
}

func cacheSize(u *UciHandler, o *uciOption) {
	v, _ := strconv.Atoi(o.CurrentValue)
	config.Settings.Search.TTSizeMb = v
	u.mySearch.ResizeCache()
}

func useNullMove(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseNullMove = v
	log.Debugf("Set Use_NullMove to %v", v)
}

func useFutility(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseFutility = v
	log.Debugf("Set Use_Futility to %v", v)
}

func useRazoring(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseRazoring = v
	log.Debugf("Set Use_Razoring to %v", v)
}

func useMoveCountPruning(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseMoveCountPruning = v
	log.Debugf("Set Use_MoveCountPruning to %v", v)
}

func useLmr(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.LmrEnabled = v
	log.Debugf("Set Use_LMR to %v", v)
}

func useSingularExtensions(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseSingularExtensions = v
	log.Debugf("Set Use_SingularExtensions to %v", v)
}

func useAspiration(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseAspiration = v
	log.Debugf("Set Use_Aspiration to %v", v)
}

func aspirationGrowth(u *UciHandler, o *uciOption) {
	config.Settings.Search.AspirationGrowth = o.CurrentValue
	log.Debugf("Set Aspiration_Growth to %s", o.CurrentValue)
}
