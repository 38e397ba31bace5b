package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	macro "github.com/BrunoBonacci/clojure-simple-macro"
	"github.com/BrunoBonacci/clojure-simple-macro/expand"
	"github.com/BrunoBonacci/clojure-simple-macro/sexplang"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

func tracer() tracing.Trace {
	return tracing.Select("macro.mrepl")
}

// main() starts an interactive CLI ("M.REPL"), where users may define macros
// and inspect their expansions without evaluating anything. (defmacro …)
// forms register a macro in the session registry; any other form is
// macro-expanded to its fixpoint and printed, once as an s-expression and
// once as a tree.
//
// Commands: :quit, :macros, :ns <name>, :expand1 <form>.
//
// Please refer to packages "expand" and "sexplang".
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	maxdepth := flag.Int("maxdepth", expand.DefaultMaxDepth, "Expansion depth bound")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to MREPL") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up registry and expander
	reg := expand.NewRegistry()
	intp := &Intp{
		reg:      reg,
		expander: expand.NewExpander(reg, expand.MaxDepth(*maxdepth)),
		ns:       "user",
	}
	//
	// set up REPL
	repl, err := readline.New("mrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	//
	// load an init file and start receiving commands / s-expressions
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	reg      *expand.Registry
	expander *expand.Expander
	repl     *readline.Instance
	ns       string // namespace recorded for defmacro forms
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	input, err := os.ReadFile(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	forms, err := sexplang.ReadAll(string(input))
	if err != nil {
		tracer().Errorf("Error while reading init file: %s", err.Error())
	}
	for _, form := range forms {
		if err := intp.process(form); err != nil {
			tracer().Errorf(err.Error())
		}
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval processes a command or an s-expression, given on a line by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.command(line)
	}
	forms, err := sexplang.ReadAll(line)
	if err != nil {
		return false, err
	}
	for _, form := range forms {
		if err := intp.process(form); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (intp *Intp) command(line string) (bool, error) {
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":macros":
		for _, def := range intp.reg.Snapshot() {
			pterm.Info.Println(fmt.Sprintf("%s  %s", def, def.Fingerprint()))
		}
		return false, nil
	case ":ns":
		if len(args) != 2 {
			return false, fmt.Errorf(":ns expects a namespace name")
		}
		intp.ns = args[1]
		pterm.Info.Println("namespace is now " + intp.ns)
		return false, nil
	case ":expand1":
		form, err := sexplang.ReadString(strings.TrimSpace(strings.TrimPrefix(line, ":expand1")))
		if err != nil {
			return false, err
		}
		expanded, err := intp.expander.Expand1(form)
		if err != nil {
			return false, err
		}
		intp.printResult(expanded)
		return false, nil
	}
	return false, fmt.Errorf("unknown command %s", args[0])
}

// process registers a defmacro form or expands any other form.
func (intp *Intp) process(form macro.Node) error {
	if form.Head().Name() == "defmacro" {
		def, err := intp.reg.DefineFromForm(form, intp.ns)
		if err != nil {
			return err
		}
		pterm.Info.Println("defined macro " + def.Name)
		return nil
	}
	expanded, err := intp.expander.ExpandAll(form)
	if err != nil {
		return err
	}
	intp.printResult(expanded)
	return nil
}

func (intp *Intp) printResult(result macro.Node) {
	pterm.Info.Println(result.String())
	if result.Type() == macro.ListType {
		ll := leveledNode(result, pterm.LeveledList{}, 0)
		tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
		root := pterm.NewTreeFromLeveledList(ll)
		pterm.DefaultTree.WithRoot(root).Render()
	}
}

func leveledNode(node macro.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node.Type() != macro.ListType {
		return append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  node.String(),
		})
	}
	if node.Length() == 0 {
		return append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  "()",
		})
	}
	for _, child := range node.Children() {
		if child.Type() == macro.ListType {
			ll = leveledNode(child, ll, level+1)
		} else {
			ll = append(ll, pterm.LeveledListItem{
				Level: level,
				Text:  child.String(),
			})
		}
	}
	return ll
}
