// Command gembalac reads a compile unit as JSON and writes the generated
// assembly text, reporting compile errors and uninitialised-read warnings
// against the original source's line numbers.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"gembalac"
	"gembalac/compileunit"
	"gembalac/diagnostics"
	"gembalac/internal/flushio"
	"gembalac/internal/logio"
	"gembalac/internal/panicerr"
)

func main() {
	var (
		inPath  string
		outPath string
		trace   bool
		warn    bool
	)
	flag.StringVar(&inPath, "in", "", "input compile-unit JSON file (default stdin)")
	flag.StringVar(&outPath, "out", "", "output assembly file (default stdout)")
	flag.BoolVar(&trace, "trace", false, "log compile timing")
	flag.BoolVar(&warn, "warn", true, "report uninitialised-read warnings")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer os.Exit(log.ExitCode())

	in := io.Reader(os.Stdin)
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			log.Errorf("opening input: %v", err)
			return
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Errorf("creating output: %v", err)
			return
		}
		defer f.Close()
		out = f
	}
	wf := flushio.NewWriteFlusher(out)
	defer func() { log.ErrorIf(wf.Flush()) }()

	cu, err := compileunit.Decode(in)
	if err != nil {
		log.Errorf("decoding compile unit: %v", err)
		return
	}
	sm := diagnostics.NewSourceMap(cu.Source)

	var (
		text     string
		warnings []gembalac.Warning
	)
	start := time.Now()
	err = panicerr.Recover("compile", func() error {
		var cerr error
		text, warnings, cerr = gembalac.Compile(cu.Program)
		return cerr
	})
	if trace {
		log.Printf("TRACE", "compiled in %s", time.Since(start))
	}
	if err != nil {
		if _, ok := err.(gembalac.CompileError); !ok {
			log.ErrorIf(err) // recovered panic or Goexit: exit code 2
			return
		}
		log.Errorf("%s", diagnostics.Locate(err, sm))
		return
	}

	if warn {
		for _, w := range warnings {
			log.Printf("WARN", "%s", diagnostics.LocateWarning(w, sm))
		}
	}

	if _, err := io.WriteString(wf, text); err != nil {
		log.Errorf("writing output: %v", err)
	}
}
