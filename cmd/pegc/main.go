package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"pegc/internal/emit"
	"pegc/internal/errors"
	"pegc/internal/frontend"
)

func main() {
	start := flag.String("start", "", "comma-separated start rules to expose (default: all rules)")
	selfParsing := flag.Bool("self-parsing", false, "omit quote/escape helpers, trusting the embedding program to supply them")
	pkg := flag.String("pkg", "main", "package name for the generated parser")
	out := flag.String("o", "", "output file (default: stdout)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: pegc [flags] <file.peg>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	grammar, parseErrors, scanErrors := frontend.ParseSource(path, string(source))
	reporter := errors.NewReporter(path, string(source))

	hasErrors := false
	for _, e := range scanErrors {
		fmt.Print(reporter.FormatError(errors.FromScanError(e)))
		hasErrors = true
	}
	for _, e := range parseErrors {
		fmt.Print(reporter.FormatError(errors.FromParseError(e)))
		hasErrors = true
	}

	var generated string
	if !hasErrors {
		var startRules []string
		if *start != "" {
			startRules = strings.Split(*start, ",")
		}
		generated, err = emit.Compile(grammar, emit.Options{
			StartRules:  startRules,
			SelfParsing: *selfParsing,
			Package:     *pkg,
		})
		if err != nil {
			fmt.Print(reporter.FormatError(errors.FromCompileError(err)))
			hasErrors = true
		}
	}

	duration := time.Since(startTime)
	formatted := formatDuration(duration)

	if hasErrors {
		color.Red("Compilation failed after %s", formatted)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(generated), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(generated)
	}
	color.Green("Successfully compiled %s in %s", path, formatted)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
