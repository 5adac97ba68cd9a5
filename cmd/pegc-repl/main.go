// Command pegc-repl reads one grammar at a time from stdin, runs the
// proxy-elimination and stack-depth passes over it, and prints the
// annotated AST back out — a way to see what the optimizer does to a
// small grammar without generating and reading a full parser.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"pegc/internal/errors"
	"pegc/internal/frontend"
	"pegc/internal/optimize"
)

const prompt = "peg> "

func main() {
	fmt.Println("pegc grammar REPL — enter a grammar, then a blank line to run it. Ctrl-D to quit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(prompt)
		var lines []string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				break
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			if err := scanner.Err(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			return
		}

		source := strings.Join(lines, "\n")
		run(source)
	}
}

func run(source string) {
	grammar, parseErrors, scanErrors := frontend.ParseSource("<repl>", source)
	reporter := errors.NewReporter("<repl>", source)

	for _, e := range scanErrors {
		fmt.Print(reporter.FormatError(errors.FromScanError(e)))
	}
	for _, e := range parseErrors {
		fmt.Print(reporter.FormatError(errors.FromParseError(e)))
	}
	if len(scanErrors) > 0 || len(parseErrors) > 0 {
		return
	}

	optimize.ProxyRules(grammar)
	optimize.StackDepths(grammar)

	fmt.Println(grammar.String())
	fmt.Println()
}
