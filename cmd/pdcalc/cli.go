package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/motorlab/pdcalc/internal/dispatcher"
	"github.com/motorlab/pdcalc/internal/engine"
	"github.com/motorlab/pdcalc/internal/limits"
	"github.com/motorlab/pdcalc/internal/parser"
	"github.com/motorlab/pdcalc/internal/pdconfig"
	"github.com/motorlab/pdcalc/internal/report"
)

const prompt = "pdcalc> "

// render writes a handler result to stdout in the configured format.
func (a *app) render(result any) error {
	switch v := result.(type) {
	case engine.Result:
		return report.Write(a.stdout, a.format, v)
	case []limits.Field:
		return report.WriteLimits(a.stdout, v)
	case []pdconfig.Threshold:
		return report.WriteThresholds(a.stdout, v)
	case string:
		_, err := fmt.Fprintln(a.stdout, v)
		return err
	default:
		return fmt.Errorf("no renderer for %T", result)
	}
}

// interactive reads one command per line until EOF or quit.
// Lines look like "calculate 100 20 5000 0.6 10 4" or ":CALCULATE: mileage=800".
func (a *app) interactive(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(a.stdout, prompt)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
		case "quit", "exit":
			return nil
		case "help":
			a.help()
		default:
			fields := strings.Fields(line)
			result, err := a.dispatcher.Dispatch(dispatcher.Event{
				Command: commandName(fields[0]),
				Args:    fields[1:],
			})
			if err == nil {
				err = a.render(result)
			}
			if err != nil {
				fmt.Fprintf(a.stdout, "error: %v\n", err)
			}
		}
		fmt.Fprint(a.stdout, prompt)
	}
	fmt.Fprintln(a.stdout)
	return scanner.Err()
}

func (a *app) help() {
	fmt.Fprintln(a.stdout, "commands:")
	for _, c := range a.dispatcher.Commands() {
		fmt.Fprintf(a.stdout, "  %s\n", strings.ToLower(strings.Trim(c, ":")))
	}
	fmt.Fprintf(a.stdout, "calculate takes %s\n", strings.Join(parser.ArgOrder(), " "))
	fmt.Fprintln(a.stdout, "or name=value pairs over the defaults; quit to leave")
}

// commandName accepts "calculate" as well as ":CALCULATE:".
func commandName(s string) string {
	if strings.HasPrefix(s, ":") {
		return strings.ToUpper(s)
	}
	return ":" + strings.ToUpper(s) + ":"
}
