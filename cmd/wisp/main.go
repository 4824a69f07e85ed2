package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"wisp/interp"
	"wisp/types"
)

func main() {
	evalExpr := flag.String("e", "", "Evaluate one expression and exit")
	disasm := flag.Bool("disasm", false, "With -e, print the compiled instruction stream instead of evaluating")
	flag.Parse()

	session := interp.New()

	if *evalExpr != "" {
		if *disasm {
			unit, err := session.Compile(*evalExpr)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Print(unit.Disassemble())
			return
		}
		val, err := session.Eval(*evalExpr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printValue(val)
		return
	}

	repl(session)
}

// repl reads one expression per line, evaluating each and continuing past
// any error. EOF or an interrupt ends the session.
func repl(session *interp.Interp) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Println()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		val, err := session.Eval(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		printValue(val)
	}
}

func printValue(val types.Value) {
	if val == types.Nothing {
		return
	}
	fmt.Printf(" %s\n", val.String())
}
