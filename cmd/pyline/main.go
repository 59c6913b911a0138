// Command pyline runs the multiline editing front-end against a trivial
// Executor that prints the statement it receives. Wiring an embedded
// interpreter in place of printExecutor is out of scope for this
// module.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wrenfold/pyline"
	"github.com/wrenfold/pyline/internal/tabulate"
	"github.com/wrenfold/pyline/token"
)

// printExecutor is a placeholder Executor, standing in for the
// embedded interpreter this front-end exists to drive. When
// debugTokens is set it also prints the tokenizer's classification of
// the statement it received.
type printExecutor struct {
	debugTokens bool
}

func (e printExecutor) Execute(source string) error {
	fmt.Printf("--- executing ---\n%s\n-----------------\n", source)
	if e.debugTokens {
		fmt.Print(tokenTable(source))
	}
	return nil
}

// tokenTable tokenizes the first logical line of source and renders its
// tokens as a debug table, one row per token.
func tokenTable(source string) string {
	nl := 0
	for nl < len(source) && source[nl] != '\n' {
		nl++
	}
	tok := token.New([]byte(source[:nl]))
	rows := [][]string{{"TYPE", "TEXT"}}
	for {
		tk := tok.Next()
		if tk.Type == token.TypeNone {
			break
		}
		rows = append(rows, []string{fmt.Sprintf("%d", tk.Type), tk.String()})
	}
	return tabulate.String(rows, 2) + "\n"
}

func main() {
	debugTokens := flag.Bool("debug-tokens", false, "print the tokenizer's classification of each committed statement")
	flag.Parse()

	fd := int(os.Stdin.Fd())

	term, err := pyline.EnterRawMode(fd)
	if err != nil {
		log.Fatalf("pyline: %v", err)
	}
	defer term.Close()

	inputArena, err := pyline.NewArena()
	if err != nil {
		log.Fatalf("pyline: %v", err)
	}
	defer inputArena.Free()

	historyArena, err := pyline.NewArena()
	if err != nil {
		log.Fatalf("pyline: %v", err)
	}
	defer historyArena.Free()

	buf := pyline.NewBuffer(inputArena)
	history := pyline.NewHistory(historyArena)
	decoder := pyline.NewDecoder(os.Stdin)
	renderer := pyline.NewRenderer(os.Stdout)

	engine := pyline.NewEngine(buf, history, decoder, renderer)

	err = engine.Run(context.Background(), printExecutor{debugTokens: *debugTokens})
	if err != nil && err != pyline.ErrQuit {
		log.Printf("pyline: %v", err)
	}
}
