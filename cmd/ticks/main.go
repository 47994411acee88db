package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meenmo/fimatrix/quote"
)

type tickOutput struct {
	Token string           `json:"token"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Error string           `json:"error,omitempty"`
}

func main() {
	partial := flag.Bool("partial", false, "Report every token instead of stopping at the first bad one")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: ticks [-partial] <price> [<price>...]   (reads one price per line from stdin if none given)")
		fmt.Fprintln(os.Stderr, "Convert 32nds quotes such as 99'16+ or 99'162 to decimal prices.")
		return
	}

	tokens := flag.Args()
	if len(tokens) == 0 {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: ticks [-partial] <price> [<price>...]")
			os.Exit(2)
		}
		var err error
		if tokens, err = readTokens(os.Stdin); err != nil {
			exitError(fmt.Sprintf("read input: %v", err))
		}
	}

	if *partial {
		hadError := false
		outputs := make([]tickOutput, 0, len(tokens))
		for _, r := range quote.ParseTicksPartial(tokens) {
			out := tickOutput{Token: r.Token}
			if r.Err != nil {
				hadError = true
				out.Error = r.Err.Error()
			} else {
				price := r.Price
				out.Price = &price
			}
			outputs = append(outputs, out)
		}
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
		if hadError {
			os.Exit(1)
		}
		return
	}

	prices, err := quote.ParseTicksAll(tokens)
	if err != nil {
		exitError(err.Error())
	}
	outputs := make([]tickOutput, 0, len(prices))
	for i := range prices {
		outputs = append(outputs, tickOutput{Token: tokens[i], Price: &prices[i]})
	}
	b, _ := json.Marshal(outputs)
	fmt.Println(string(b))
}

func readTokens(r io.Reader) ([]string, error) {
	var tokens []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			tokens = append(tokens, line)
		}
	}
	return tokens, sc.Err()
}

func exitError(msg string) {
	b, _ := json.Marshal(tickOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
