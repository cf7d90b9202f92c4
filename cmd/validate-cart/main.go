package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// CLI-приложение для проверки выгруженных снимков корзины (значение слота @RocketShoes:cart).
// Валидные снимки печатаются в stdout в каноническом виде, сводка уходит в stderr.
func main() {
	inputPath := flag.String("in", "", "path to cart snapshot (.json) or snapshot list (.jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	quiet := flag.Bool("q", false, "do not print valid snapshots, only the summary")
	flag.Parse()

	os.Exit(run(context.Background(), *inputPath, validate.InputFormat(*formatStr), *quiet))
}

func run(ctx context.Context, inputPath string, format validate.InputFormat, quiet bool) int {
	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}

	// stdin вариант: считаем, что jsonl
	if inputPath == "" {
		inputPath = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	rep, err := validate.ValidateFile(ctx, validate.NewCartValidator(), inputPath, format, out)
	for _, rejected := range rep.Rejected {
		fmt.Fprintf(os.Stderr, "rejected %v\n", rejected)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, rep)
		return 1
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", rep)
	return 0
}
