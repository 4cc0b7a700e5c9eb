package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jvitoroc/gocalc/calc"
)

const exitCommand = "exit"

// repl evaluates r line by line until it ends or a line reads "exit".
// Evaluation failures are printed and the loop goes on.
func repl(ctx context.Context, c *calc.Calculator, r io.Reader, w io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(r)
	for {
		if prompt {
			fmt.Fprint(w, "> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == exitCommand {
			return nil
		}

		if err := c.RunLine(ctx, w, line); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return scanner.Err()
}
