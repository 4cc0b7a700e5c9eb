package calc

import (
	"context"
	"fmt"
	"io"
)

var demoLines = []string{
	"3 + 2 * 6",
	"(3 + 2) * 6",
}

// Demo evaluates a fixed set of lines, prints their values and the tree of
// the last one.
func (c *Calculator) Demo(ctx context.Context, w io.Writer) error {
	var last *Result

	for _, line := range demoLines {
		res, err := c.Evaluate(ctx, line)
		if err != nil {
			return fmt.Errorf("demo line %q: %w", line, err)
		}

		if _, err := fmt.Fprintln(w, res); err != nil {
			return err
		}

		last = res
	}

	if _, err := fmt.Fprintln(w, last.Tree); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "Evaluation finished successfully!")
	return err
}
