package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// pick resolves answer as a 1-based position in items or, failing that,
// as an item id.
func pick[T any](items []T, answer string, id func(T) string) (T, error) {
	var zero T
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(items) {
			return zero, fmt.Errorf("no item number %d", n)
		}
		return items[n-1], nil
	}
	for _, it := range items {
		if id(it) == answer {
			return it, nil
		}
	}
	return zero, fmt.Errorf("no item %q", answer)
}

// choose prompts for a number or id out of items.
func choose[T any](reader *bufio.Reader, prompt string, w io.Writer, items []T, id func(T) string) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("nothing to choose from")
	}
	answer, err := GetRequiredText(reader, prompt+" (number or id)", w)
	if err != nil {
		return zero, err
	}
	return pick(items, answer, id)
}
