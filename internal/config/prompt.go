package config

// Interactive fallback for the legacy prompt-driven workflow: when no input
// directory argument is given and stdin is a terminal, the directory and
// recursion choice are read interactively. The core pipeline never touches
// stdin; it only ever sees the resulting Config.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInputDir is returned when no directory was given and prompting is not
// possible (stdin is not a terminal).
var ErrNoInputDir = errors.New("no input directory given (pass input_dir or run on a terminal)")

// PromptForInput reads the input directory and recursion choice from r,
// writing prompts to w. Recursion is enabled only on an explicit "y"/"yes"
// answer, matching the legacy script.
func PromptForInput(cfg *Config, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	fmt.Fprint(w, "Enter the directory path containing videos: ")
	dir, err := readLine(scanner)
	if err != nil {
		return err
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return errors.New("directory path must not be empty")
	}
	cfg.InputDir = NormalizeDirArg(dir)

	fmt.Fprint(w, "Process subdirectories? (y/n): ")
	answer, err := readLine(scanner)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		cfg.Recurse = true
	default:
		cfg.Recurse = false
	}
	return nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return scanner.Text(), nil
}
