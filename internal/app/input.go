package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ddoupal/IPMonitor/internal/config"
)

// PromptMissing interactively collects whatever the config is still
// missing: the test duration and the target list. Invalid input is
// rejected with a message and asked for again, never coerced.
func PromptMissing(cfg *config.Config, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	if cfg.DurationSeconds <= 0 {
		duration, err := promptDuration(scanner, out)
		if err != nil {
			return err
		}
		cfg.DurationSeconds = duration
	}

	if len(cfg.Targets) == 0 {
		targets, err := promptTargets(scanner, out)
		if err != nil {
			return err
		}
		cfg.Targets = targets
	}

	return nil
}

func promptDuration(scanner *bufio.Scanner, out io.Writer) (int, error) {
	for {
		fmt.Fprint(out, "Test duration in seconds: ")
		line, err := readLine(scanner)
		if err != nil {
			return 0, err
		}

		seconds, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintf(out, "Not a number: %q\n", strings.TrimSpace(line))
			continue
		}
		if err := config.ValidateDuration(seconds); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		return seconds, nil
	}
}

func promptTargets(scanner *bufio.Scanner, out io.Writer) ([]string, error) {
	for {
		fmt.Fprint(out, "Addresses to probe (space-separated): ")
		line, err := readLine(scanner)
		if err != nil {
			return nil, err
		}

		targets := strings.Fields(line)
		if len(targets) == 0 {
			fmt.Fprintln(out, "At least one address is required")
			continue
		}

		valid := true
		for _, target := range targets {
			if err := config.ValidateTarget(target); err != nil {
				fmt.Fprintf(out, "%v\n", err)
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		return targets, nil
	}
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return scanner.Text(), nil
}
