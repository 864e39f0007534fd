// Package prompt handles interactive input: masked passphrase entry, secret
// values, and yes/no confirmations, with environment-variable bypasses for
// scripted and CI use and a shared-scanner test mode.
package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/howeyc/gopass"
	"golang.org/x/term"
)

var (
	testScanner     *bufio.Scanner
	testScannerOnce sync.Once
)

// readTestLine reads one line from the shared stdin scanner used under
// OBSCURA_TEST=1, so piped multi-line stdin behaves the same across every
// prompt in a single invocation.
func readTestLine() (string, error) {
	testScannerOnce.Do(func() {
		testScanner = bufio.NewScanner(os.Stdin)
	})
	if !testScanner.Scan() {
		if err := testScanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no input provided")
	}
	return testScanner.Text(), nil
}

func inTestMode() bool {
	return os.Getenv("OBSCURA_TEST") == "1"
}

// Passphrase prompts for a master passphrase with masked input, honoring
// OBSCURA_PASSPHRASE for non-interactive use.
func Passphrase(label string) ([]byte, error) {
	if v := os.Getenv("OBSCURA_PASSPHRASE"); v != "" {
		return []byte(v), nil
	}
	if inTestMode() {
		line, err := readTestLine()
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	fmt.Fprint(os.Stderr, label)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimSuffix(line, "\n")), nil
	}

	passphrase, err := gopass.GetPasswdMasked()
	if err != nil {
		return nil, err
	}
	return passphrase, nil
}

// SecretValue prompts for a secret's value with masked input, honoring
// OBSCURA_SECRET_VALUE for non-interactive use.
func SecretValue(label string) (string, error) {
	if v := os.Getenv("OBSCURA_SECRET_VALUE"); v != "" {
		return v, nil
	}
	if inTestMode() {
		return readTestLine()
	}

	fmt.Fprint(os.Stderr, label)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(line, "\n"), nil
	}

	value, err := gopass.GetPasswdMasked()
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Confirm asks a yes/no question, defaulting to defaultYes on empty input.
func Confirm(question string, defaultYes bool) (bool, error) {
	if defaultYes {
		fmt.Fprintf(os.Stderr, "%s (Y/n): ", question)
	} else {
		fmt.Fprintf(os.Stderr, "%s (y/N): ", question)
	}

	var response string
	if inTestMode() {
		line, err := readTestLine()
		if err != nil {
			return false, err
		}
		response = line
	} else {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		response = line
	}

	response = strings.TrimSpace(strings.ToLower(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// Line prompts for a single line of plain (unmasked) text.
func Line(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	if inTestMode() {
		return readTestLine()
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
