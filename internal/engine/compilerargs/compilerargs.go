// Package compilerargs extracts compiler-argument declarations from Gradle build scripts.
//
// The grammar is intentionally narrow. A declaration starts on the first line
// containing "options.compilerArgs" and ends on the first line (after trimming
// and continuation stripping) that ends with "]":
//
//	options.compilerArgs = ['-Xlint:all', \
//	                        "-Werror"]
//
// The declaration is joined into one logical line and every quoted span is
// returned. Single-quoted spans come first, then double-quoted spans, each
// group in the order it appears.
package compilerargs

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"go.trai.ch/jopts/internal/core/domain"
)

const (
	assignment   = "="
	continuation = `\`
	closing      = "]"

	// maxLineSize bounds a single build script line. bufio's 64KiB default is
	// too small for generated scripts.
	maxLineSize = 1 << 20
)

var (
	singleQuoted = regexp.MustCompile(`'(.*?)'`)
	doubleQuoted = regexp.MustCompile(`"(.*?)"`)
)

// Extract returns the compiler arguments declared in text.
// It never fails: a missing or malformed declaration yields nil.
func Extract(text string) []string {
	args, err := ExtractReader(strings.NewReader(text))
	if err != nil {
		return nil
	}
	return args
}

// ExtractReader streams a build script from r and returns its declared compiler arguments.
// The only error it reports is a failure to read from r.
func ExtractReader(r io.Reader) ([]string, error) {
	declaration, err := readDeclaration(r)
	if err != nil {
		return nil, err
	}
	if declaration == "" {
		return nil, nil
	}
	return quotedSpans(declaration), nil
}

// readDeclaration joins the lines of the compiler-arguments declaration into one string.
// An unterminated declaration is returned as far as it got.
func readDeclaration(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var (
		buf   strings.Builder
		found bool
	)

	for scanner.Scan() {
		line := scanner.Text()

		if !found {
			if !strings.Contains(line, domain.CompilerArgsMarker) {
				continue
			}
			found = true
			if _, value, ok := strings.Cut(line, assignment); ok {
				line = value
			}
		}

		line = strings.TrimSpace(line)
		if trimmed, ok := strings.CutSuffix(line, continuation); ok {
			line = strings.TrimSpace(trimmed)
		}

		buf.WriteString(line)
		if strings.HasSuffix(line, closing) {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func quotedSpans(s string) []string {
	var args []string
	for _, m := range singleQuoted.FindAllStringSubmatch(s, -1) {
		args = append(args, m[1])
	}
	for _, m := range doubleQuoted.FindAllStringSubmatch(s, -1) {
		args = append(args, m[1])
	}
	return args
}
