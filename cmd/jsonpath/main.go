// Command jsonpath evaluates a single JSONPath expression against one line
// of JSON read from standard input and prints the result to standard
// output.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gopathic/jsonpath"
	"github.com/gopathic/jsonpath/jvalue"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("jsonpath", flag.ContinueOnError)
	var path string
	fs.StringVar(&path, "j", "", "the JSONPath expression to evaluate (required)")
	fs.StringVar(&path, "jsonpath", "", "the JSONPath expression to evaluate (required)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if path == "" {
		fmt.Fprintln(stderr, "jsonpath: -j/--jsonpath is required")
		return 1
	}

	compiled, err := jsonpath.Parse(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			fmt.Fprintln(stderr, err)
		} else {
			fmt.Fprintln(stderr, "jsonpath: no input")
		}
		return 1
	}

	var decoded any
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	doc, err := jvalue.FromAny(decoded)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	result, err := compiled.Query(doc)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out, err := json.Marshal(jvalue.ToAny(result))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}
