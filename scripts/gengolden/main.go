// Command gengolden regenerates the compiled-assembly and executed-output
// golden files under testdata/ from their compile-unit fixtures, fanning
// out one goroutine per fixture the same way scripts/gen_vm_expects.go
// fanned out its pipeline stages.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"gembalac"
	"gembalac/compileunit"
	"gembalac/internal/refmachine"
)

func main() {
	var (
		dir     string
		timeout time.Duration
	)
	flag.StringVar(&dir, "dir", "testdata", "fixture directory")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall time limit")
	flag.Parse()

	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		log.Fatalln(err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return regenerate(path)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func regenerate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	cu, err := compileunit.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	text, _, err := gembalac.Compile(cu.Program)
	if err != nil {
		return fmt.Errorf("%s: compile: %w", path, err)
	}

	base := strings.TrimSuffix(path, ".json")
	if err := os.WriteFile(base+".golden", []byte(text), 0o644); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	input, err := readInts(base + ".input")
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	m := refmachine.New(input, 0)
	if err := m.Run(text); err != nil {
		return fmt.Errorf("%s: run: %w", path, err)
	}

	out := formatInts(m.Output)
	if err := os.WriteFile(base+".out", []byte(out), 0o644); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readInts reads whitespace-separated integers from path, or returns a nil
// slice if the file does not exist (a fixture with no READ commands has no
// input file).
func readInts(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var values []int
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}
	return values, sc.Err()
}

func formatInts(values []int) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte('\n')
	return b.String()
}
