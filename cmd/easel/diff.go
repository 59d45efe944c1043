package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/vango-dev/easel/internal/errors"
	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var statsOnly bool

	cmd := &cobra.Command{
		Use:   "diff <a.html> <b.html>",
		Short: "Reconcile one page's body into another and show the edits",
		Long: `Reconcile the body of the second page into the first.

The same single-pass sibling walk the runtime applies to region
updates runs over the whole body: matching tags keep the live node,
mismatches insert a fresh node before the old one, text is always
replaced, and surplus siblings are removed. The edit counts and a
line diff of the body before and after are printed.

Examples:
  easel diff served.html rendered.html
  easel diff --stats served.html rendered.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], statsOnly)
		},
	}

	cmd.Flags().BoolVar(&statsOnly, "stats", false, "Print only the edit counts")

	return cmd
}

func runDiff(pathA, pathB string, statsOnly bool) error {
	docA, err := loadPage(pathA)
	if err != nil {
		return err
	}
	docB, err := loadPage(pathB)
	if err != nil {
		return err
	}

	before := memdom.NodeHTML(docA.Body())
	children := vdom.FromNodes(docB.Body().FirstChild())
	if len(children) == 0 {
		warn("%s has an empty body, nothing to reconcile", pathB)
		return nil
	}

	start := docA.Body().FirstChild()
	if start == nil {
		start = docA.CreateText("")
		docA.Body().AppendChild(start)
	}

	rec := vdom.New(docA, &seqRecaller{})
	if _, err := rec.Siblings(children, start); err != nil {
		return errors.Newf(errors.CategoryCLI, "reconcile %s into %s: %v", pathB, pathA, err)
	}
	after := memdom.NodeHTML(docA.Body())

	s := rec.Stats()
	info("inserted %d, replaced %d, removed %d, retired %d", s.Inserted, s.Replaced, s.Removed, s.Retired)

	if before == after {
		success("No document edits")
		return nil
	}
	if !statsOnly {
		fmt.Println()
		printLineDiff(splitTags(before), splitTags(after))
	}
	return nil
}

// loadPage reads and parses one HTML input.
func loadPage(path string) (*memdom.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E060").
			WithDetail(err.Error()).
			WithSuggestion("Check the path and file permissions")
	}
	doc, err := memdom.ParseString(string(data))
	if err != nil {
		return nil, errors.New("E061").WithDetail(err.Error()).Wrap(err)
	}
	return doc, nil
}

// seqRecaller hands out sequential recall ids so pages carrying inline
// descriptors still materialize.
type seqRecaller struct{ next int }

func (r *seqRecaller) Bind(descriptor string) (string, error) {
	r.next++
	return strconv.Itoa(r.next), nil
}

func (r *seqRecaller) Retire(rid string) {}

// splitTags breaks serialized HTML at tag boundaries so the line diff
// works tag by tag.
func splitTags(s string) string {
	return strings.ReplaceAll(s, "><", ">\n<")
}

// printLineDiff prints a colored line-mode diff.
func printLineDiff(before, after string) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	add := color.New(color.FgGreen).SprintFunc()
	del := color.New(color.FgRed).SprintFunc()
	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Println(add("+ " + line))
			case diffmatchpatch.DiffDelete:
				fmt.Println(del("- " + line))
			case diffmatchpatch.DiffEqual:
				fmt.Println("  " + line)
			}
		}
	}
}
