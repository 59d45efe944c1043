package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/easel/internal/errors"
	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/state"
)

func inspectCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect <page.html|payload.json>",
		Short: "Decode and pretty-print a hydration payload",
		Long: `Decode a hydration payload and print its three members.

The input is either a page with an embedded payload element or a bare
payload file. The output shows the context bindings, the object table
with the JSON kind of each slot, and the subscription stack in the
order it is consumed at boot.

Examples:
  easel inspect page.html
  easel inspect payload.json
  easel inspect --json page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Re-emit the payload as indented JSON")

	return cmd
}

func runInspect(path string, jsonOut bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("E060").
			WithDetail(err.Error()).
			WithSuggestion("Check the path and file permissions")
	}

	raw := data
	if filepath.Ext(path) != ".json" {
		doc, err := memdom.ParseString(string(data))
		if err != nil {
			return errors.New("E061").WithDetail(err.Error()).Wrap(err)
		}
		nodes := doc.Query(state.PayloadSelector)
		switch len(nodes) {
		case 0:
			return errors.New("E001")
		case 1:
			raw = []byte(textContent(nodes[0]))
		default:
			return errors.New("E002").
				WithDetail(fmt.Sprintf("The page has %d payload elements.", len(nodes)))
		}
	}

	p, err := state.ParsePayload(raw)
	if err != nil {
		return errors.New("E003").WithDetail(err.Error()).Wrap(err)
	}

	if jsonOut {
		return printPayloadJSON(p)
	}
	printPayload(path, p)
	return nil
}

func printPayload(path string, p *state.Payload) {
	fmt.Printf("%s\n\n", path)

	fmt.Printf("Contexts (%d):\n", len(p.Ctx))
	for _, id := range sortedCtxIDs(p.Ctx) {
		fmt.Printf("  %4s → region %q\n", id, p.Ctx[id].Region)
	}
	fmt.Println()

	fmt.Printf("Objects (%d):\n", len(p.Objs))
	for i, raw := range p.Objs {
		fmt.Printf("  [%d] %-7s %s\n", i, jsonKind(raw), preview(raw, 60))
	}
	fmt.Println()

	fmt.Printf("Subscriptions (%d groups, top first):\n", len(p.Subs))
	for i := len(p.Subs) - 1; i >= 0; i-- {
		parts := make([]string, 0, len(p.Subs[i]))
		for _, s := range p.Subs[i] {
			parts = append(parts, s.String())
		}
		fmt.Printf("  [%d] %s\n", len(p.Subs)-1-i, strings.Join(parts, ", "))
	}
}

func printPayloadJSON(p *state.Payload) error {
	subs := make([][]string, len(p.Subs))
	for i, group := range p.Subs {
		subs[i] = make([]string, len(group))
		for j, s := range group {
			subs[i][j] = s.String()
		}
	}
	out, err := json.MarshalIndent(struct {
		Ctx  map[string]state.Ctx `json:"ctx"`
		Objs []json.RawMessage    `json:"objs"`
		Subs [][]string           `json:"subs"`
	}{p.Ctx, p.Objs, subs}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// sortedCtxIDs orders context keys numerically, with non-numeric keys
// after the numeric ones in string order.
func sortedCtxIDs(ctx map[string]state.Ctx) []string {
	ids := make([]string, 0, len(ctx))
	for id := range ctx {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.ParseUint(ids[i], 10, 64)
		b, berr := strconv.ParseUint(ids[j], 10, 64)
		if aerr == nil && berr == nil {
			return a < b
		}
		if (aerr == nil) != (berr == nil) {
			return aerr == nil
		}
		return ids[i] < ids[j]
	})
	return ids
}

// jsonKind names the JSON kind of a raw value by its first byte.
func jsonKind(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "empty"
	}
	switch s[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// preview clips a raw JSON value for table display.
func preview(raw json.RawMessage, max int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
