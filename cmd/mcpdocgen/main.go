// Command mcpdocgen renders the tool schema catalog as a markdown reference,
// one section per tool with its arguments and requiredness.
package main

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/snowgate/snowgate/internal/tools"
)

func main() {
	var b strings.Builder

	b.WriteString("# SnowGate Tool Reference\n\n")
	b.WriteString("Generated from the schema catalog in `internal/tools/definitions.go`. Do not edit by hand.\n")

	for _, def := range tools.Definitions() {
		name, _ := def["name"].(string)
		desc, _ := def["description"].(string)

		fmt.Fprintf(&b, "\n## %s\n\n", name)
		if desc != "" {
			b.WriteString(desc + "\n")
		}

		schema, _ := def["inputSchema"].(map[string]any)
		props, _ := schema["properties"].(map[string]any)
		required, _ := schema["required"].([]string)

		args := make([]string, 0, len(props))
		for arg := range props {
			args = append(args, arg)
		}
		sort.Strings(args)

		if len(args) == 0 {
			continue
		}
		b.WriteString("\nArguments:\n\n")
		for _, arg := range args {
			kind, detail := propertyInfo(props[arg])
			need := "optional"
			if slices.Contains(required, arg) {
				need = "required"
			}
			fmt.Fprintf(&b, "- `%s` (%s, %s)", arg, kind, need)
			if detail != "" {
				fmt.Fprintf(&b, ": %s", detail)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprint(os.Stdout, b.String())
}

// propertyInfo unwraps a JSON-schema property regardless of which map shape
// the catalog uses for it.
func propertyInfo(v any) (kind, detail string) {
	switch m := v.(type) {
	case map[string]string:
		return m["type"], m["description"]
	case map[string]any:
		kind, _ = m["type"].(string)
		detail, _ = m["description"].(string)
		return kind, detail
	default:
		return "", ""
	}
}
