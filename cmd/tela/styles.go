package main

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/tela/pkg/dispatch"
)

// stylesTemplate shows each style of the active theme rendered with
// itself. The styled sample sits in the last column so the style tags
// resolved after layout cannot skew alignment.
const stylesTemplate = `Theme: {{ theme }}
{% for r in rows %}{{ r.name | pad_right:22 }}{{ r.kind | pad_right:20 }}{{ r.sample }}
{% endfor %}`

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the active theme's styles",
	Long: `Styles prints every style of the active theme, each name
rendered in its own style so the theme can be eyeballed in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		rows := make([]interface{}, 0, a.theme.Len())
		for _, name := range a.theme.Names() {
			def, _ := a.theme.Get(name)
			kind := "style"
			if def.IsAlias() {
				kind = "alias of " + def.Alias
			}
			rows = append(rows, map[string]interface{}{
				"sample": "[" + name + "]" + name + "[/" + name + "]",
				"name":   name,
				"kind":   kind,
			})
		}

		text, err := a.renderer.RenderString(stylesTemplate,
			map[string]interface{}{"rows": rows})
		if err != nil {
			return err
		}
		return writeOutput(&dispatch.Rendered{Kind: dispatch.OutputRender, Text: text})
	},
}
