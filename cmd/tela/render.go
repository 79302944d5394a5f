package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/tela/pkg/dispatch"
	"github.com/arthur-debert/tela/pkg/errors"
)

var (
	renderDataJSON string
	renderDataFile string
)

var renderCmd = &cobra.Command{
	Use:   "render TEMPLATE [key=value...]",
	Short: "Render a registered template with data",
	Long: `Render looks the template up in the configured template
directories, expands it with the given data, and applies the active
theme. Data comes from --data (inline JSON), --data-file (JSON file
or - for stdin), and trailing key=value pairs, later sources winning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		data, err := collectData(args[1:])
		if err != nil {
			return err
		}

		router := dispatch.NewRouter(a.renderer)
		if err := router.Register(&dispatch.Recipe{
			Path:     "render",
			Template: args[0],
			Handler: func(hargs dispatch.Args, ctx dispatch.CommandContext) (dispatch.Output, error) {
				return dispatch.Render(map[string]interface{}(hargs)), nil
			},
		}); err != nil {
			return err
		}

		out, err := router.Dispatch("render", data, nil)
		if err != nil {
			return err
		}
		return writeOutput(out)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDataJSON, "data", "", "Inline JSON object with template data")
	renderCmd.Flags().StringVar(&renderDataFile, "data-file", "", "JSON file with template data, - for stdin")
}

// collectData merges --data-file, --data, and key=value pairs, in
// that order
func collectData(pairs []string) (dispatch.Args, error) {
	data := dispatch.Args{}

	if renderDataFile != "" {
		var raw []byte
		var err error
		if renderDataFile == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(renderDataFile)
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrLoadError,
				"cannot read data file %s", renderDataFile)
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, errors.Wrap(err, errors.ErrParseError, "data file is not a JSON object")
		}
	}
	if renderDataJSON != "" {
		var inline map[string]interface{}
		if err := json.Unmarshal([]byte(renderDataJSON), &inline); err != nil {
			return nil, errors.Wrap(err, errors.ErrParseError, "--data is not a JSON object")
		}
		for k, v := range inline {
			data[k] = v
		}
	}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "bad argument %q, want key=value", pair)
		}
		data[k] = v
	}
	return data, nil
}

func writeOutput(out *dispatch.Rendered) error {
	switch out.Kind {
	case dispatch.OutputSilent:
		return nil
	case dispatch.OutputBinary:
		_, err := os.Stdout.Write(out.Bytes)
		return err
	default:
		fmt.Print(out.Text)
		if !strings.HasSuffix(out.Text, "\n") {
			fmt.Println()
		}
		return nil
	}
}
