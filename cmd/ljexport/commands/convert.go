package commands

import (
	"path/filepath"
	"strings"

	"ljexport/lib/archive/exporters"
	"ljexport/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var (
	convertFormat *string
	convertOutput *string
)

func init() {
	convertFormat = convertCmd.Flags().String("format", "", "Target format: yaml, json or xml.")
	convertOutput = convertCmd.Flags().String("output", "", "Output file path; defaults to the input with the new extension.")
	convertCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <input-file> --format <yaml|json|xml> [--output <path>]",
	Short: "Converts an archive file between the supported encodings.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := args[0]

		inputFormat, err := exporters.DetectFormat(input)
		if err != nil {
			serviceutil.Fatal("failed to detect input format", err)
		}
		outputFormat := exporters.Format(strings.ToLower(*convertFormat))

		output := *convertOutput
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(outputFormat)
		}

		export, err := exporters.Load(input, inputFormat)
		if err != nil {
			serviceutil.Fatal("failed to read archive", err)
		}
		err = exporters.Save(export, output, outputFormat)
		if err != nil {
			serviceutil.Fatal("failed to write archive", err)
		}
	},
}
