package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"simplerquests/internal/quest"
)

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}

func newParseCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse objective text into JSON",
		Long: `Parse reads objective lines from stdin (or --file) and prints them as JSON.

A leading + marks an objective complete, - marks it failed and / marks it secret.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, file)
			if err != nil {
				return fmt.Errorf("read objectives: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quest.ParseMulti(string(b)))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read objectives from file")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render quest or objective JSON back into editable text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, file)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			var objs []quest.Objective
			if err := json.Unmarshal(b, &objs); err != nil {
				var q quest.Quest
				if qerr := json.Unmarshal(b, &q); qerr != nil {
					return fmt.Errorf("decode objectives: %w", err)
				}
				objs = q.Objectives
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), quest.RenderObjectives(objs))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read JSON from file")
	return cmd
}
