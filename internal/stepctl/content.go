package stepctl

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/render"
)

func loadDocument(cmd *cobra.Command, args []string) (content.Document, error) {
	raw, err := readInput(cmd, args)
	if err != nil {
		return content.Document{}, err
	}
	if json.Valid(raw) {
		return content.Normalize(raw), nil
	}
	var generic any
	if err := decodeValue(raw, &generic); err != nil {
		return content.Document{}, err
	}
	return content.NormalizeValue(generic), nil
}

func renderCmd() *cobra.Command {
	var format string
	var reveal bool
	var width int

	command := &cobra.Command{
		Use:   "render [file]",
		Short: "render lesson content",
		Long:  "render lesson content in any stored shape, as terminal text or as render nodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, args)
			if err != nil {
				return err
			}
			nodes := render.RenderWith(doc, render.Options{RevealAnswers: reveal})
			if strings.ToLower(format) == formatText {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(nodes, width))
				return err
			}
			return writeValue(cmd.OutOrStdout(), format, nodes)
		},
	}
	command.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")
	command.Flags().BoolVar(&reveal, "reveal", false, "show quiz answers")
	command.Flags().IntVar(&width, "width", 80, "text width")
	return command
}

func normalizeCmd() *cobra.Command {
	var format string
	var ids bool

	command := &cobra.Command{
		Use:   "normalize [file]",
		Short: "rewrite content in the canonical block shape",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, args)
			if err != nil {
				return err
			}
			if ids {
				doc, _ = content.EnsureBlockIDs(doc)
			}
			return writeValue(cmd.OutOrStdout(), format, doc)
		},
	}
	command.Flags().StringVar(&format, "format", formatJSON, "output format: json or yaml")
	command.Flags().BoolVar(&ids, "ids", false, "assign ids to blocks that have none")
	return command
}

func statsCmd() *cobra.Command {
	var format string

	command := &cobra.Command{
		Use:   "stats [file]",
		Short: "word count, block counts and reading time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, args)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), format, struct {
				content.Stats
				Hash string `json:"content_hash"`
			}{content.DocumentStats(doc), content.Hash(doc)})
		},
	}
	command.Flags().StringVar(&format, "format", formatJSON, "output format: json or yaml")
	return command
}
