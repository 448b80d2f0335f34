package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lostlink/intake/internal/config"
	"github.com/lostlink/intake/internal/docparse"
	"github.com/lostlink/intake/internal/enhance"
	"github.com/lostlink/intake/internal/extract"
	"github.com/lostlink/intake/internal/ollama"
	"github.com/lostlink/intake/internal/taxonomy"
)

// --- extract ---

var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract a structured record from an item description",
	Long: `Extract a structured record from an item description.

Examples:
  intake extract "Lost my black iPhone near Central Park yesterday"
  intake extract --post-type FOUND "Found a set of keys at the mall"
  intake extract --file ./flyer.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		postType, _ := cmd.Flags().GetString("post-type")
		rulesOnly, _ := cmd.Flags().GetBool("rules-only")

		var text string
		switch {
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			text, err = docparse.PDFText(data)
			if err != nil {
				return fmt.Errorf("parsing document: %w", err)
			}
		case len(args) > 0:
			text = strings.Join(args, " ")
		default:
			return fmt.Errorf("provide a description as an argument or use --file")
		}

		extractor := extract.New(buildEnhancer(cmd, rulesOnly))

		rec, err := extractor.ExtractFromText(cmd.Context(), text, postType)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

// buildEnhancer wires the generative layer when configured and reachable.
// Any problem here means rule-based-only extraction, never a failure.
func buildEnhancer(cmd *cobra.Command, rulesOnly bool) extract.Enhancer {
	if rulesOnly {
		return nil
	}
	cfg, err := config.Load()
	if err != nil || !cfg.Ollama.Enabled {
		return nil
	}
	client := ollama.New(cfg.Ollama.BaseURL)
	if !client.IsRunning(cmd.Context()) {
		printWarning("Ollama not reachable, extracting with rules only")
		return nil
	}
	return enhance.New(client, cfg.Ollama.ExtractModel)
}

func init() {
	extractCmd.Flags().String("file", "", "PDF file to extract from")
	extractCmd.Flags().String("post-type", "", "LOST or FOUND (inferred from text when omitted)")
	extractCmd.Flags().Bool("rules-only", false, "skip generative enhancement")
}

// --- categories ---

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the item category taxonomy",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("keywords")

		for _, c := range taxonomy.Table {
			if verbose {
				fmt.Printf("%s\n  %s\n", colorize(colorBold, c.Name), strings.Join(c.Keywords, ", "))
			} else {
				fmt.Println(c.Name)
			}
		}
		fmt.Println(taxonomy.Other)
		return nil
	},
}

func init() {
	categoriesCmd.Flags().Bool("keywords", false, "show trigger keywords per category")
}
