/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pcbfab/kfab/lib"
)

var (
	bomOnly  bool
	cplOnly  bool
	merge    bool
	assign   bool
	quantity int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <netlist.xml> [positions.csv]",
	Short: "Generate per-supplier BOM files and a CPL file.",
	Long: `Generate reads the eeschema intermediate netlist and a placement
export and writes one BOM csv per supplier plus a CPL csv into the
output directory.

The placement file may come from any exporter; its columns are
matched by header name, not position. Warnings about duplicate,
unmatched, or unassigned records are reported, never swallowed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !bomOnly && len(args) < 2 {
			return fmt.Errorf("a positions file is required unless --bom-only is set")
		}

		netlistText, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open parts library: %w", err)
		}
		defer library.Close()

		if assign {
			if err := assignParts(library, args[0], netlistText); err != nil {
				return err
			}
		}

		output := viper.GetString("output")
		if err := os.MkdirAll(output, 0755); err != nil {
			return err
		}

		if !cplOnly {
			if err := writeBOMs(library, string(netlistText), output); err != nil {
				return err
			}
		}

		if !bomOnly {
			if err := writeCPL(library, string(netlistText), args[1], output); err != nil {
				return err
			}
		}

		return nil
	},
}

func writeBOMs(library *lib.Library, netlistText, output string) error {
	opts := []lib.BOMOption{lib.BOMWithSupplierRefLookup(library.Association)}
	if merge {
		opts = append(opts, lib.BOMWithMerge(quantity))
	}

	blobs, warnings, err := lib.GenerateBOM(netlistText, opts...)
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	suppliers := []string{}
	for supplier := range blobs {
		suppliers = append(suppliers, supplier)
	}
	sort.Strings(suppliers)

	for _, supplier := range suppliers {
		path := filepath.Join(output, lib.BOMFilename(supplier))
		if err := os.WriteFile(path, []byte(blobs[supplier]), 0644); err != nil {
			return err
		}

		logger.Info("wrote BOM",
			zap.String("supplier", supplier),
			zap.String("path", path),
		)
	}

	return nil
}

func writeCPL(library *lib.Library, netlistText, positionsPath, output string) error {
	positionsText, err := os.ReadFile(positionsPath)
	if err != nil {
		return err
	}

	rotations, err := library.Rotations()
	if err != nil {
		return err
	}

	blob, warnings, err := lib.GenerateCPL(
		netlistText, string(positionsText), lib.CPLWithRotations(rotations),
	)
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	path := filepath.Join(output, lib.CPLFilename)
	if err := os.WriteFile(path, []byte(blob), 0644); err != nil {
		return err
	}

	logger.Info("wrote CPL", zap.String("path", path))
	return nil
}

/*
Prompt for the supplier reference of every component that has
neither a SupplierRef field nor a stored association, and remember
the answers.
*/
func assignParts(library *lib.Library, name string, netlistText []byte) error {
	components, err := lib.ParseComponents(name, strings.NewReader(string(netlistText)))
	if err != nil {
		return err
	}

	for _, component := range components {
		if component.SupplierRef != "" {
			continue
		}
		if _, ok := library.Association(component.Value, component.Footprint); ok {
			continue
		}

		fmt.Printf("supplier ref for %s (%s, %s), empty to skip\n",
			component.Reference, component.Value, component.Footprint)
		ref := prompt.Input("> ", partCompleter(library))
		if ref == "" {
			continue
		}

		if err := library.Associate(component.Value, component.Footprint, ref); err != nil {
			return err
		}
	}

	return nil
}

func partCompleter(library *lib.Library) prompt.Completer {
	return func(d prompt.Document) []prompt.Suggest {
		text := d.GetWordBeforeCursor()
		if len(text) < 2 {
			return []prompt.Suggest{}
		}

		parts, err := library.Search(text, 10)
		if err != nil {
			return []prompt.Suggest{}
		}

		suggestions := []prompt.Suggest{}
		for _, part := range parts {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        part.SupplierRef,
				Description: part.Description,
			})
		}

		return prompt.FilterHasPrefix(suggestions, text, true)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&bomOnly, "bom-only", false, "generate BOM files only")
	generateCmd.Flags().BoolVar(&cplOnly, "cpl-only", false, "generate the CPL file only")
	generateCmd.Flags().BoolVar(&merge, "merge", false, "merge equal parts into quantity lines")
	generateCmd.Flags().BoolVar(&assign, "assign", false, "prompt for missing supplier references")
	generateCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "board quantity multiplier for --merge")
}
