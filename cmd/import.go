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
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <catalog.xlsx>",
	Short: "Import a supplier parts catalog.",
	Long: `Import a supplier parts catalog from an xlsx price list into the
local library, so search and interactive assignment can use it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		if !strings.HasSuffix(strings.ToLower(src), ".xls") &&
			!strings.HasSuffix(strings.ToLower(src), ".xlsx") {
			return fmt.Errorf("catalog must be an excel spreadsheet: %s", src)
		}

		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open parts library: %w", err)
		}
		defer library.Close()

		count, err := library.ImportCatalog(src)
		if err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}

		logger.Info("imported catalog",
			zap.String("path", src),
			zap.Int("parts", count),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
