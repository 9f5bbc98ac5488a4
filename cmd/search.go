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
)

var searchLimit int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>...",
	Short: "Search the imported parts catalog.",
	Long: `Search the imported parts catalog by part number, manufacturer, or
description.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open parts library: %w", err)
		}
		defer library.Close()

		parts, err := library.Search(strings.Join(args, " "), searchLimit)
		if err != nil {
			return err
		}

		if len(parts) == 0 {
			fmt.Println("no matching parts")
			return nil
		}

		for _, part := range parts {
			fmt.Printf("%-10s %-24s %-16s %s\n",
				part.SupplierRef, part.PartNumber, part.Package, part.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
}
