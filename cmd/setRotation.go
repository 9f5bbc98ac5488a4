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
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setRotationCmd represents the setRotation command
var setRotationCmd = &cobra.Command{
	Use:   "set-rotation <footprint> <degrees>",
	Short: "Set the rotation offset of a footprint.",
	Long: `Store a rotation offset for a footprint. The offset is added to the
exported rotation of every matching component in CPL output, to
correct for assembly vendors whose zero orientation differs from
the pcb tool's.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		footprint := args[0]
		degrees, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("failed to parse rotation: %s", args[1])
		}

		library, err := openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open parts library: %w", err)
		}
		defer library.Close()

		if err := library.SetRotation(footprint, degrees); err != nil {
			return err
		}

		logger.Info("set rotation",
			zap.String("footprint", footprint),
			zap.Float64("degrees", degrees),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setRotationCmd)
}
