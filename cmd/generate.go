/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/litellm-chat/service"
	"github.com/tieubaoca/litellm-chat/types"
)

// generateCmd runs a single generation through the configured backend and
// prints the same JSON body the server would send.
var generateCmd = &cobra.Command{
	Use:   "generate <message>",
	Short: "Generate a response for one message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return errors.New(types.DetailEmptyMessage)
		}

		generator, err := service.NewGenerator(cfg)
		if err != nil {
			return err
		}
		if closer, ok := generator.(io.Closer); ok {
			defer closer.Close()
		}

		text, err := generator.Generate(cmd.Context(), message)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(types.GenerateResponse{Response: text})
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
