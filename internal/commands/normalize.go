package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deweydb/dewey/internal/apperr"
)

// NewNormalizeCmd prints the canonical form of a backend rejection read from stdin
func NewNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Normalize a backend rejection payload read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), apperr.Normalize(json.RawMessage(b)))
		},
	}
}
