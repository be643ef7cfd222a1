package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/deweydb/dewey/internal/platform"
)

// NewVersionCmd prints build and platform information
func NewVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type resp struct {
				Version string          `json:"version"`
				Go      string          `json:"go"`
				OS      platform.OSInfo `json:"os"`
			}
			return printJSON(cmd.OutOrStdout(), resp{
				Version: version,
				Go:      runtime.Version(),
				OS:      platform.DetectOS(),
			})
		},
	}
}
