package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deweydb/dewey/internal/route"
)

type routeResult struct {
	State    route.State    `json:"state"`
	Decision route.Decision `json:"decision"`
}

// NewRouteCmd resolves a routing snapshot without opening a window
func NewRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Resolve the routing decision for a JSON snapshot on stdin",
		Long: `Reads a routing snapshot such as
  {"auth_loaded":true,"signed_in":true,"user_id":"u1","current_path":"/","projects_loaded":true,"projects":[{"id":7}]}
and prints the app state and the decision the shell would take.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in route.Inputs
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&in); err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}
			if path, _ := cmd.Flags().GetString("path"); path != "" {
				in.CurrentPath = path
			}
			in.CurrentPath = route.Clean(in.CurrentPath)

			res := routeResult{
				State:    route.Classify(in),
				Decision: route.NewResolver(route.DefaultPaths()).Resolve(in),
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().String("path", "", "Override current_path of the snapshot")
	return cmd
}
