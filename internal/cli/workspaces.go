package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/match"
	"github.com/artpar/pmctl/internal/postman"
	"github.com/artpar/pmctl/internal/render"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace", "ws"},
		Short:   "Browse Postman workspaces",
	}

	cmd.AddCommand(
		newWorkspacesListCommand(opts),
		newWorkspacesShowCommand(opts),
	)

	return cmd
}

func newWorkspacesListCommand(opts *rootOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accessible workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, prof, err := opts.session()
			if err != nil {
				return err
			}

			workspaces, err := client.ListWorkspaces(cmd.Context())
			if err != nil {
				return err
			}

			if search != "" {
				ranked := match.FuzzyAll(search, workspaces, func(ws postman.Workspace) string { return ws.Name })
				workspaces = workspaces[:0]
				for _, r := range ranked {
					workspaces = append(workspaces, r.Item)
				}
			} else {
				workspaces = sortedByName(workspaces, func(ws postman.Workspace) string { return ws.Name })
			}

			if opts.JSON {
				return outputJSON(cmd, workspaces)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Title(fmt.Sprintf("Workspaces (%s)", profileLabel(prof))))

			rows := make([][]string, len(workspaces))
			for i, ws := range workspaces {
				rows[i] = []string{ws.Name, ws.ID, ws.Type}
			}
			fmt.Fprintln(out, render.Table([]string{"Name", "ID", "Type"}, rows))
			fmt.Fprintln(out, render.Total(len(workspaces), "workspace"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter workspaces by fuzzy name match")

	return cmd
}

func newWorkspacesShowCommand(opts *rootOptions) *cobra.Command {
	var copyResolvedID bool

	cmd := &cobra.Command{
		Use:   "show WORKSPACE",
		Short: "Show one workspace by name or ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.session()
			if err != nil {
				return err
			}

			ent, err := resolveWorkspace(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			ws, err := client.GetWorkspace(cmd.Context(), ent.ID)
			if err != nil {
				return err
			}

			if opts.JSON {
				return outputJSON(cmd, ws)
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.Fields([][2]string{
				{"Name", ws.Name},
				{"ID", ws.ID},
				{"Type", ws.Type},
				{"Visibility", valueOr(ws.Visibility, "-")},
				{"Description", valueOr(ws.Description, "-")},
			}))
			if copyResolvedID {
				copyID(cmd, ws.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyResolvedID, "copy-id", false, "Copy the resolved workspace ID to the clipboard")

	return cmd
}

// profileLabel names a profile for table titles, preferring its label.
func profileLabel(prof config.Profile) string {
	if prof.Label != "" {
		return prof.Label
	}
	return prof.Name
}
