package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/match"
	"github.com/artpar/pmctl/internal/postman"
	"github.com/artpar/pmctl/internal/render"
)

// scopeOptions holds the workspace-scoping flags shared by collection and
// environment commands.
type scopeOptions struct {
	Workspace string
	All       bool
}

func (s *scopeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.Workspace, "workspace", "w", "", "Scope to a workspace (name or ID)")
	cmd.Flags().BoolVarP(&s.All, "all", "a", false, "Ignore the profile's default workspace")
}

// NewCollectionsCommand creates the collections command group.
func NewCollectionsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "Browse Postman collections",
	}

	cmd.AddCommand(
		newCollectionsListCommand(opts),
		newCollectionsShowCommand(opts),
	)

	return cmd
}

func newCollectionsListCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections in the active workspace scope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, prof, err := opts.session()
			if err != nil {
				return err
			}

			workspaceID, err := resolveScope(cmd.Context(), client, prof, scope.Workspace, scope.All)
			if err != nil {
				return err
			}
			collections, err := client.ListCollections(cmd.Context(), workspaceID)
			if err != nil {
				return err
			}

			if search != "" {
				ranked := match.FuzzyAll(search, collections, func(c postman.CollectionSummary) string { return c.Name })
				collections = collections[:0]
				for _, r := range ranked {
					collections = append(collections, r.Item)
				}
			} else {
				collections = sortedByName(collections, func(c postman.CollectionSummary) string { return c.Name })
			}

			if opts.JSON {
				return outputJSON(cmd, collections)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Title(fmt.Sprintf("Collections (%s)", profileLabel(prof))))

			rows := make([][]string, len(collections))
			for i, c := range collections {
				rows[i] = []string{c.Name, c.UID, dateOnly(c.UpdatedAt)}
			}
			fmt.Fprintln(out, render.Table([]string{"Name", "UID", "Updated"}, rows))
			fmt.Fprintln(out, render.Total(len(collections), "collection"))
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter collections by fuzzy name match")

	return cmd
}

func newCollectionsShowCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}
	var copyResolvedID bool

	cmd := &cobra.Command{
		Use:   "show COLLECTION",
		Short: "Show a collection's folders and requests as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, prof, err := opts.session()
			if err != nil {
				return err
			}

			workspaceID, err := resolveScope(cmd.Context(), client, prof, scope.Workspace, scope.All)
			if err != nil {
				return err
			}
			summary, err := resolveCollection(cmd.Context(), client, args[0], workspaceID)
			if err != nil {
				return err
			}
			collection, err := client.GetCollection(cmd.Context(), summary.UID)
			if err != nil {
				return err
			}

			if opts.JSON {
				return outputJSON(cmd, collection)
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.CollectionTree(collection))
			if copyResolvedID {
				copyID(cmd, summary.UID)
			}
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().BoolVar(&copyResolvedID, "copy-id", false, "Copy the resolved collection UID to the clipboard")

	return cmd
}

// dateOnly trims an ISO timestamp to its date part.
func dateOnly(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
