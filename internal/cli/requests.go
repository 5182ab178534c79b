package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/match"
	"github.com/artpar/pmctl/internal/postman"
	"github.com/artpar/pmctl/internal/render"
)

// NewRequestsCommand creates the requests command group.
func NewRequestsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"request", "req"},
		Short:   "Browse requests inside a collection",
	}

	cmd.AddCommand(
		newRequestsListCommand(opts),
		newRequestsShowCommand(opts),
	)

	return cmd
}

func newRequestsListCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}
	var search string

	cmd := &cobra.Command{
		Use:   "list COLLECTION",
		Short: "List a collection's requests, optionally fuzzy-filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, prof, err := opts.session()
			if err != nil {
				return err
			}

			flat, err := fetchRequests(cmd, client, prof, args[0], scope)
			if err != nil {
				return err
			}

			// --search ranks by match quality instead of document order.
			if search != "" {
				ranked := match.FuzzyAll(search, flat, func(r postman.FlatRequest) string { return r.Name })
				flat = flat[:0]
				for _, r := range ranked {
					flat = append(flat, r.Item)
				}
			}

			if opts.JSON {
				return outputJSON(cmd, flat)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, len(flat))
			for i, r := range flat {
				rows[i] = []string{r.Name, render.Method(r.Method), r.Folder, r.URL}
			}
			fmt.Fprintln(out, render.Table([]string{"Name", "Method", "Folder", "URL"}, rows))
			fmt.Fprintln(out, render.Total(len(flat), "request"))
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter requests by fuzzy name match")

	return cmd
}

func newRequestsShowCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}

	cmd := &cobra.Command{
		Use:   "show COLLECTION REQUEST",
		Short: "Show one request's full definition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, prof, err := opts.session()
			if err != nil {
				return err
			}

			flat, err := fetchRequests(cmd, client, prof, args[0], scope)
			if err != nil {
				return err
			}

			candidates := make([]match.Entity, len(flat))
			for i, r := range flat {
				candidates[i] = match.Entity{ID: r.ID, Name: r.Name}
			}
			ent, err := resolveEntity("request", args[1], candidates)
			if err != nil {
				return err
			}

			var req postman.FlatRequest
			for _, r := range flat {
				if r.ID == ent.ID && r.Name == ent.Name {
					req = r
					break
				}
			}

			if opts.JSON {
				return outputJSON(cmd, req)
			}
			printRequest(cmd, req)
			return nil
		},
	}

	scope.register(cmd)

	return cmd
}

// fetchRequests resolves a collection token and returns its flattened
// request list.
func fetchRequests(cmd *cobra.Command, client *postman.Client, prof config.Profile, token string, scope *scopeOptions) ([]postman.FlatRequest, error) {
	workspaceID, err := resolveScope(cmd.Context(), client, prof, scope.Workspace, scope.All)
	if err != nil {
		return nil, err
	}
	summary, err := resolveCollection(cmd.Context(), client, token, workspaceID)
	if err != nil {
		return nil, err
	}
	collection, err := client.GetCollection(cmd.Context(), summary.UID)
	if err != nil {
		return nil, err
	}
	return collection.Requests(), nil
}

func printRequest(cmd *cobra.Command, req postman.FlatRequest) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %s\n", render.Method(req.Method), render.Title(req.Name))
	fields := [][2]string{{"URL", req.URL}}
	if req.Folder != "" {
		fields = append(fields, [2]string{"Folder", req.Folder})
	}
	if req.ID != "" {
		fields = append(fields, [2]string{"ID", req.ID})
	}
	fmt.Fprintln(out, render.Fields(fields))

	if req.Spec == nil {
		return
	}
	printKVSection(cmd, "Headers", req.Spec.Headers)
	printKVSection(cmd, "Query Params", req.Spec.URL.Query)
	printKVSection(cmd, "Path Variables", req.Spec.URL.Variables)

	if req.Spec.Body != nil && req.Spec.Body.Raw != "" {
		fmt.Fprintf(out, "\n%s\n%s\n", render.Title(fmt.Sprintf("Body (%s)", valueOr(req.Spec.Body.Mode, "raw"))), req.Spec.Body.Raw)
	}
}

func printKVSection(cmd *cobra.Command, title string, pairs []postman.KV) {
	if len(pairs) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", render.Title(title))
	for _, kv := range pairs {
		fmt.Fprintf(out, "  %s: %s\n", kv.Key, kv.Value)
	}
}
