package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/match"
	"github.com/artpar/pmctl/internal/postman"
	"github.com/artpar/pmctl/internal/render"
)

// NewEnvironmentsCommand creates the environments command group.
func NewEnvironmentsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "environments",
		Aliases: []string{"environment", "env"},
		Short:   "Browse Postman environments",
	}

	cmd.AddCommand(
		newEnvironmentsListCommand(opts),
		newEnvironmentsShowCommand(opts),
	)

	return cmd
}

func newEnvironmentsListCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List environments in the active workspace scope",
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
			environments, err := client.ListEnvironments(cmd.Context(), workspaceID)
			if err != nil {
				return err
			}

			if search != "" {
				ranked := match.FuzzyAll(search, environments, func(e postman.Environment) string { return e.Name })
				environments = environments[:0]
				for _, r := range ranked {
					environments = append(environments, r.Item)
				}
			} else {
				environments = sortedByName(environments, func(e postman.Environment) string { return e.Name })
			}

			if opts.JSON {
				return outputJSON(cmd, environments)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Title(fmt.Sprintf("Environments (%s)", profileLabel(prof))))

			rows := make([][]string, len(environments))
			for i, e := range environments {
				rows[i] = []string{e.Name, e.ID}
			}
			fmt.Fprintln(out, render.Table([]string{"Name", "ID"}, rows))
			fmt.Fprintln(out, render.Total(len(environments), "environment"))
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter environments by fuzzy name match")

	return cmd
}

func newEnvironmentsShowCommand(opts *rootOptions) *cobra.Command {
	scope := &scopeOptions{}
	var showValues bool
	var copyResolvedID bool

	cmd := &cobra.Command{
		Use:   "show ENVIRONMENT",
		Short: "Show an environment's variables by name or ID",
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
			summary, err := resolveEnvironment(cmd.Context(), client, args[0], workspaceID)
			if err != nil {
				return err
			}
			env, err := client.GetEnvironment(cmd.Context(), summary.ID)
			if err != nil {
				return err
			}

			if opts.JSON {
				if !showValues {
					for i := range env.Values {
						env.Values[i].Value = maskedValue(env.Values[i])
					}
				}
				return outputJSON(cmd, env)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", render.Title(env.Name))

			headers := []string{"Variable", "Type"}
			if showValues {
				headers = append(headers, "Value")
			}
			rows := make([][]string, len(env.Values))
			for i, v := range env.Values {
				row := []string{v.Key, valueOr(v.Type, "default")}
				if showValues {
					value := v.Value
					// Sensitive-looking values stay masked even with --values.
					if render.IsSensitiveKey(v.Key) {
						value = render.MaskValue(value)
					}
					row = append(row, value)
				}
				rows[i] = row
			}
			fmt.Fprintln(out, render.Table(headers, rows))
			if copyResolvedID {
				copyID(cmd, env.ID)
			}
			return nil
		},
	}

	scope.register(cmd)
	cmd.Flags().BoolVarP(&showValues, "values", "v", false, "Show variable values (sensitive ones stay masked)")
	cmd.Flags().BoolVar(&copyResolvedID, "copy-id", false, "Copy the resolved environment ID to the clipboard")

	return cmd
}

func maskedValue(v postman.EnvVar) string {
	if v.Value == "" {
		return ""
	}
	return render.MaskValue(v.Value)
}
