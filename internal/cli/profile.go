package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/artpar/pmctl/internal/render"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage Postman API key profiles",
	}

	cmd.AddCommand(
		newProfileListCommand(opts),
		newProfileAddCommand(opts),
		newProfileRemoveCommand(opts),
		newProfileSwitchCommand(opts),
		newProfileSetWorkspaceCommand(opts),
		newProfileWhoamiCommand(opts),
	)

	return cmd
}

func newProfileListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			cfg, err := store.Load()
			if err != nil {
				return err
			}

			if opts.JSON {
				type profileRow struct {
					Name      string `json:"name"`
					Label     string `json:"label,omitempty"`
					Default   bool   `json:"default"`
					Workspace string `json:"workspace,omitempty"`
					APIKey    string `json:"api_key"`
				}
				rows := make([]profileRow, 0, len(cfg.Profiles))
				for _, name := range cfg.Names() {
					p := cfg.Profiles[name]
					rows = append(rows, profileRow{
						Name:      name,
						Label:     p.Label,
						Default:   name == cfg.DefaultProfile,
						Workspace: p.Workspace,
						APIKey:    render.MaskKey(p.APIKey),
					})
				}
				return outputJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Title("Profiles"))

			var rows [][]string
			for _, name := range cfg.Names() {
				p := cfg.Profiles[name]
				def := ""
				if name == cfg.DefaultProfile {
					def = "✓"
				}
				rows = append(rows, []string{
					name,
					p.Label,
					def,
					render.Truncate(p.Workspace, 15),
					render.MaskKey(p.APIKey),
				})
			}
			fmt.Fprintln(out, render.Table([]string{"Name", "Label", "Default", "Workspace", "API Key"}, rows))
			return nil
		},
	}
}

// profileAddOptions holds flags for profile add.
type profileAddOptions struct {
	APIKey  string
	Label   string
	Default bool
}

func newProfileAddCommand(opts *rootOptions) *cobra.Command {
	addOpts := &profileAddOptions{}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a profile (prompts for the API key when not given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if addOpts.APIKey == "" {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("--api-key is required when not running interactively")
				}
				// Masked prompt keeps the key out of shell history.
				err := huh.NewInput().
					Title(fmt.Sprintf("Postman API key for %q", name)).
					EchoMode(huh.EchoModePassword).
					Value(&addOpts.APIKey).
					Run()
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}
			}
			if addOpts.APIKey == "" {
				return errors.New("API key must not be empty")
			}

			store, err := opts.store()
			if err != nil {
				return err
			}
			cfg, err := store.Add(name, addOpts.APIKey, addOpts.Label, addOpts.Default)
			if err != nil {
				return err
			}

			confirm(cmd, "Profile %q added.", name)
			if cfg.DefaultProfile == name {
				confirm(cmd, "Set as default profile.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addOpts.APIKey, "api-key", "k", "", "Postman API key")
	cmd.Flags().StringVarP(&addOpts.Label, "label", "l", "", "Description label")
	cmd.Flags().BoolVarP(&addOpts.Default, "default", "d", false, "Set as the default profile")

	return cmd
}

func newProfileRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			if _, err := store.Remove(args[0]); err != nil {
				return err
			}
			confirm(cmd, "Profile %q removed.", args[0])
			return nil
		},
	}
}

func newProfileSwitchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "switch NAME",
		Short: "Switch the default profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.store()
			if err != nil {
				return err
			}
			if _, err := store.SetDefault(args[0]); err != nil {
				return err
			}
			confirm(cmd, "Default profile switched to %q.", args[0])
			return nil
		},
	}
}

func newProfileSetWorkspaceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-workspace WORKSPACE",
		Short: "Set a profile's default workspace by name or ID",
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

			store, err := opts.store()
			if err != nil {
				return err
			}
			name, err := store.SetWorkspace(opts.Profile, ent.ID)
			if err != nil {
				return err
			}

			confirm(cmd, "Default workspace for %q set to %s (%s).", name, ent.Name, ent.ID)
			return nil
		},
	}
}

func newProfileWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the active profile's API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := opts.session()
			if err != nil {
				return err
			}

			user, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}

			if opts.JSON {
				return outputJSON(cmd, user)
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.Fields([][2]string{
				{"Email", valueOr(user.Email, "N/A")},
				{"Name", valueOr(user.FullName, "N/A")},
				{"Team", valueOr(user.TeamName, "N/A")},
				{"Domain", valueOr(user.TeamDomain, "N/A")},
			}))
			return nil
		},
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// sortedByName orders entities case-insensitively by name for stable,
// scan-friendly listings.
func sortedByName[T any](items []T, name func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return foldLess(name(out[i]), name(out[j]))
	})
	return out
}
