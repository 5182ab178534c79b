// Package cli wires the pmctl command tree: profile management plus
// read-only browsing of workspaces, collections, environments, and
// requests through the Postman API.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/config"
	"github.com/artpar/pmctl/internal/postman"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	Profile    string
	JSON       bool
	ConfigPath string
	APIURL     string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "pmctl",
		Short:         "Browse Postman workspaces, collections, and environments from the terminal",
		Long:          "pmctl is a read-only terminal client for the Postman API.\nIt manages named API-key profiles and renders workspaces, collections,\nenvironments, and requests as tables, trees, or JSON.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.Profile, "profile", "p", "", "Profile to use (default: the configured default profile)")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to the config file")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", postman.DefaultBaseURL, "Base URL of the Postman API")

	cmd.AddCommand(
		NewProfileCommand(opts),
		NewWorkspacesCommand(opts),
		NewCollectionsCommand(opts),
		NewEnvironmentsCommand(opts),
		NewRequestsCommand(opts),
	)
	decorateErrors(cmd)

	return cmd
}

// store opens the profile store at the configured or default location.
func (o *rootOptions) store() (*config.Store, error) {
	path := o.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.NewStore(path), nil
}

// session loads the active profile and builds a client for it.
func (o *rootOptions) session() (*postman.Client, config.Profile, error) {
	store, err := o.store()
	if err != nil {
		return nil, config.Profile{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, config.Profile{}, err
	}
	prof, err := cfg.Get(o.Profile)
	if err != nil {
		return nil, config.Profile{}, err
	}

	client := postman.NewClient(prof.APIKey, postman.WithBaseURL(o.APIURL))
	return client, prof, nil
}
