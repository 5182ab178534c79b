package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/artpar/pmctl/internal/postman"
)

// decorateErrors wraps every RunE in the command tree so API failures
// reach the user with a category-specific recovery hint instead of the
// bare status line.
func decorateErrors(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		decorateErrors(sub)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return describeAPIError(run(cmd, args))
	}
}

// describeAPIError appends a hint matching the failure category. Errors
// that are not API responses pass through untouched.
func describeAPIError(err error) error {
	var apiErr *postman.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.IsAuth():
		return fmt.Errorf("%w (the API key was rejected; \"pmctl profile list\" shows the active profile, \"pmctl profile add NAME --api-key KEY\" replaces its key)", err)
	case apiErr.IsNotFound():
		return fmt.Errorf("%w (the entity does not exist or this key cannot see it)", err)
	case apiErr.IsRateLimited():
		return fmt.Errorf("%w (rate limited; wait a moment and retry)", err)
	case apiErr.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w (the Postman API had a server error; retry shortly)", err)
	}
	return err
}
