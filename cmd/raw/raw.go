package raw

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/utils"
)

// RawCmd represents the raw command
var RawCmd = &cobra.Command{
	Use:   "raw <method> <path>",
	Short: "Send a raw API request",
	Long: `Send a request straight to the Finsec API with the current session token
and print the decoded response. Useful for endpoints the CLI has no command for.

No money-movement checks run on raw requests.`,
	Example: `  finsec raw GET /api/users/profile
  finsec raw PUT /api/notifications/12/read
  finsec raw POST /api/analytics/spending --data '{"period":"week"}' -o json`,
	Args: cobra.ExactArgs(2),
	RunE: runRaw,
}

var methods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

func runRaw(cmd *cobra.Command, args []string) error {
	a, err := app.FromCommand(cmd)
	if err != nil {
		return err
	}

	method := strings.ToUpper(args[0])
	if !methods[method] {
		return utils.NewValidationError("method", "must be GET, POST, PUT, PATCH or DELETE")
	}

	var body interface{}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		if !json.Valid([]byte(data)) {
			return utils.NewValidationError("data", "must be valid JSON")
		}
		body = json.RawMessage(data)
	}

	out, err := a.API.Raw(cmd.Context(), method, args[1], a.Session.Token(), body)
	if err != nil {
		return err
	}
	if out == nil {
		format.PrintSuccess("✓ %s %s", method, args[1])
		return nil
	}
	return format.Print(out)
}

func init() {
	RawCmd.Flags().StringP("data", "d", "", "JSON request body")
}
