package cmd

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"agentcore_spec_agent/server"
)

var invokePayload string

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Handle one invocation payload and print the JSON response",
	Long: `Handle one invocation payload exactly as POST /invocations would and print the
response as JSON. The payload is read from --payload, or from stdin when the flag is absent.

Examples:
  spec-agent invoke --payload '{"prompt": "hello"}'
  echo '{"action": "generate_spec", "projectName": "Shop"}' | spec-agent invoke`,
	Args: cobra.NoArgs,
	RunE: runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVar(&invokePayload, "payload", "", "invocation payload as a JSON object")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	var in io.Reader = strings.NewReader(invokePayload)
	if !cmd.Flags().Changed("payload") {
		in = cmd.InOrStdin()
	}
	payload, err := server.DecodePayload(in)
	if err != nil {
		return err
	}

	rt, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.shutdown()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rt.router.Handle(cmd.Context(), payload))
}
