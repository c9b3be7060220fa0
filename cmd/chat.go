package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentcore_spec_agent/generator"
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Print the chat action's reply for a prompt",
	Long: `Print what the "chat" action answers. No model is called, so no configuration
or credentials are needed. Without arguments the prompt counts as not provided.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	prompt := generator.NoPromptProvided
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), generator.ChatMessage(prompt))
	return err
}
