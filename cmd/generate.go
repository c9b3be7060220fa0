package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"agentcore_spec_agent/generator"
	"agentcore_spec_agent/publisher"
)

var (
	genName        string
	genDescription string
	genFeatures    []string
	genTechStack   []string
	genOutputDir   string
	genWrite       bool
	genHTML        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate specification documents for a project",
	Long: `Run the generate_spec workflow locally: requirements, architecture, backlog and
traceability matrix, in that order, each one a single model call.

By default only a summary is printed. With --write the documents are saved under
--out, and --html additionally renders each Markdown document to HTML.

Examples:
  spec-agent generate --name Shop --description "Online shop" --feature Login --feature Cart --tech Go
  spec-agent generate --name Shop --out ./docs/specs --write --html`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genName, "name", "", "project name (required)")
	generateCmd.Flags().StringVar(&genDescription, "description", "", "project description")
	generateCmd.Flags().StringArrayVar(&genFeatures, "feature", nil, "key feature (repeatable)")
	generateCmd.Flags().StringArrayVar(&genTechStack, "tech", nil, "technology in the stack (repeatable)")
	generateCmd.Flags().StringVar(&genOutputDir, "out", generator.DefaultOutputDir, "directory the document paths point into")
	generateCmd.Flags().BoolVar(&genWrite, "write", false, "write the documents to --out")
	generateCmd.Flags().BoolVar(&genHTML, "html", false, "also write an HTML rendering of each Markdown document (implies --write)")
	_ = generateCmd.MarkFlagRequired("name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	outDir := genOutputDir
	payload := generator.Payload{
		Action:      generator.ActionGenerateSpec,
		ProjectName: genName,
		Description: genDescription,
		Features:    genFeatures,
		TechStack:   genTechStack,
		OutputDir:   &outDir,
	}

	result := rt.agent.GenerateSpec(ctx, payload)
	out := cmd.OutOrStdout()
	if !result.Success {
		fmt.Fprintln(out, errorStyle.Render("Error:"), result.Error)
		return errors.New(result.Error)
	}
	printSummary(out, result)

	if !genWrite && !genHTML {
		return nil
	}
	written, err := publisher.New(publisher.Options{HTML: genHTML}).Publish(ctx, result)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Written:"))
	for _, path := range written {
		fmt.Fprintln(out, successStyle.Render("  ✓ "+path))
	}
	return nil
}

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

func printSummary(w io.Writer, result generator.SpecResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(result.Message))
	fmt.Fprintln(w)
	for _, doc := range result.Files.Ordered() {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-28s", doc.Path)), mutedStyle.Render(fmt.Sprintf("%d chars", doc.Size)))
	}
}
