package generator

import "unicode/utf8"

// Fixed file names, in generation order.
const (
	RequirementsFile = "10-requirements.md"
	ArchitectureFile = "20-architecture.md"
	BacklogFile      = "30-backlog.md"
	TraceFile        = "trace.yaml"
)

// Document keys as they appear in the response's files mapping.
const (
	DocRequirements = "requirements"
	DocArchitecture = "architecture"
	DocBacklog      = "backlog"
	DocTrace        = "trace"
)

// generatedTexts are the raw model outputs of one run.
type generatedTexts struct {
	requirements string
	architecture string
	backlog      string
	trace        string
}

// assembleDocuments labels each text with its path under outputDir and its character count.
// outputDir is used verbatim; nothing is written.
func assembleDocuments(outputDir string, texts generatedTexts) DocumentSet {
	return DocumentSet{
		Requirements: newDocument(outputDir, RequirementsFile, texts.requirements),
		Architecture: newDocument(outputDir, ArchitectureFile, texts.architecture),
		Backlog:      newDocument(outputDir, BacklogFile, texts.backlog),
		Trace:        newDocument(outputDir, TraceFile, texts.trace),
	}
}

func newDocument(outputDir, name, content string) Document {
	return Document{
		Path:    outputDir + "/" + name,
		Content: content,
		Size:    utf8.RuneCountInString(content),
	}
}
