package generator

// Actions understood by the Router. Anything else is answered like chat.
const (
	ActionChat         = "chat"
	ActionGenerateSpec = "generate_spec"
)

// DefaultOutputDir labels document paths when the payload does not name a directory.
const DefaultOutputDir = "./specs"

// Payload is the inbound invocation body.
//
// Prompt and OutputDir are pointers so an absent key can be told apart from an empty string.
type Payload struct {
	Action      string   `json:"action,omitempty"`
	Prompt      *string  `json:"prompt,omitempty"`
	ProjectName string   `json:"projectName,omitempty"`
	Description string   `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	TechStack   []string `json:"techStack,omitempty"`
	OutputDir   *string  `json:"outputDir,omitempty"`
}

// ResolvedAction returns the action, defaulting to chat.
func (p Payload) ResolvedAction() string {
	if p.Action == "" {
		return ActionChat
	}
	return p.Action
}

// ResolvedOutputDir returns the output directory, defaulting to DefaultOutputDir.
func (p Payload) ResolvedOutputDir() string {
	if p.OutputDir == nil {
		return DefaultOutputDir
	}
	return *p.OutputDir
}

// Document is one generated artifact. Size counts characters, not bytes.
type Document struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

// DocumentSet holds the four documents of one workflow run.
type DocumentSet struct {
	Requirements Document `json:"requirements"`
	Architecture Document `json:"architecture"`
	Backlog      Document `json:"backlog"`
	Trace        Document `json:"trace"`
}

// Ordered returns the documents in generation order.
func (s DocumentSet) Ordered() []Document {
	return []Document{s.Requirements, s.Architecture, s.Backlog, s.Trace}
}

// SpecResult is the outcome of a generate_spec invocation.
type SpecResult struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	ProjectName string       `json:"projectName,omitempty"`
	Files       *DocumentSet `json:"files,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// ChatResponse is returned for chat and unrecognised actions.
type ChatResponse struct {
	Result string `json:"result"`
}
