package generator

import (
	"context"
	"errors"
	"strings"
)

// NoPromptProvided stands in for an absent prompt.
const NoPromptProvided = "No prompt provided"

// Router dispatches an invocation payload to the chat responder or the spec workflow.
type Router struct {
	agent   *Agent
	metrics Recorder
}

func NewRouter(agent *Agent) (*Router, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	return &Router{agent: agent, metrics: agent.metrics}, nil
}

// Handle returns a SpecResult for generate_spec and a ChatResponse for everything else,
// including a missing or unknown action. The chat branch cannot fail.
func (r *Router) Handle(ctx context.Context, p Payload) any {
	action := p.ResolvedAction()
	r.metrics.RecordInvocation(ctx, action)

	if action == ActionGenerateSpec {
		return r.agent.GenerateSpec(ctx, p)
	}
	prompt := NoPromptProvided
	if p.Prompt != nil {
		prompt = *p.Prompt
	}
	return ChatResponse{Result: ChatMessage(prompt)}
}

// ChatMessage echoes prompt and lists the available actions.
func ChatMessage(prompt string) string {
	var sb strings.Builder
	sb.WriteString("Hello! You said: '" + prompt + "'\n\n")
	sb.WriteString("I'm an AgentCore HTTP agent with spec generation capabilities!\n\n")
	sb.WriteString("Available actions:\n")
	sb.WriteString("- chat: Have a conversation with me\n")
	sb.WriteString("- generate_spec: Generate project specification documents\n\n")
	sb.WriteString("Example spec generation:\n")
	sb.WriteString(`{"action": "generate_spec", "projectName": "My Project", "description": "A cool project", "features": ["Feature 1"], "techStack": ["Python"]}`)
	return sb.String()
}
