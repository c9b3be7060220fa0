package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

const testContext = "프로젝트 이름: Demo\n"

func TestBuildRequirementsPrompt(t *testing.T) {
	p := BuildRequirementsPrompt(testContext)

	assert.True(t, strings.HasPrefix(p, "다음 프로젝트의 요구사항 문서를 작성해주세요:\n\n"+testContext+"\n\n"))
	assert.Contains(t, p, "# Requirements Document")
	assert.Contains(t, p, "REQ-F-001")
	assert.Contains(t, p, "REQ-NF-001")
	assert.Contains(t, p, "(High/Medium/Low)")
	assert.True(t, strings.HasSuffix(p, "프로젝트 진행을 위한 가정사항을 나열합니다.\n"))
}

func TestBuildArchitecturePrompt(t *testing.T) {
	p := BuildArchitecturePrompt(testContext)

	assert.Contains(t, p, testContext)
	assert.Contains(t, p, "# Architecture Document")
	assert.Contains(t, p, "- COMP-001: Frontend Layer")
	assert.Contains(t, p, "## 7. 보안 고려사항")
}

func TestBuildBacklogPrompt(t *testing.T) {
	p := BuildBacklogPrompt(testContext, "REQ-F-001: login")

	assert.Contains(t, p, "프로젝트 정보:\n"+testContext+"\n\n요구사항 (참고용):\nREQ-F-001: login\n")
	assert.Contains(t, p, "- **태그**: `backend`, `api`\n")
	assert.Contains(t, p, "##### STORY-001: [스토리 제목]")
	assert.Contains(t, p, "- [ ] **TASK-001**: Task 제목 (8h)")
}

func TestBuildBacklogPrompt_TruncatesRequirements(t *testing.T) {
	requirements := strings.Repeat("가", RequirementsExcerptLimit) + "TAIL"
	p := BuildBacklogPrompt(testContext, requirements)

	assert.NotContains(t, p, "TAIL")
	assert.Contains(t, p, strings.Repeat("가", RequirementsExcerptLimit)+"\n")
}

func TestBuildTracePrompt_UsesContextOnly(t *testing.T) {
	p := BuildTracePrompt(testContext)

	assert.Contains(t, p, "프로젝트 정보:\n"+testContext)
	assert.Contains(t, p, `projectName: "프로젝트 이름"`)
	assert.Contains(t, p, "    architectureComponents:\n      - \"COMP-001\"")
	assert.NotContains(t, p, "요구사항 (참고용)")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"multibyte cut", "가나다라", 2, "가나"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := excerpt(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
