package generator

import "fmt"

// RequirementsExcerptLimit bounds how much of the requirements document the backlog prompt quotes.
const RequirementsExcerptLimit = 2000

// requirementsTemplate takes the project context.
const requirementsTemplate = `다음 프로젝트의 요구사항 문서를 작성해주세요:

%s

Markdown 형식으로 다음 섹션을 포함해주세요:

# Requirements Document

## 1. 프로젝트 개요
프로젝트의 전반적인 목적과 배경을 설명합니다.

## 2. 목표
프로젝트가 달성하고자 하는 구체적인 목표를 나열합니다.

## 3. 기능 요구사항
각 기능 요구사항에 다음 형식으로 ID를 부여해주세요:
- REQ-F-001: 첫 번째 기능 요구사항
- REQ-F-002: 두 번째 기능 요구사항
각 요구사항은 명확하고 측정 가능하며 우선순위(High/Medium/Low)를 포함합니다.

## 4. 비기능 요구사항
각 비기능 요구사항에 다음 형식으로 ID를 부여해주세요:
- REQ-NF-001: 첫 번째 비기능 요구사항 (성능, 보안, 확장성 등)
- REQ-NF-002: 두 번째 비기능 요구사항

## 5. 제약사항
프로젝트의 제약사항과 한계를 명시합니다.

## 6. 가정사항
프로젝트 진행을 위한 가정사항을 나열합니다.
`

// architectureTemplate takes the project context.
const architectureTemplate = `다음 프로젝트의 아키텍처 문서를 작성해주세요:

%s

Markdown 형식으로 다음 섹션을 포함해주세요:

# Architecture Document

## 1. 시스템 개요
시스템의 전반적인 구조와 핵심 개념을 설명합니다.

## 2. 시스템 컨텍스트
시스템이 외부 시스템 및 사용자와 어떻게 상호작용하는지 설명합니다.

## 3. 컴포넌트 구조
각 컴포넌트에 다음 형식으로 ID를 부여해주세요:
- COMP-001: Frontend Layer
- COMP-002: Backend API
- COMP-003: Database Layer
각 컴포넌트의 책임, 기술, 의존성을 명시합니다.

## 4. 데이터 흐름
주요 데이터 흐름과 처리 과정을 설명합니다.

## 5. 기술 스택 상세
Frontend, Backend, Database, Infrastructure 등으로 분류하여 상세히 설명합니다.

## 6. 배포 전략
배포 방식, 환경 구성, CI/CD 파이프라인을 설명합니다.

## 7. 보안 고려사항
인증, 인가, 데이터 보호 등 보안 측면을 다룹니다.
`

// backlogTemplate takes the project context, then the requirements excerpt.
const backlogTemplate = `다음 프로젝트의 백로그를 Markdown 형식으로 작성해주세요:

프로젝트 정보:
%s

요구사항 (참고용):
%s

Markdown 형식으로 다음 구조를 따라주세요:

# 프로젝트 백로그

## 프로젝트: [프로젝트 이름]

---

## Sprint 1: 기반 구축
**기간**: 2025-10-15 ~ 2025-10-28 (2주)

### Epic: [Epic 제목] (EPIC-001)
**우선순위**: High | **상태**: Todo | **예상**: 80h

#### User Stories

##### STORY-001: [스토리 제목]
- **설명**: 스토리 상세 설명
- **Type**: Story
- **우선순위**: High
- **상태**: Todo
- **예상 시간**: 40h
- **태그**: ` + "`backend`, `api`" + `
- **의존성**: 없음

**인수 기준**:
- [ ] 인수 기준 1
- [ ] 인수 기준 2
- [ ] 인수 기준 3

**Tasks**:
- [ ] **TASK-001**: Task 제목 (8h)
- [ ] **TASK-002**: Task 제목 (16h)
- [ ] **TASK-003**: Task 제목 (16h)

---

각 Sprint는 2주 분량의 작업으로 구성하고, 요구사항과 연계된 백로그 항목들을 생성해주세요.
Epic → User Story → Task 계층으로 구조화하고, 의존성 관계를 명시해주세요.
체크박스 형식으로 작성하여 진행상황을 추적할 수 있게 해주세요.
`

// traceTemplate takes the project context.
// The body refers to IDs from the other three documents, but only the context is filled in.
const traceTemplate = `다음 프로젝트의 추적성 매트릭스를 YAML 형식으로 작성해주세요:

프로젝트 정보:
%s

이 매트릭스는 요구사항 ID, 아키텍처 컴포넌트 ID, 백로그 항목 ID 간의 관계를 명시합니다.

YAML 형식으로 다음 구조를 따라주세요:

projectName: "프로젝트 이름"
traces:
  - requirementId: "REQ-F-001"
    requirementTitle: "요구사항 제목"
    architectureComponents:
      - "COMP-001"
      - "COMP-002"
    backlogItems:
      - "BACK-001"
      - "BACK-002"
    testCases:
      - "TEST-001"

  - requirementId: "REQ-F-002"
    requirementTitle: "두 번째 요구사항"
    architectureComponents:
      - "COMP-003"
    backlogItems:
      - "BACK-003"
    testCases:
      - "TEST-002"

요구사항, 아키텍처, 백로그 문서에서 추출한 ID들을 사용하여 매핑을 생성해주세요.
각 요구사항이 어떤 컴포넌트에서 구현되고, 어떤 백로그 항목과 연결되는지 명확히 해주세요.
`

// BuildRequirementsPrompt asks for the requirements document.
func BuildRequirementsPrompt(projectContext string) string {
	return fmt.Sprintf(requirementsTemplate, projectContext)
}

// BuildArchitecturePrompt asks for the architecture document.
func BuildArchitecturePrompt(projectContext string) string {
	return fmt.Sprintf(architectureTemplate, projectContext)
}

// BuildBacklogPrompt quotes at most RequirementsExcerptLimit characters of the requirements.
func BuildBacklogPrompt(projectContext, requirements string) string {
	return fmt.Sprintf(backlogTemplate, projectContext, excerpt(requirements, RequirementsExcerptLimit))
}

// BuildTracePrompt asks for the traceability matrix.
func BuildTracePrompt(projectContext string) string {
	return fmt.Sprintf(traceTemplate, projectContext)
}

// excerpt cuts s to at most limit characters without splitting a rune.
func excerpt(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
