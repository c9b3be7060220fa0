package generator

import "strings"

// Fixed labels of the project context block.
const (
	labelProjectName = "프로젝트 이름: "
	labelDescription = "프로젝트 설명:"
	labelFeatures    = "주요 기능:"
	labelTechStack   = "기술 스택:"
)

// BuildProjectContext renders the project metadata block shared by every prompt.
// Empty optional inputs contribute no section.
func BuildProjectContext(projectName, description string, features, techStack []string) string {
	var sb strings.Builder
	sb.WriteString(labelProjectName)
	sb.WriteString(projectName)
	sb.WriteString("\n")

	if description != "" {
		sb.WriteString("\n" + labelDescription + "\n")
		sb.WriteString(description)
		sb.WriteString("\n")
	}
	writeBulletSection(&sb, labelFeatures, features)
	writeBulletSection(&sb, labelTechStack, techStack)
	return sb.String()
}

func writeBulletSection(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + label + "\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}
