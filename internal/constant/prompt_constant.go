package constant

import "fmt"

// SharedVectorStoreName is the display name of the process-wide vector store
// that every conversation searches in addition to the project's own store.
const SharedVectorStoreName = "Shared files"

const ProjectDeveloperText = `
you are a consultant for R&D and GMP facilities and pharmaceutical companies,
focused on ATMP development and production (Cell and Gene therapy) for clinical trial phases.
Always respond in Markdown.
`

// ProjectContextPrefixPrompt precedes the project context in the first turn
// of a conversation. The model is told not to answer it directly.
const ProjectContextPrefixPrompt = `
# Instructions

- Always respond in the same language used in the "Context" section below.
- Do not respond to this message. It exists only to provide you with the conversation context
and configure your behavior.

# Context
`

func SectionPromptPrefix(sectionID string) string {
	return fmt.Sprintf("The following request is for section %s of the project document.\n", sectionID)
}

func SectionImprovePrefix(sectionID string) string {
	return fmt.Sprintf("Improve your previous response for section %s of the project document, applying the following feedback.\n", sectionID)
}
