package advisor

import (
	"fmt"
	"strings"

	"github.com/rhettlabs/research-dashboard-service/internal/llm"
)

// LifePathProfile holds the user-supplied profile fields embedded in a
// life-path story prompt.
type LifePathProfile struct {
	School         string
	Major          string
	Degree         string
	PathPreference string
	Personality    string
	Goals          string
	SpecialNotes   string
}

// lifePathSystemPrompt sets the narrator persona and the story contract.
const lifePathSystemPrompt = personaPreamble + " " +
	"You narrate imaginative but plausible academic life paths. " +
	"Write one continuous story in the second person, 4-6 paragraphs, " +
	"following the student from where they are now through the next decade " +
	"of their chosen path. Keep it warm, concrete, and grounded in real " +
	"academic and career milestones."

// LifePathMessages builds the story-generation conversation from the
// profile. Optional fields are included only when supplied.
func LifePathMessages(p LifePathProfile) []llm.Message {
	var b strings.Builder
	b.WriteString("Tell me my life path story.\n")
	fmt.Fprintf(&b, "School: %s\n", p.School)
	fmt.Fprintf(&b, "Major: %s\n", p.Major)
	fmt.Fprintf(&b, "Degree: %s\n", p.Degree)
	fmt.Fprintf(&b, "Path preference: %s\n", p.PathPreference)
	if p.Personality != "" {
		fmt.Fprintf(&b, "Personality: %s\n", p.Personality)
	}
	if p.Goals != "" {
		fmt.Fprintf(&b, "Goals: %s\n", p.Goals)
	}
	if p.SpecialNotes != "" {
		fmt.Fprintf(&b, "Special notes: %s\n", p.SpecialNotes)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: lifePathSystemPrompt},
		{Role: llm.RoleUser, Content: strings.TrimRight(b.String(), "\n")},
	}
}
