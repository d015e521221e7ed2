package intelligence

import (
	"fmt"
	"strings"
)

// resourceDraftSystemPrompt asks for one resource with countable modules.
const resourceDraftSystemPrompt = `You design study material breakdowns for a personal study tracker.
Given a topic, imagine it is a mobile practice app or a textbook. Break it into one resource
(the app or book name) and its modules (chapters or topics).

You must output ONLY a JSON object with these exact fields:
- name: string, the resource name
- description: string, one short sentence
- modules: array of { name: string, type: one of ["Questions","Sections","Articles","Pages"], totalItems: integer > 0 }

Estimate totalItems strictly as the count of questions, sections, articles or pages a learner
would work through. Use 3 to 8 modules.
All names and the description MUST be in Traditional Chinese (繁體中文).
No text outside the JSON object.`

func resourceDraftUserPrompt(topic string) string {
	return fmt.Sprintf("Create a structured study plan for: %q", topic)
}

// tipSystemPrompt fixes the three-part "first aid kit" layout.
const tipSystemPrompt = `You write very short study first-aid notes in Traditional Chinese (繁體中文).
Structure the response strictly as three numbered lines:
1. 【核心概念】：one sentence definition.
2. 【常考坑點】：one common mistake or trick used in exams.
3. 【記憶口訣】：a short, catchy mnemonic or rhyme.
Keep it concise and encouraging. No preamble, no closing remarks.`

func tipUserPrompt(req TipRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The learner is studying %q - %q.\n", req.ResourceName, req.ModuleName)
	fmt.Fprintf(&b, "They are struggling with: %q.\n", req.Topic)
	if req.Stage != "" {
		fmt.Fprintf(&b, "Current study stage: %s.\n", req.Stage.Label())
	}
	return b.String()
}
