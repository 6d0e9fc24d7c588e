package insight

import (
	"encoding/json"
	"fmt"

	"github.com/clearlead/decisio/internal/catalog"
	"github.com/clearlead/decisio/internal/decision/domain"
)

func responseLanguage(lang string) string {
	if lang == catalog.LangES {
		return "Spanish"
	}
	return "English"
}

func stepPrompt(stepName, title, input string, prior []domain.Step, lang string) string {
	priorJSON, _ := json.Marshal(prior)
	return fmt.Sprintf(`You are DecisionAI, a world-class executive coach specializing in decision-making psychology and strategic management.
Context: %s
Current Step: %s
Leader's Input for this step: %s
Previous Progress: %s

Your goal is to evaluate the leader's approach for this specific step.
1. Identify logical fallacies or biases (e.g., confirmation bias, sunk cost fallacy).
2. Suggest 2-3 critical questions they should ask themselves.
3. Provide a 'Decision Maturity Score' for this step (0-100).
4. Offer a short, punchy constructive insight.

IMPORTANT: You must respond entirely in %s.`, title, stepName, input, priorJSON, responseLanguage(lang))
}

func reportPrompt(title string, steps []domain.Step, lang string) string {
	stepsJSON, _ := json.Marshal(steps)
	return fmt.Sprintf(`Conduct a final audit of this decision-making process:
Title: %s
Steps taken: %s

Provide:
1. Overall Decision Quality Score (0-100).
2. Strategic Alignment assessment.
3. Risk Mitigation recommendations.
4. Summary of the leader's decision-making style (e.g., Analytical, Collaborative, Decisive).

IMPORTANT: You must respond entirely in %s.`, title, stepsJSON, responseLanguage(lang))
}
