// Package catalog holds the static decision framework content: the ordered
// exercise steps and the subscription plan sheet, in both supported
// languages.
package catalog

// StepDef is the template for one exercise stage. Sessions copy these
// definitions and fill in the user's input and the oracle's feedback.
type StepDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Languages the content ships in. Anything else falls back to English.
const (
	LangEN = "en"
	LangES = "es"
)

// Steps returns the fixed exercise sequence in the given language. Order
// is significant: it is the order the session walks through.
func Steps(lang string) []StepDef {
	if lang == LangES {
		return []StepDef{
			{ID: "define", Name: "Análisis de la Situación", Description: "Define claramente el problema, el contexto y el resultado deseado."},
			{ID: "stakeholders", Name: "Mapa de Stakeholders", Description: "Identifica quién se ve afectado y quién debe participar (Marco RAPID)."},
			{ID: "alternatives", Name: "Generación de Alternativas", Description: "Explora múltiples cursos de acción sin sesgos."},
			{ID: "risks", Name: "Evaluación de Riesgos y Compensaciones", Description: "Evalúa los pros, contras y consecuencias no deseadas de cada opción."},
			{ID: "selection", Name: "Selección Final y Justificación", Description: "Elige el mejor camino y documenta la lógica detrás de él."},
		}
	}
	return []StepDef{
		{ID: "define", Name: "Situation Analysis", Description: "Clearly define the problem, the context, and the desired outcome."},
		{ID: "stakeholders", Name: "Stakeholder Mapping", Description: "Identify who is affected and who needs to be involved (RAPID Framework)."},
		{ID: "alternatives", Name: "Alternatives Generation", Description: "Explore multiple courses of action without bias."},
		{ID: "risks", Name: "Risk & Trade-off Assessment", Description: "Evaluate the pros, cons, and unintended consequences of each option."},
		{ID: "selection", Name: "Final Selection & Rationale", Description: "Choose the best path and document the logic behind it."},
	}
}
