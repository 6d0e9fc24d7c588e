package catalog

import userdomain "github.com/clearlead/decisio/internal/user/domain"

// PlanDef is one subscription tier as shown on the pricing page.
type PlanDef struct {
	ID       userdomain.Plan `json:"id"`
	Name     string          `json:"name"`
	Price    string          `json:"price"`
	Features []string        `json:"features"`
}

// Plans returns the subscription sheet in the given language.
func Plans(lang string) []PlanDef {
	if lang == LangES {
		return []PlanDef{
			{ID: userdomain.PlanFree, Name: "Gratis", Price: "$0", Features: []string{"3 Análisis de Decisión/mes", "Marcos Básicos", "Acceso a la Comunidad"}},
			{ID: userdomain.PlanBasic, Name: "Básico", Price: "$15/mo", Features: []string{"10 Análisis de Decisión/mes", "Marcos Básicos", "Soporte Estándar"}},
			{ID: userdomain.PlanPro, Name: "Profesional", Price: "$29/mo", Features: []string{"50 Análisis de Decisión/mes", "Marcos Avanzados (Cynefin)", "Matriz de Riesgos Detallada", "Soporte Prioritario"}},
			{ID: userdomain.PlanPremium, Name: "Premium", Price: "Personalizado", Features: []string{"Decisiones Ilimitadas", "Licenciamiento por Volumen", "Tablero de Empresa", "Marcos Personalizados", "Integración SSO", "Gerente Dedicado"}},
		}
	}
	return []PlanDef{
		{ID: userdomain.PlanFree, Name: "Free", Price: "$0", Features: []string{"3 Decision Analyses/month", "Basic Frameworks", "Community Access"}},
		{ID: userdomain.PlanBasic, Name: "Basic", Price: "$15/mo", Features: []string{"10 Decision Analyses/month", "Basic Frameworks", "Standard Support"}},
		{ID: userdomain.PlanPro, Name: "Professional", Price: "$29/mo", Features: []string{"50 Decision Analyses/month", "Advanced Frameworks (Cynefin)", "Detailed Risk Matrix", "Priority Support"}},
		{ID: userdomain.PlanPremium, Name: "Premium", Price: "Custom", Features: []string{"Unlimited Decisions", "Bulk Licensing", "Company Dashboard", "Custom Frameworks", "SSO Integration", "Dedicated Manager"}},
	}
}
