package insight

// Wire types for the generateContent endpoint. Responses are forced into
// JSON with a response schema so no free-text parsing is needed beyond one
// unmarshal of the candidate text.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Items      *schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

var stepSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"score":             {Type: "NUMBER"},
		"insights":          {Type: "STRING"},
		"biasCheck":         {Type: "ARRAY", Items: &schema{Type: "STRING"}},
		"criticalQuestions": {Type: "ARRAY", Items: &schema{Type: "STRING"}},
	},
	Required: []string{"score", "insights", "biasCheck", "criticalQuestions"},
}

var reportSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"overallScore": {Type: "NUMBER"},
		"style":        {Type: "STRING"},
		"alignment":    {Type: "STRING"},
		"riskSummary":  {Type: "STRING"},
		"coachingTip":  {Type: "STRING"},
	},
	Required: []string{"overallScore", "style", "alignment", "riskSummary", "coachingTip"},
}
