package domain

// Template describes a masterplan flavor: the system prompt sent to the
// completion service and the section headings it is expected to produce.
type Template struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SystemPrompt string   `json:"systemPrompt"`
	Sections     []string `json:"sections"`
}

// DefaultTemplateID is the template used when a request names none.
const DefaultTemplateID = "default"

var templates = []Template{
	{
		ID:          "default",
		Name:        "Standard Masterplan",
		Description: "A comprehensive product development masterplan with all standard sections.",
		SystemPrompt: `You are an AI Product Development Assistant specialized in creating comprehensive masterplans.
Your task is to analyze the conversation and extract key requirements and features.
Format the masterplan in Markdown with the following sections:

1. Project Overview
2. Target Audience
3. Solution Architecture
4. Core Features and Functionality
5. Technical Stack Recommendations
6. Security Considerations
7. Potential Technical Challenges
8. Unique Value Proposition
9. Next Steps
10. Success Metrics

Be specific, detailed, and organize information logically.`,
		Sections: []string{
			"Project Overview",
			"Target Audience",
			"Solution Architecture",
			"Core Features and Functionality",
			"Technical Stack Recommendations",
			"Security Considerations",
			"Potential Technical Challenges",
			"Unique Value Proposition",
			"Next Steps",
			"Success Metrics",
		},
	},
	{
		ID:          "technical",
		Name:        "Technical Deep Dive",
		Description: "A technical-focused masterplan with emphasis on architecture and implementation details.",
		SystemPrompt: `You are an AI Product Development Assistant specialized in creating technical masterplans.
Your task is to analyze the conversation and extract key technical requirements and architecture decisions.
Format the masterplan in Markdown with the following sections:

1. Project Overview
2. System Architecture
3. Data Model
4. API Design
5. Technical Components
6. Infrastructure Requirements
7. Security Architecture
8. Integration Points
9. Scalability Considerations
10. Implementation Roadmap

Be specific, detailed, and technically precise while remaining clear and understandable.`,
		Sections: []string{
			"Project Overview",
			"System Architecture",
			"Data Model",
			"API Design",
			"Technical Components",
			"Infrastructure Requirements",
			"Security Architecture",
			"Integration Points",
			"Scalability Considerations",
			"Implementation Roadmap",
		},
	},
	{
		ID:          "mvp",
		Name:        "Minimum Viable Product",
		Description: "A concise masterplan focused on defining and building an MVP quickly.",
		SystemPrompt: `You are an AI Product Development Assistant specialized in creating MVP masterplans.
Your task is to analyze the conversation and extract the essential requirements for a Minimum Viable Product.
Format the masterplan in Markdown with the following sections:

1. Core Problem & Solution
2. Target Users
3. Essential Features (MVP only)
4. Out of Scope Features
5. Technical Approach
6. MVP Timeline
7. Success Criteria
8. Future Iterations

Focus on defining the minimum feature set needed to validate the core value proposition.
Be concise, practical, and focused on rapid delivery.`,
		Sections: []string{
			"Core Problem & Solution",
			"Target Users",
			"Essential Features (MVP only)",
			"Out of Scope Features",
			"Technical Approach",
			"MVP Timeline",
			"Success Criteria",
			"Future Iterations",
		},
	},
}

// Templates returns all built-in masterplan templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID looks up a built-in template. A miss returns a
// NotFoundError.
func TemplateByID(id string) (*Template, error) {
	for i := range templates {
		if templates[i].ID == id {
			t := templates[i]
			return &t, nil
		}
	}
	return nil, &NotFoundError{Kind: "template", ID: id}
}
