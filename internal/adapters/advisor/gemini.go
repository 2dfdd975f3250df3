package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/internal/domain/plan"
)

const (
	defaultModel = "gemini-2.5-flash"
)

// Gemini implements Provider against the Gemini API.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini advisor. The api key is required.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if modelName = strings.TrimSpace(modelName); modelName == "" {
		modelName = defaultModel
	}
	return &Gemini{client: client, modelName: modelName}, nil
}

// adviceWire mirrors the JSON structure the model is asked to emit.
type adviceWire struct {
	Summary         string `json:"summary"`
	LongTermGoal    string `json:"long_term_goal"`
	Recommendations []struct {
		Category       string `json:"category"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		ExpectedImpact string `json:"expected_impact"`
		DataSource     string `json:"data_source"`
		PriorityLevel  string `json:"priority_level"`
	} `json:"recommendations"`
}

// Advise prompts the model with the profile and benchmark context and
// decodes its JSON reply.
func (g *Gemini) Advise(ctx context.Context, profile model.Profile, report model.BenchmarkReport) (Advice, error) {
	if g == nil || g.client == nil {
		return Advice{}, errors.New("gemini advisor is not initialized")
	}

	prompt := buildPrompt(profile, report)
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return Advice{}, fmt.Errorf("generate advice: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		return Advice{}, errors.New("gemini api returned empty response")
	}

	var wire adviceWire
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return Advice{}, fmt.Errorf("decode advice json: %w", err)
	}

	advice := Advice{
		Summary:      wire.Summary,
		LongTermGoal: wire.LongTermGoal,
	}
	for _, r := range wire.Recommendations {
		advice.Recommendations = append(advice.Recommendations, plan.Draft{
			Category:       strings.ToLower(r.Category),
			Title:          r.Title,
			Description:    r.Description,
			ExpectedImpact: r.ExpectedImpact,
			DataSource:     r.DataSource,
			Priority:       strings.ToLower(r.PriorityLevel),
		})
	}
	return advice, nil
}

func buildPrompt(profile model.Profile, report model.BenchmarkReport) string {
	var b strings.Builder
	b.WriteString("You are an expert technical career coach specializing in software development careers.\n\n")
	fmt.Fprintf(&b, "User Profile:\n- Role: %s\n- Experience: %g years\n- Location: %s\n- Skills: %s\n- Salary Input: %g\n",
		profile.CurrentTitle, profile.YearsExperience, profile.Country,
		strings.Join(profile.TechnicalSkills, ", "), profile.Salary)
	b.WriteString("  (Note: the salary value may be in local currency or USD; use the country context to infer. The benchmark figures are USD.)\n\n")
	fmt.Fprintf(&b, "Market Benchmark Context (cohort: %s, %d comparable profiles):\n", report.CohortLabel, report.CohortSize)
	fmt.Fprintf(&b, "- Compensation percentile: %d\n- Market comparison: %s\n- Skill match score: %d/100\n- Top missing skills: %s\n\n",
		report.CompensationPercentile, report.MarketComparison,
		report.SkillScores.Overall, strings.Join(report.MissingCriticalSkills, ", "))
	b.WriteString(`Task: generate a personalized career development plan.

The output MUST be a valid JSON object matching this structure exactly:
{
  "summary": "2-3 sentences analyzing their market position, noting any salary currency discrepancy if detected.",
  "long_term_goal": "A strategic 1-2 year goal.",
  "recommendations": [
    {
      "category": "compensation" | "skills" | "strategic",
      "title": "Actionable title",
      "description": "Specific advice.",
      "expected_impact": "Quantifiable outcome.",
      "data_source": "General Industry Trends",
      "priority_level": "high" | "medium" | "low"
    }
  ]
}

Requirements:
- Provide exactly 5-7 high-quality recommendations.
- If the compensation percentile is below 50, include negotiation or job switching advice.
- If the skill match is low, prioritize the missing skills.

Return ONLY valid JSON. Do not use Markdown code blocks.
`)
	return b.String()
}

// collectText concatenates the textual parts of every candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return strings.TrimSpace(b.String())
}

// stripFences removes Markdown code fences the model sometimes adds
// despite instructions.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
