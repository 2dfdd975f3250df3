package advisor

import "github.com/okian/careeriq/internal/domain/plan"

// Fallback is the fixed template plan substituted when the provider
// is unavailable or misconfigured. It is never surfaced as an error.
func Fallback() Advice {
	return Advice{
		Summary:      "AI generation is currently unavailable. Here is a template plan to get you started.",
		LongTermGoal: "Advance in current field by acquiring high-value skills.",
		Recommendations: []plan.Draft{
			{
				Category:       "strategic",
				Title:          "Update Resume & LinkedIn",
				Description:    "Ensure your CV and public profile reflect your latest skills and achievements to attract recruiters.",
				ExpectedImpact: "Increase profile visibility by 40%",
				DataSource:     "LinkedIn Talent Solutions",
				Priority:       "high",
			},
			{
				Category:       "skills",
				Title:          "Assess Technical Skills",
				Description:    "Review current job postings for your target role to identify the top 3 missing technical skills.",
				ExpectedImpact: "Aligns capabilities with market demand",
				DataSource:     "Indeed Job Trends",
				Priority:       "medium",
			},
		},
	}
}
