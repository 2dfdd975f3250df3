// Package scoring computes percentile standing, skill-gap metrics and
// narrative insight fields from a resolved cohort.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/okian/careeriq/internal/domain/model"
)

// Default scoring configuration constants. The progression and
// position coefficients are intentionally coarse placeholders; they
// are configurable, not statistical contracts.
const (
	defaultTechnicalWeight = 0.7
	defaultSoftWeight      = 0.3

	// defaultSoftSkillScore is the neutral default used while the
	// survey population carries no soft-skill data.
	defaultSoftSkillScore = 70

	defaultMarketSkillSetSize = 15
	defaultMaxMissingSkills   = 5

	defaultProgressionBase    = 30.0
	defaultProgressionPerYear = 7.0
	defaultPositionPerYear    = 10.0

	maxScore = 100
)

// Caps applied when merging cohort frequency tables into the market
// skill set. Platforms are tracked in the cohort but not merged; they
// describe infrastructure exposure rather than hireable skills.
const (
	languageMergeCap  = 10
	databaseMergeCap  = 5
	frameworkMergeCap = 5
)

// Market comparison labels.
const (
	ComparisonBelowMarket = "Below Market"
	ComparisonCompetitive = "Competitive"
	ComparisonTopOfMarket = "Top of Market"
)

// Engine builds benchmark reports from a profile and its cohort.
type Engine struct {
	technicalWeight    float64
	softWeight         float64
	softSkillDefault   int
	marketSkillSetSize int
	maxMissingSkills   int
	progressionBase    float64
	progressionPerYear float64
	positionPerYear    float64
	dataSources        []string
	now                func() time.Time
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSkillWeights sets the technical/soft blend for the overall
// skill score. Weights must be non-negative with a positive sum.
func WithSkillWeights(technical, soft float64) Option {
	return func(e *Engine) {
		if technical >= 0 && soft >= 0 && technical+soft > 0 {
			e.technicalWeight = technical
			e.softWeight = soft
		}
	}
}

// WithSoftSkillDefault sets the neutral soft-skill score used when the
// cohort has no soft-skill data.
func WithSoftSkillDefault(score int) Option {
	return func(e *Engine) {
		if score >= 0 && score <= maxScore {
			e.softSkillDefault = score
		}
	}
}

// WithMarketSkillSetSize caps the merged market skill set.
func WithMarketSkillSetSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.marketSkillSetSize = n
		}
	}
}

// WithMaxMissingSkills caps the missing-critical-skills list.
func WithMaxMissingSkills(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxMissingSkills = n
		}
	}
}

// WithProgressionCoefficients sets the capped-linear experience curves
// for the progression and position-level scores.
func WithProgressionCoefficients(base, perYear, positionPerYear float64) Option {
	return func(e *Engine) {
		if base >= 0 && perYear > 0 && positionPerYear > 0 {
			e.progressionBase = base
			e.progressionPerYear = perYear
			e.positionPerYear = positionPerYear
		}
	}
}

// WithDataSources sets the citations attached to generated reports.
func WithDataSources(sources []string) Option {
	return func(e *Engine) {
		if len(sources) > 0 {
			e.dataSources = sources
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine with default configuration.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		technicalWeight:    defaultTechnicalWeight,
		softWeight:         defaultSoftWeight,
		softSkillDefault:   defaultSoftSkillScore,
		marketSkillSetSize: defaultMarketSkillSetSize,
		maxMissingSkills:   defaultMaxMissingSkills,
		progressionBase:    defaultProgressionBase,
		progressionPerYear: defaultProgressionPerYear,
		positionPerYear:    defaultPositionPerYear,
		dataSources:        []string{"Stack Overflow Developer Survey 2024"},
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score builds a fully populated, unpersisted benchmark report. The
// cohort must be non-empty; the resolver guarantees that for any
// cohort it returns.
func (e *Engine) Score(profile model.Profile, c model.Cohort) model.BenchmarkReport {
	percentile := Percentile(c.Salaries, profile.Salary)
	quartile := Quartile(percentile)
	comparison := Comparison(percentile)

	market := e.marketSkillSet(c)
	technical := matchScore(profile.TechnicalSkills, market)
	soft := e.softSkillDefault
	overall := int(math.Round(e.technicalWeight*float64(technical) + e.softWeight*float64(soft)))
	missing := e.missingSkills(profile.TechnicalSkills, market)

	progression := cappedLinear(e.progressionBase, e.progressionPerYear, profile.YearsExperience)
	position := cappedLinear(0, e.positionPerYear, profile.YearsExperience)

	return model.BenchmarkReport{
		UserID:                 profile.UserID,
		CompensationPercentile: percentile,
		CompensationQuartile:   quartile,
		SkillScores: model.SkillScores{
			Overall:   overall,
			Technical: technical,
			Soft:      soft,
		},
		CareerProgressionScore: progression,
		PositionLevelScore:     position,
		MissingCriticalSkills:  missing,
		MarketComparison:       comparison,
		CohortLabel:            c.Label,
		CohortSize:             c.Size,
		DataSources:            e.dataSources,
		Insights:               e.insights(quartile, comparison, progression, technical, missing),
		GeneratedAt:            e.now().UTC(),
	}
}

// Percentile is the share of cohort salaries strictly below salary,
// floored to an integer percentage in [0, 100].
func Percentile(sortedSalaries []float64, salary float64) int {
	if len(sortedSalaries) == 0 {
		return 0
	}
	// Salaries are sorted ascending; the index of the first entry
	// >= salary is the strictly-below count.
	below := sort.SearchFloat64s(sortedSalaries, salary)
	return below * 100 / len(sortedSalaries)
}

// Quartile maps a percentile to its quartile 1-4.
func Quartile(percentile int) int {
	switch {
	case percentile >= 75:
		return 4
	case percentile >= 50:
		return 3
	case percentile >= 25:
		return 2
	default:
		return 1
	}
}

// Comparison maps a percentile to a market comparison label.
func Comparison(percentile int) string {
	switch {
	case percentile < 25:
		return ComparisonBelowMarket
	case percentile > 75:
		return ComparisonTopOfMarket
	default:
		return ComparisonCompetitive
	}
}

// marketSkillSet merges the cohort's frequency tables into a single
// ranked list and keeps the top distinct skills. Comparison is
// case-insensitive; display case is preserved from the cohort.
func (e *Engine) marketSkillSet(c model.Cohort) []model.SkillCount {
	merged := make([]model.SkillCount, 0, languageMergeCap+databaseMergeCap+frameworkMergeCap)
	merged = append(merged, capTable(c.Languages, languageMergeCap)...)
	merged = append(merged, capTable(c.Databases, databaseMergeCap)...)
	merged = append(merged, capTable(c.Frameworks, frameworkMergeCap)...)

	// Stable sort keeps the per-category order deterministic on ties.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Count > merged[j].Count
	})

	seen := make(map[string]struct{}, len(merged))
	market := make([]model.SkillCount, 0, e.marketSkillSetSize)
	for _, s := range merged {
		key := strings.ToLower(s.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		market = append(market, s)
		if len(market) == e.marketSkillSetSize {
			break
		}
	}
	return market
}

// matchScore is |user ∩ market| / |market| as a floored integer
// percentage; 0 when the market set is empty.
func matchScore(userSkills []string, market []model.SkillCount) int {
	if len(market) == 0 {
		return 0
	}
	user := lowerSet(userSkills)
	matched := 0
	for _, s := range market {
		if _, ok := user[strings.ToLower(s.Name)]; ok {
			matched++
		}
	}
	return matched * 100 / len(market)
}

// missingSkills is the market set minus the user's skills, in market
// ranking order, truncated to the configured cap.
func (e *Engine) missingSkills(userSkills []string, market []model.SkillCount) []string {
	user := lowerSet(userSkills)
	missing := make([]string, 0, e.maxMissingSkills)
	for _, s := range market {
		if _, ok := user[strings.ToLower(s.Name)]; ok {
			continue
		}
		missing = append(missing, s.Name)
		if len(missing) == e.maxMissingSkills {
			break
		}
	}
	return missing
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

// cappedLinear evaluates base + perYear*years, clamped to [0, 100].
func cappedLinear(base, perYear, years float64) int {
	v := math.Round(base + perYear*years)
	return int(math.Max(0, math.Min(maxScore, v)))
}

func (e *Engine) insights(quartile int, comparison string, progression, technical int, missing []string) model.Insights {
	var compensation string
	switch comparison {
	case ComparisonBelowMarket:
		compensation = "Your compensation is currently below market rates for your cohort."
	case ComparisonTopOfMarket:
		compensation = "You are compensated at the top of the market for your cohort."
	default:
		compensation = "Your salary is competitive but has room for growth."
	}

	var prog string
	switch {
	case progression >= 80:
		prog = "Strong career trajectory with consistent growth."
	case progression >= 55:
		prog = "Steady progress observed across your experience."
	default:
		prog = "Early in your trajectory; expect progression to accelerate with experience."
	}

	skills := fmt.Sprintf("You match %d%% of your cohort's top technical skills.", technical)
	if len(missing) > 0 {
		focus := missing
		if len(focus) > 2 {
			focus = focus[:2]
		}
		skills = fmt.Sprintf("%s Focusing on %s could strengthen your profile.", skills, strings.Join(focus, ", "))
	}

	return model.Insights{
		Overall:      fmt.Sprintf("You are positioned in the %s quartile of your comparison cohort.", ordinal(quartile)),
		Compensation: compensation,
		Progression:  prog,
		Skills:       skills,
	}
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func capTable(table []model.SkillCount, k int) []model.SkillCount {
	if len(table) <= k {
		return table
	}
	return table[:k]
}
