// Package team runs bounded round-robin conversations among prompt-defined
// agent roles and extracts a final result from the transcript.
package team

import (
	"errors"
	"fmt"
)

// ErrUnknownTeam is returned when a team identifier is not in the registry.
var ErrUnknownTeam = errors.New("unknown team")

// DefaultMaxRounds bounds a conversation when the config does not set one.
const DefaultMaxRounds = 6

// Role is a named participant with its own system instruction and a marker
// it emits when it considers its sub-task done.
type Role struct {
	Name         string
	SystemPrompt string
	DoneMarker   string
}

// Config describes one team: the ordered agent roles, the role whose output
// is preferred during result extraction, and the markers that terminate the
// conversation early. The coordinator itself is implicit: it posts the task
// and judges termination but holds no completion backend.
type Config struct {
	Name               string
	Roles              []Role
	PrimaryRole        string
	TerminationMarkers []string
	MaxRounds          int
}

// Built-in team identifiers.
const (
	CreativeWriterTeam = "creative_writer"
	ResearchTeam       = "research_team"
	ProblemSolverTeam  = "problem_solver"
)

func builtinTeams() map[string]Config {
	return map[string]Config{
		CreativeWriterTeam: {
			Name: CreativeWriterTeam,
			Roles: []Role{
				{
					Name: "Writer",
					SystemPrompt: "You are a skilled creative writer. " +
						"Write clear, engaging, well structured content. " +
						"When you are finished, end with: COMPLETED",
					DoneMarker: "COMPLETED",
				},
				{
					Name: "Editor",
					SystemPrompt: "You are an experienced editor. " +
						"Review the writer's text and suggest specific improvements. " +
						"Focus on clarity, structure and impact. " +
						"Be constructive. End with: REVIEWED",
					DoneMarker: "REVIEWED",
				},
				{
					Name: "Critic",
					SystemPrompt: "You are an attentive critic. " +
						"Evaluate the final content and give an honest judgement. " +
						"Highlight strengths and any weaknesses. End with: EVALUATED",
					DoneMarker: "EVALUATED",
				},
			},
			PrimaryRole:        "Writer",
			TerminationMarkers: []string{"EVALUATED"},
			MaxRounds:          DefaultMaxRounds,
		},
		ResearchTeam: {
			Name: ResearchTeam,
			Roles: []Role{
				{
					Name: "Researcher",
					SystemPrompt: "You are a meticulous researcher. " +
						"Explore the topic in depth and present clear findings. " +
						"End with: RESEARCH_COMPLETE",
					DoneMarker: "RESEARCH_COMPLETE",
				},
				{
					Name: "Analyst",
					SystemPrompt: "You are a critical analyst. " +
						"Analyze the researcher's findings and identify patterns and insights. " +
						"End with: ANALYSIS_COMPLETE",
					DoneMarker: "ANALYSIS_COMPLETE",
				},
			},
			PrimaryRole:        "Analyst",
			TerminationMarkers: []string{"ANALYSIS_COMPLETE"},
			MaxRounds:          DefaultMaxRounds,
		},
		ProblemSolverTeam: {
			Name: ProblemSolverTeam,
			Roles: []Role{
				{
					Name: "Analyst",
					SystemPrompt: "You are a problem analyst. " +
						"Break the problem down and identify its key components. " +
						"End with: PROBLEM_ANALYSIS_COMPLETE",
					DoneMarker: "PROBLEM_ANALYSIS_COMPLETE",
				},
				{
					Name: "Strategist",
					SystemPrompt: "You are a strategist. " +
						"Propose concrete solutions based on the analysis. " +
						"Be practical and specific. End with: STRATEGY_PROPOSED",
					DoneMarker: "STRATEGY_PROPOSED",
				},
			},
			PrimaryRole:        "Strategist",
			TerminationMarkers: []string{"STRATEGY_PROPOSED"},
			MaxRounds:          DefaultMaxRounds,
		},
	}
}

// Lookup resolves a team identifier against the closed built-in registry.
// Unknown identifiers fail immediately; there is no default substitution.
func Lookup(name string) (Config, error) {
	cfg, ok := builtinTeams()[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	return cfg, nil
}

// TeamNames returns the registered team identifiers.
func TeamNames() []string {
	return []string{CreativeWriterTeam, ResearchTeam, ProblemSolverTeam}
}
