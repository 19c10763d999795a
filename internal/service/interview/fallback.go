package interview

import (
	"strings"
	"unicode"
)

var fallbackQuestions = map[Level][]string{
	EntryLevel: {
		"Tell me about yourself and why you are interested in this role.",
		"Describe a project you are proud of and your part in it.",
		"How do you approach learning a new tool or technology?",
		"Tell me about a time you received difficult feedback.",
		"How do you prioritize when you have several deadlines?",
		"Why do you want to work with our team?",
	},
	MidLevel: {
		"Describe a technical decision you made and the trade-offs you weighed.",
		"Tell me about a time you disagreed with a teammate and how you resolved it.",
		"How have you helped a less experienced colleague grow?",
		"Walk me through how you would debug a production incident.",
		"Describe a project that did not go as planned. What did you learn?",
		"How do you keep stakeholders informed on long-running work?",
	},
	SeniorLevel: {
		"Tell me about a time you set technical direction for a team.",
		"How do you decide when to pay down technical debt?",
		"Describe how you have grown other engineers into leaders.",
		"Tell me about a cross-team initiative you drove to completion.",
		"How do you handle a project whose requirements keep changing?",
		"Describe a high-stakes decision you made with incomplete information.",
	},
}

// fallbackQuestionSet returns count static questions for level.
func fallbackQuestionSet(level Level, count int) []string {
	qs := fallbackQuestions[level]
	if len(qs) == 0 {
		qs = fallbackQuestions[MidLevel]
	}
	return append([]string(nil), qs[:min(count, len(qs))]...)
}

var starMarkers = []string{"situation", "task", "action", "result", "because", "learned", "impact"}

// fallbackFeedback scores an answer by length and structure when no AI is available.
func fallbackFeedback(answer string) Feedback {
	words := len(strings.FieldsFunc(answer, func(r rune) bool { return unicode.IsSpace(r) }))
	lower := strings.ToLower(answer)
	markers := 0
	for _, m := range starMarkers {
		if strings.Contains(lower, m) {
			markers++
		}
	}

	fb := Feedback{Source: SourceFallback}
	score := 3
	switch {
	case words >= 150:
		score += 3
		fb.Strengths = append(fb.Strengths, "Detailed answer with room for specifics.")
	case words >= 60:
		score += 2
		fb.Strengths = append(fb.Strengths, "Answer is a reasonable length.")
	default:
		fb.Improvements = append(fb.Improvements, "Expand the answer with a concrete example.")
	}
	if markers >= 3 {
		score += 3
		fb.Strengths = append(fb.Strengths, "Clear situation, action and result structure.")
	} else {
		score += markers
		fb.Improvements = append(fb.Improvements, "Use the STAR format: situation, task, action, result.")
	}
	if !strings.ContainsFunc(answer, unicode.IsDigit) {
		fb.Improvements = append(fb.Improvements, "Quantify the outcome where you can.")
	} else {
		score++
	}
	fb.Score = min(score, 10)
	fb.Summary = "Automated feedback based on answer length and structure."
	return fb
}
