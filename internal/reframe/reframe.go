// Package reframe turns an anxious thought plus its identified thinking
// traps into a short, compassionate Arabic reframe. Failures of the
// generative service are absorbed: the caller always gets a usable string,
// since the user can edit it freely before saving.
package reframe

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sakina/gosakina/internal/journal"
)

// Completer is the interface for text completion calls.
// Implemented by genai.Client.
type Completer interface {
	Complete(ctx context.Context, userPrompt, systemPrompt string) (string, error)
}

// Canned fallbacks, matching the strings shown when the service is
// unavailable versus when it answers with nothing useful.
const (
	fallbackFailure = "القبول هو المفتاح. لا بأس بالشعور بالقلق الآن."
	fallbackEmpty   = "حاول التفكير في الأمر من منظور أكثر واقعية وهدوءاً."
)

const systemPrompt = `Acting as a CBT therapist, provide a brief, compassionate, and realistic Arabic reframe of the user's thought. Keep it under 50 words. Focus on the DARE methodology (Acceptance).`

// Reframer produces reframes through a Completer.
type Reframer struct {
	llm Completer
	log zerolog.Logger
}

// New creates a Reframer.
func New(llm Completer, log zerolog.Logger) *Reframer {
	return &Reframer{llm: llm, log: log}
}

// Reframe returns a reframe for the thought. It never fails: service
// errors and empty answers degrade to canned fallback text.
func (r *Reframer) Reframe(ctx context.Context, thought string, traps []journal.ThinkingTrap) string {
	out, err := r.llm.Complete(ctx, buildPrompt(thought, traps), systemPrompt)
	if err != nil {
		r.log.Warn().Err(err).Msg("reframe generation failed, using fallback")
		return fallbackFailure
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return fallbackEmpty
	}
	return out
}

func buildPrompt(thought string, traps []journal.ThinkingTrap) string {
	labels := make([]string, len(traps))
	for i, t := range traps {
		labels[i] = string(t)
	}
	return fmt.Sprintf("User thought: %q. Identified traps: %s.", thought, strings.Join(labels, ", "))
}
