// Package fit scores a candidate's resume against a job with a hosted language model.
package fit

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Mareenraj/ATS/internal/llm"
	"github.com/Mareenraj/ATS/internal/shared/metrics"
	"github.com/Mareenraj/ATS/internal/shared/resilience"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

// Kind classifies an analysis result.
type Kind string

const (
	KindSuccess              Kind = "success"
	KindConfigurationMissing Kind = "configuration_missing"
	KindRateLimited          Kind = "rate_limited"
	KindGenericFailure       Kind = "generic_failure"
)

const (
	defaultTimeout   = 45 * time.Second
	maxErrorRunes    = 200
	breakerOperation = "llm.generate"

	msgRateLimited = "AI service rate limit reached. Please wait about 30 seconds and try again."
)

// Request carries the job and resume text to compare.
type Request struct {
	JobTitle        string
	JobDescription  string
	JobRequirements string
	ResumeText      string
}

// Result is the outcome of one analysis. Failures are reported as data.
type Result struct {
	Success  bool   `json:"success"`
	Kind     Kind   `json:"kind"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Analyzer asks a Generator for a structured fit evaluation.
type Analyzer struct {
	Generator llm.Generator
	// APIKey is the provider credential; analysis is skipped when it is empty.
	APIKey string
	// KeyEnv names the variable APIKey is read from, for the configuration message.
	KeyEnv   string
	Timeout  time.Duration
	Breakers *resilience.Breakers
}

// Analyze makes at most one generator call for req.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Result {
	res := a.analyze(ctx, req)
	metrics.IncAnalysis(string(res.Kind))
	return res
}

func (a *Analyzer) analyze(ctx context.Context, req Request) Result {
	if strings.TrimSpace(a.APIKey) == "" || a.Generator == nil {
		return Result{Kind: KindConfigurationMissing, Error: a.configurationMessage()}
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return failure(err)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	start := time.Now()
	var raw string
	err = a.Breakers.Execute(callCtx, breakerOperation, func(ctx context.Context) error {
		out, genErr := a.Generator.Generate(ctx, prompt)
		raw = out
		return genErr
	})
	metrics.ObserveAnalysisDuration(time.Since(start))

	if err != nil {
		telemetry.Warn("fit.analysis_failed", map[string]any{
			"prompt_version": PromptVersion,
			"duration_ms":    time.Since(start).Milliseconds(),
			"error":          err,
		})
		if isRateLimited(err) {
			return Result{Kind: KindRateLimited, Error: msgRateLimited}
		}
		return failure(err)
	}

	return Result{Success: true, Kind: KindSuccess, Analysis: Sanitize(raw)}
}

func (a *Analyzer) timeout() time.Duration {
	if a.Timeout <= 0 {
		return defaultTimeout
	}
	return a.Timeout
}

func (a *Analyzer) configurationMessage() string {
	env := a.KeyEnv
	if env == "" {
		env = "GEMINI_API_KEY"
	}
	return "AI analysis is not configured. Please set the " + env + " environment variable."
}

func failure(err error) Result {
	return Result{Kind: KindGenericFailure, Error: truncateRunes(err.Error(), maxErrorRunes)}
}

var rateLimitMarkers = []string{"quota", "resource exhausted", "resource_exhausted", "rate limit", "ratelimit", "too many requests"}

// statusPattern matches 429 only where it reads as a status, not as any number.
var statusPattern = regexp.MustCompile(`\b(?:status|code|http)(?: code)?[\s:=]*429\b`)

func isRateLimited(err error) bool {
	if llm.StatusCode(err) == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return statusPattern.MatchString(msg)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
