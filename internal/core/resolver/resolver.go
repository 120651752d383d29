// Package resolver turns partial, user-typed school names into normalized
// institution records. A generative model is asked first; a local table of
// vetted institutions backs it up.
package resolver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/agenthands/saber/internal/config"
	"github.com/agenthands/saber/internal/core/common"
	"github.com/agenthands/saber/internal/core/model"
	"github.com/agenthands/saber/internal/llm"
)

// LocalTable is the in-memory fallback. Implementations must not fail.
type LocalTable interface {
	Search(query string) []model.Candidate
	Lookup(name, municipality string) (model.Candidate, bool)
}

// Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	LLM     llm.LLMClient
	Local   LocalTable
	Prompts config.PromptConfig
	Limits  config.ResolverConfig
	logger  *zap.Logger
}

func New(llmClient llm.LLMClient, local LocalTable, cfg *config.Config, logger *zap.Logger) *Resolver {
	c := config.Default()
	if cfg != nil {
		cp := *cfg
		c = &cp
	}
	c.Sanitize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		LLM:     llmClient,
		Local:   local,
		Prompts: c.Prompts,
		Limits:  c.Resolver,
		logger:  logger.Named("resolver"),
	}
}

// Search asks the model for up to MaxSuggestions institutions matching
// partialName, highest confidence first. Inputs shorter than MinQueryLength
// and every failure of the remote source yield an empty list.
func (r *Resolver) Search(ctx context.Context, partialName string) []model.Candidate {
	o := r.search(ctx, partialName)
	r.log("search", partialName, o)
	return o.candidates
}

// Validate asks the model to confirm a single institution. A nil result means
// "could not validate": the model denied it exists or its reply was unusable.
func (r *Resolver) Validate(ctx context.Context, name, municipalityHint string) *model.Candidate {
	o := r.validate(ctx, name, municipalityHint)
	r.log("validate", name, o)
	if o.status != statusOK {
		return nil
	}
	c := o.candidates[0]
	return &c
}

// HybridSearch returns the model's suggestions whenever there are any and
// the local table's matches otherwise. The two are never mixed.
func (r *Resolver) HybridSearch(ctx context.Context, query string) []model.Candidate {
	if remote := r.Search(ctx, query); len(remote) > 0 {
		return remote
	}
	if r.Local == nil {
		return []model.Candidate{}
	}
	local := r.Local.Search(query)
	if local == nil {
		local = []model.Candidate{}
	}
	r.logger.Debug("search fell back to local table", zap.String("query", query), zap.Int("results", len(local)))
	return local
}

// HybridValidation trusts a local entry first and only asks the model when
// the local table has no exact match.
func (r *Resolver) HybridValidation(ctx context.Context, name, municipalityHint string) *model.Candidate {
	if r.Local != nil {
		if c, ok := r.Local.Lookup(name, municipalityHint); ok {
			r.logger.Debug("validated from local table", zap.String("name", name))
			return &c
		}
	}
	return r.Validate(ctx, name, municipalityHint)
}

func (r *Resolver) search(ctx context.Context, partialName string) outcome {
	q := strings.TrimSpace(partialName)
	if utf8.RuneCountInString(q) < r.Limits.MinQueryLength {
		return failed(statusTooShort, nil)
	}

	prompt := strings.NewReplacer(config.PlaceholderQuery, quote(q)).Replace(r.Prompts.Search)
	resp, err := r.generate(ctx, prompt)
	if err != nil {
		return failed(statusUnavailable, err)
	}

	reply, err := common.ParseJSON[model.SearchReply](resp)
	if err != nil {
		return failed(statusMalformed, err)
	}
	if reply.Suggestions == nil {
		return failed(statusMalformed, fmt.Errorf("reply has no suggestions key"))
	}

	candidates := make([]model.Candidate, 0, len(*reply.Suggestions))
	for _, s := range *reply.Suggestions {
		c := s.Candidate()
		if c.FullName == "" {
			continue
		}
		candidates = append(candidates, c)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > r.Limits.MaxSuggestions {
		candidates = candidates[:r.Limits.MaxSuggestions]
	}

	if len(candidates) == 0 {
		return outcome{status: statusEmpty, candidates: candidates}
	}
	return outcome{status: statusOK, candidates: candidates}
}

func (r *Resolver) validate(ctx context.Context, name, municipalityHint string) outcome {
	n := strings.TrimSpace(name)
	if n == "" {
		return failed(statusTooShort, nil)
	}

	hint := ""
	if m := strings.TrimSpace(municipalityHint); m != "" {
		hint = fmt.Sprintf(" El estudiante indica que queda en el municipio de %s.", quote(m))
	}

	prompt := strings.NewReplacer(
		config.PlaceholderName, quote(n),
		config.PlaceholderHint, hint,
	).Replace(r.Prompts.Validate)
	resp, err := r.generate(ctx, prompt)
	if err != nil {
		return failed(statusUnavailable, err)
	}

	reply, err := common.ParseJSON[model.ValidationReply](resp)
	if err != nil {
		return failed(statusMalformed, err)
	}
	if reply.Existe == nil {
		return failed(statusMalformed, fmt.Errorf("reply has no existe key"))
	}
	if !*reply.Existe {
		return failed(statusNotFound, nil)
	}

	return outcome{status: statusOK, candidates: []model.Candidate{reply.Candidate(n)}}
}

// generate is the only place the remote source is called. A nil client, a
// cancelled context and a panicking SDK all come back as errors.
func (r *Resolver) generate(ctx context.Context, prompt string) (resp string, err error) {
	if r.LLM == nil {
		return "", fmt.Errorf("no llm client configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("llm client panicked: %v", p)
		}
	}()
	return r.LLM.Generate(ctx, prompt)
}

func (r *Resolver) log(op, input string, o outcome) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("input", input),
		zap.Stringer("status", o.status),
		zap.Int("results", len(o.candidates)),
	}
	if o.err != nil {
		fields = append(fields, zap.Error(o.err))
	}
	if o.status.degraded() {
		r.logger.Warn("remote lookup degraded", fields...)
		return
	}
	r.logger.Debug("remote lookup finished", fields...)
}

// quote keeps user text from closing the quoted slot in the prompt.
func quote(s string) string {
	return strings.ReplaceAll(s, `"`, `'`)
}
