// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"
	"text/template"
)

// QueryMode selects how a topic is rewritten before it reaches the
// LLM-backed source.
type QueryMode string

const (
	ModePlain  QueryMode = "plain"
	ModeSOTA   QueryMode = "sota"
	ModeRecent QueryMode = "recent"
)

// DefaultRecentDays is the window used by ModeRecent when none is given.
const DefaultRecentDays = 30

// QueryModes lists the accepted modes in display order.
var QueryModes = []QueryMode{ModePlain, ModeSOTA, ModeRecent}

// sotaPromptTmpl asks for the current state of the art on a topic.
var sotaPromptTmpl = template.Must(template.New("sota").Parse(`What is the current state-of-the-art (SOTA) for: {{.Topic}}

Focus on:
1. The MOST RECENT methods and frameworks (last 6 months preferred)
2. What has SUPERSEDED older approaches: name the older method and its replacement
3. Key papers with arxiv IDs or DOIs and their publication dates
4. Open-source implementations with GitHub URLs if available
5. Quantitative benchmark results comparing old vs new approaches

Be specific about dates. For each method mentioned, state its publication year/month.
Distinguish between "widely adopted" and "just published / not yet validated".`))

// recentPromptTmpl restricts the answer to a window of days.
var recentPromptTmpl = template.Must(template.New("recent").Parse(`What are the most recent developments (last {{.Days}} days) in: {{.Topic}}

Focus on:
1. New papers, preprints, or announcements from the last {{.Days}} days
2. New framework releases or major version updates
3. Benchmark results that changed the state-of-the-art
4. Include specific dates, arxiv IDs, and GitHub URLs where available

Only include developments from the last {{.Days}} days. Do not include older work.`))

type promptData struct {
	Topic string
	Days  int
}

// mustRender executes a prompt template. The templates are fixed and only
// reference promptData fields, so an error is a programming bug.
func mustRender(t *template.Template, data promptData) string {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic(fmt.Sprintf("rendering %s prompt: %v", t.Name(), err))
	}
	return b.String()
}

// BuildSotaQuery wraps topic in the state-of-the-art instruction template.
func BuildSotaQuery(topic string) string {
	return mustRender(sotaPromptTmpl, promptData{Topic: topic})
}

// BuildRecentQuery wraps topic in the recent-developments template for a
// window of days. days <= 0 uses DefaultRecentDays.
func BuildRecentQuery(topic string, days int) string {
	if days <= 0 {
		days = DefaultRecentDays
	}
	return mustRender(recentPromptTmpl, promptData{Topic: topic, Days: days})
}

// BuildQuery rewrites topic for mode. The empty mode is ModePlain. The
// result depends only on the arguments.
func BuildQuery(topic string, mode QueryMode, days int) (string, error) {
	switch mode {
	case "", ModePlain:
		return topic, nil
	case ModeSOTA:
		return BuildSotaQuery(topic), nil
	case ModeRecent:
		return BuildRecentQuery(topic, days), nil
	default:
		names := make([]string, len(QueryModes))
		for i, m := range QueryModes {
			names[i] = string(m)
		}
		return "", invalidParam("unknown query mode %q, valid: %s", mode, strings.Join(names, ", "))
	}
}
