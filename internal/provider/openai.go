package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/akovalev/claimsift/internal/model"
)

// OpenAIAnalyzer implements ContentAnalyzer and CounterClaimExtractor on
// top of the OpenAI chat completions API
type OpenAIAnalyzer struct {
	client *openai.Client
	config model.LLMConfig
}

// NewOpenAIAnalyzer creates an analyzer. A missing API key is a
// configuration error, surfaced at construction rather than mid-run.
func NewOpenAIAnalyzer(config model.LLMConfig) (*OpenAIAnalyzer, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

const analyzePrompt = `You extract factual claims from a video transcript.

Return a JSON array. Each element:
{"text": "<one self-contained factual assertion>", "timestamp": <seconds or 0>, "speaker": "<name or empty>"}

Rules:
1. Extract every checkable factual assertion: credentials, studies, statistics, media coverage, product effects, endorsements.
2. Keep each claim self-contained: include names and numbers from context.
3. Do not extract opinions, questions, or instructions.
4. Return ONLY the JSON array, no other text.`

const counterClaimPrompt = `You extract counter-claims from a third-party review transcript about this claim:

%q

Return a JSON array. Each element:
{"text": "<the counter-assertion>", "snippet": "<exact quote from the transcript supporting it>", "credibility": <0.0-1.0>}

Rules:
1. Only include counter-claims with a verbatim supporting quote in "snippet".
2. Credibility reflects how concrete and sourced the counter-claim is.
3. Return ONLY the JSON array, no other text.`

// Analyze extracts raw candidate claims from the video transcript
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, video VideoSource) ([]model.RawClaim, error) {
	if strings.TrimSpace(video.Transcript) == "" {
		return nil, nil
	}

	content, err := a.complete(ctx, analyzePrompt,
		fmt.Sprintf("Video: %s\nChannel: %s\n\nTranscript:\n%s", video.Title, video.Channel, video.Transcript))
	if err != nil {
		return nil, err
	}

	var claims []model.RawClaim
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &claims); err != nil {
		return nil, &MalformedResponseError{Provider: "openai", Payload: content, Err: err}
	}
	return claims, nil
}

// ExtractCounterClaims pulls snippet-anchored counter-claims from a review
// transcript. Entries without a snippet are dropped here; an unanchored
// assertion is not counter-evidence.
func (a *OpenAIAnalyzer) ExtractCounterClaims(ctx context.Context, claimText, transcript string) ([]model.CounterClaim, error) {
	content, err := a.complete(ctx, fmt.Sprintf(counterClaimPrompt, claimText), transcript)
	if err != nil {
		return nil, err
	}

	var raw []model.CounterClaim
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &raw); err != nil {
		return nil, &MalformedResponseError{Provider: "openai", Payload: content, Err: err}
	}

	var anchored []model.CounterClaim
	for _, cc := range raw {
		if strings.TrimSpace(cc.Snippet) == "" || strings.TrimSpace(cc.Text) == "" {
			continue
		}
		if cc.Credibility < 0 {
			cc.Credibility = 0
		}
		if cc.Credibility > 1 {
			cc.Credibility = 1
		}
		anchored = append(anchored, cc)
	}
	return anchored, nil
}

// complete issues one chat completion with the configured model and timeout
func (a *OpenAIAnalyzer) complete(ctx context.Context, system, user string) (string, error) {
	timeout := time.Duration(a.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := a.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := a.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1,
	})
	if err != nil {
		return "", &RecoverableError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &MalformedResponseError{Provider: "openai", Err: fmt.Errorf("no choices in response")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// extractJSONArray trims code fences and surrounding prose around a JSON array
func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return content
	}
	return content[start : end+1]
}
