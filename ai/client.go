// Package ai implements the suggestion oracle client: three prompts against
// an OpenAI-compatible chat-completions endpoint, plus the response-recovery
// logic that turns untrusted free text back into structured suggestions.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"autoeda/domain/table"
	"autoeda/internal/config"
	"autoeda/internal/errors"
	"autoeda/ports"
)

// OracleClient is the process-scoped handle to the text-completion oracle.
// It is constructed once at startup and passed by reference into the
// pipeline; the only state it holds is connection configuration.
type OracleClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	httpClient  *http.Client
}

var _ ports.Oracle = (*OracleClient)(nil)

// NewOracleClient creates the oracle client from configuration.
func NewOracleClient(cfg config.AIConfig) *OracleClient {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	log.Printf("[OracleClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d, timeout=%v",
		cfg.Model, cfg.Temperature, cfg.MaxTokens, timeout)

	return &OracleClient{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// complete performs one chat-completions call and returns the raw text of
// the first choice. A 429 from the oracle surfaces as the distinct quota
// error; every other failure is an oracle availability error.
func (c *OracleClient) complete(ctx context.Context, systemMessage, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]chatMessage, 0, 2)
	if systemMessage != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemMessage})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:               c.model,
		Messages:            messages,
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
	})
	if err != nil {
		return "", errors.OracleError(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.OracleError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Printf("[OracleClient] Sending request to %s - promptLength=%d", c.model, len(prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.OracleError(fmt.Errorf("request timeout after %v: %w", c.timeout, err))
		}
		return "", errors.OracleError(fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Printf("[OracleClient] Quota exhausted (status 429)")
		return "", errors.OracleQuotaExceeded()
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", errors.OracleError(fmt.Errorf("oracle API error (status %d): %s", resp.StatusCode, string(raw)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.OracleError(fmt.Errorf("failed to read response: %w", err))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", errors.OracleError(fmt.Errorf("failed to parse response envelope: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return "", errors.OracleError(fmt.Errorf("no choices in oracle response"))
	}

	content := parsed.Choices[0].Message.Content
	log.Printf("[OracleClient] Received %d bytes of content", len(content))
	return content, nil
}

// Summarize asks the oracle for a short free-text summary of the table.
// The prompt carries the first 10 rows rendered as plain text; the response
// is used verbatim. Failure here is fatal to the request.
func (c *OracleClient) Summarize(ctx context.Context, tbl *table.Table) (string, error) {
	prompt := renderPrompt(summaryPrompt, map[string]string{
		"DATASET_SAMPLE": tbl.Head(10),
	})
	return c.complete(ctx, summarySystemRole, prompt)
}

// SuggestColumnVisualizations asks the oracle which chart to draw per
// column. Transport failures other than quota exhaustion degrade to an
// empty mapping; so does unparsable output.
func (c *OracleClient) SuggestColumnVisualizations(ctx context.Context, tbl *table.Table) (map[string]string, error) {
	meta := make(map[string]map[string]interface{}, len(tbl.Columns))
	for _, m := range table.ExtractMetadata(tbl) {
		meta[m.Name] = map[string]interface{}{
			"dtype":         string(m.Kind),
			"unique_values": m.UniqueCount,
		}
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return map[string]string{}, nil
	}

	prompt := renderPrompt(columnPrompt, map[string]string{
		"METADATA": string(metaJSON),
	})

	content, err := c.complete(ctx, columnSystemRole, prompt)
	if err != nil {
		if errors.GetCode(err) == errors.CodeOracleQuota {
			return nil, err
		}
		log.Printf("[OracleClient] Column suggestion call failed, degrading to no suggestions: %v", err)
		return map[string]string{}, nil
	}
	return decodeAssignments(content), nil
}

// SuggestPairwiseVisualizations asks the oracle for up to 5 feature pairs.
// The prompt depends on the summary text, so this must run after Summarize.
func (c *OracleClient) SuggestPairwiseVisualizations(ctx context.Context, tbl *table.Table, summary string) (map[string][3]string, error) {
	columnsJSON, err := json.Marshal(tbl.ColumnNames())
	if err != nil {
		return map[string][3]string{}, nil
	}

	prompt := renderPrompt(pairPrompt, map[string]string{
		"COLUMNS": string(columnsJSON),
		"SUMMARY": summary,
	})

	content, err := c.complete(ctx, pairSystemRole, prompt)
	if err != nil {
		if errors.GetCode(err) == errors.CodeOracleQuota {
			return nil, err
		}
		log.Printf("[OracleClient] Pair suggestion call failed, degrading to no suggestions: %v", err)
		return map[string][3]string{}, nil
	}
	return decodePairs(content), nil
}

// Chat passes a raw prompt through to the oracle.
func (c *OracleClient) Chat(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, "", prompt)
}
