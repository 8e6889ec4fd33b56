package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adboard/adboard-go/internal/models"
	"github.com/adboard/adboard-go/internal/utils"
)

// Generator turns the current performance picture into a short
// natural-language commentary for the dashboard.
type Generator interface {
	Insight(ctx context.Context, summary models.Summary, top []models.Aggregate) (string, error)
}

// Doer matches *http.Client; tests swap in fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type openAIGenerator struct {
	c     Doer
	url   string
	key   string
	model string
}

// NewOpenAI builds a Generator backed by an OpenAI-compatible
// chat-completions endpoint.
func NewOpenAI(c Doer, url, key, model string) Generator {
	return &openAIGenerator{c: c, url: url, key: key, model: model}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *openAIGenerator) Insight(ctx context.Context, summary models.Summary, top []models.Aggregate) (string, error) {
	if g.key == "" {
		return "", errors.New("insights: no api key configured")
	}
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a performance-marketing analyst. Answer in one short paragraph, plain text."},
			{Role: "user", Content: buildPrompt(summary, top)},
		},
	})
	if err != nil {
		return "", err
	}

	var out chatResponse
	err = utils.NewBackoff(500*time.Millisecond, 2).Do(func(int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.key)
		resp, err := g.c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("insights: non-2xx %d body=%s", resp.StatusCode, string(b))
		}
		return json.NewDecoder(resp.Body).Decode(&out)
	})
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("insights: empty completion")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func buildPrompt(s models.Summary, top []models.Aggregate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account totals: %d ads, $%.2f spend, $%.2f revenue, %d clicks, %d impressions, %.1f bookings. ",
		s.TotalAds, s.TotalSpend, s.TotalRevenue, s.TotalClicks, s.TotalImpressions, s.TotalBookings)
	fmt.Fprintf(&b, "Overall CTR %.2f%%, CPC $%.2f, CPM $%.2f, CPA $%.2f, ROAS %.2f. %d ads meet the success bar. ",
		s.CTR, s.CPC, s.CPM, s.CPA, s.ROAS, s.SuccessfulAds)
	if len(top) > 0 {
		b.WriteString("Top ad sets by spend: ")
		for i, a := range top {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "%s ($%.0f spend, ROAS %.2f, CPA $%.2f); ", a.Key, a.Spend, a.ROAS, a.CPA)
		}
	}
	b.WriteString("Summarize how the account is performing and what stands out.")
	return b.String()
}
