package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/silk-route/internal/content"
	"google.golang.org/api/option"
)

// textModel is the part of *genai.GenerativeModel the player uses.
type textModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiPlayer asks a Gemini model what to do.
type GeminiPlayer struct {
	client *genai.Client
	model  textModel
}

// NewGeminiPlayer connects to Gemini with apiKey.
func NewGeminiPlayer(ctx context.Context, apiKey, modelName string) (*GeminiPlayer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create player client: %w", err)
	}
	return &GeminiPlayer{client: client, model: client.GenerativeModel(modelName)}, nil
}

// Close releases the client.
func (g *GeminiPlayer) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiPlayer) Choose(ctx context.Context, t Turn) (string, error) {
	var b strings.Builder
	for i, c := range t.Dialogue.Choices {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, c.ID, c.Text)
	}
	speaker := t.Dialogue.Speaker
	if t.Dialogue.SpeakerRole != "" {
		speaker += " (" + t.Dialogue.SpeakerRole + ")"
	}
	prompt := fmt.Sprintf(`You are playing a narrative adventure set along a lost Silk Route through Varanasi.
Chapter: %s
Points: %d

%s says:
%s

Your options:
%s
Which option do you pick? Stay in character. Return ONLY the option id, no extra commentary.`,
		t.Chapter,
		t.Points,
		speaker,
		t.Dialogue.Text,
		b.String(),
	)

	reply, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return parseChoice(reply, t.Dialogue.Choices), nil
}

func (g *GeminiPlayer) Solve(ctx context.Context, p content.Puzzle) ([]string, error) {
	prompt := fmt.Sprintf(`You are solving a puzzle in a narrative adventure.
Puzzle: %s
%s
Hint: %s

Available pieces: %s

Pick exactly %d pieces in the right order. Return ONLY the piece ids separated by commas.`,
		p.Title,
		p.Description,
		p.Hint,
		strings.Join(p.Options, ", "),
		len(p.Solution),
	)

	reply, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSequence(reply, p.Options), nil
}

func (g *GeminiPlayer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	if txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
		return strings.TrimSpace(string(txt)), nil
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

// parseChoice accepts a choice id or its 1-based number. Anything else is
// returned as is and rejected by the engine.
func parseChoice(reply string, choices []content.Choice) string {
	reply = strings.Trim(strings.TrimSpace(reply), "`\"'[]. ")
	for _, c := range choices {
		if strings.EqualFold(reply, c.ID) {
			return c.ID
		}
	}
	if n, err := strconv.Atoi(reply); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].ID
	}
	return reply
}

// parseSequence keeps the reply tokens that name a known option, in order.
func parseSequence(reply string, options []string) []string {
	known := make(map[string]bool, len(options))
	for _, o := range options {
		known[o] = true
	}
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '\n' || r == ' ' || r == '\t' || r == '`' || r == '"' || r == '[' || r == ']'
	})
	var out []string
	for _, f := range fields {
		if known[f] {
			out = append(out, f)
		}
	}
	return out
}
