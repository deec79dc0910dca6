// Package ai invokes the LLM completion service with a fixed output schema
// and a forced tool selection, and validates what comes back. One attempt
// per pipeline invocation; retries are a caller concern and deliberately
// not implemented here.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/config"
	"github.com/Soptik1290/restaurant-menu-summarizer/menuerr"
	"github.com/Soptik1290/restaurant-menu-summarizer/prompt"
	"github.com/Soptik1290/restaurant-menu-summarizer/types"
)

// RawMenu is the validated model output, before the pipeline stamps its own
// date and source URL onto the final result.
type RawMenu struct {
	RestaurantName string
	MenuItems      []types.MenuItem
	DailyMenuFound bool
}

// Client extracts structured menu data through OpenAI chat completions.
type Client struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL string
	model   string
	timeout time.Duration
}

// WithBaseURL points the client at a different completions endpoint.
// Used for proxies and for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) { c.baseURL = baseURL }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *clientConfig) { c.model = model }
}

// WithTimeout overrides the per-call completion timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// NewClient builds a Client for the given API key.
func NewClient(apiKey string, log zerolog.Logger, opts ...Option) *Client {
	cfg := clientConfig{model: config.DefaultModel, timeout: config.AITimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	// One attempt per pipeline invocation; the SDK's automatic retries
	// would contradict that.
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.timeout),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &Client{
		api:   openai.NewClient(reqOpts...),
		model: cfg.model,
		log:   log.With().Str("component", "ai").Logger(),
	}
}

// menuToolParameters is the JSON schema the model's tool call must satisfy.
var menuToolParameters = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"restaurant_name": map[string]any{
			"type":        "string",
			"description": "Name of the restaurant",
		},
		"menu_items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{"type": "string"},
					"name":     map[string]any{"type": "string"},
					"price":    map[string]any{"type": "number"},
					"allergens": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"weight": map[string]any{"type": "string"},
				},
				"required": []string{"category", "name", "price"},
			},
		},
		"daily_menu": map[string]any{
			"type":        "boolean",
			"description": "Whether a daily menu for today was found",
		},
	},
	"required": []string{"restaurant_name", "menu_items", "daily_menu"},
}

// Extract sends the prompt and returns the validated tool-call arguments.
//
// The model must answer through the save_menu_json tool; any other response
// shape is a protocol failure, distinct from API-level provider errors.
func (c *Client) Extract(ctx context.Context, p prompt.Payload) (*RawMenu, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
		Tools: []openai.ChatCompletionToolUnionParam{{
			OfFunction: &openai.ChatCompletionFunctionToolParam{
				Function: openai.FunctionDefinitionParam{
					Name:        config.MenuToolName,
					Description: openai.String("Save the extracted daily menu as structured JSON"),
					Parameters:  menuToolParameters,
				},
				Type: constant.ValueOf[constant.Function](),
			},
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfFunctionToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: config.MenuToolName,
				},
				Type: constant.ValueOf[constant.Function](),
			},
		},
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		if isTimeout(err) {
			return nil, menuerr.Wrap(menuerr.KindSubserviceTimeout, "completion request timed out", err)
		}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &menuerr.Error{
				Kind:    menuerr.KindAIService,
				Message: fmt.Sprintf("completion request rejected: %s", apiErr.Message),
				Status:  apiErr.StatusCode,
				Err:     err,
			}
		}
		return nil, menuerr.Wrap(menuerr.KindAIService, "completion request failed", err)
	}

	if len(resp.Choices) == 0 {
		return nil, menuerr.New(menuerr.KindAIProtocol, "completion returned no choices")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		return nil, menuerr.New(menuerr.KindAIProtocol, "model did not answer through the menu tool")
	}
	call := msg.ToolCalls[0]
	if call.Function.Name != config.MenuToolName {
		return nil, menuerr.New(menuerr.KindAIProtocol,
			fmt.Sprintf("model called unexpected tool %q", call.Function.Name))
	}
	if call.Function.Arguments == "" {
		return nil, menuerr.New(menuerr.KindAIProtocol, "tool call carried no arguments")
	}

	menu, err := ParseArguments(call.Function.Arguments)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("restaurant", menu.RestaurantName).
		Int("items", len(menu.MenuItems)).
		Bool("daily_menu", menu.DailyMenuFound).
		Msg("Model returned structured menu")

	return menu, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

type rawArguments struct {
	RestaurantName string    `json:"restaurant_name"`
	MenuItems      []rawItem `json:"menu_items"`
	DailyMenu      bool      `json:"daily_menu"`
}

type rawItem struct {
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Allergens []string `json:"allergens"`
	Weight    *string  `json:"weight"`
}

// ParseArguments decodes and validates the tool-call argument payload.
// A payload that parses but does not conform (empty item names, negative
// prices) is still a protocol failure.
func ParseArguments(arguments string) (*RawMenu, error) {
	var raw rawArguments
	if err := json.Unmarshal([]byte(arguments), &raw); err != nil {
		return nil, menuerr.Wrap(menuerr.KindAIProtocol, "tool arguments did not parse", err)
	}

	items := make([]types.MenuItem, 0, len(raw.MenuItems))
	for _, it := range raw.MenuItems {
		if it.Name == "" {
			return nil, menuerr.New(menuerr.KindAIProtocol, "tool arguments contained an item without a name")
		}
		if it.Price < 0 {
			return nil, menuerr.New(menuerr.KindAIProtocol,
				fmt.Sprintf("tool arguments contained a negative price for %q", it.Name))
		}
		allergens := it.Allergens
		if allergens == nil {
			allergens = []string{}
		}
		items = append(items, types.MenuItem{
			Category:  it.Category,
			Name:      it.Name,
			Price:     it.Price,
			Allergens: allergens,
			Weight:    it.Weight,
		})
	}

	// "No menu found" is a valid value, not an error. Items reported
	// alongside daily_menu=false are discarded to keep the invariant.
	if !raw.DailyMenu {
		items = items[:0]
	}

	return &RawMenu{
		RestaurantName: raw.RestaurantName,
		MenuItems:      items,
		DailyMenuFound: raw.DailyMenu,
	}, nil
}
