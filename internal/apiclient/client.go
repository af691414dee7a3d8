// Package apiclient talks to the e-learning backend's memory card endpoints.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"resty.dev/v3"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

const (
	pathDueCards    = "/memory-cards/due"
	pathReview      = "/memory-cards/review"
	pathDecks       = "/memory-cards/decks"
	pathDeck        = "/memory-cards/decks/{deckId}"
	pathCards       = "/memory-cards/decks/{deckId}/cards"
	pathCard        = "/memory-cards/decks/{deckId}/cards/{cardId}"
	pathGenerate    = "/memory-cards/generate"
	requestIDHeader = "X-Request-Id"
)

type Client struct {
	httpClient        *resty.Client
	timeout           time.Duration
	maxRetryAttempts  uint
	retryDelay        time.Duration
	generationTimeout time.Duration
}

type Option func(*Client)

// WithToken sends the bearer token issued by the identity provider.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.httpClient.SetAuthToken(token)
		}
	}
}

// WithTimeout bounds every request except card generation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetry sets how many times idempotent reads are retried and the base backoff delay.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.maxRetryAttempts = attempts
		c.retryDelay = delay
	}
}

func WithGenerationTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.generationTimeout = timeout
	}
}

func NewClient(baseURL string, options ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")
	httpClient.SetHeader("Accept", "application/json")

	client := &Client{
		httpClient:        httpClient,
		timeout:           30 * time.Second,
		maxRetryAttempts:  2,
		retryDelay:        200 * time.Millisecond,
		generationTimeout: 2 * time.Minute,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

func (client *Client) request(ctx context.Context) *resty.Request {
	return client.httpClient.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, uuid.NewString())
}

// send executes the request within timeout and converts non-2xx responses into an APIError.
func send(request *resty.Request, method, path string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(request.Context(), timeout)
	defer cancel()

	response, err := request.SetContext(ctx).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.%s(%s) > %w", method, path, err)
	}
	if response.IsError() {
		apiErr := newAPIError(method, path, response.StatusCode(), response.String())
		slog.Default().Debug("backend returned an error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", apiErr.StatusCode),
			slog.String("requestId", request.Header.Get(requestIDHeader)),
		)
		return nil, apiErr
	}
	return []byte(response.String()), nil
}

// get runs an idempotent GET, retrying transient failures with exponential backoff.
func (client *Client) get(ctx context.Context, build func() *resty.Request, path string) ([]byte, error) {
	var body []byte
	if err := retry.Do(
		func() error {
			result, err := send(build(), http.MethodGet, path, client.timeout)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("retrying backend request",
				slog.String("path", path),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	); err != nil {
		return nil, err
	}
	return body, nil
}

// DueCards returns the cards currently due for the query.
// A missing or malformed dueCards field is treated as an empty set.
func (client *Client) DueCards(ctx context.Context, query memorycard.DueCardsQuery) (memorycard.DueCards, error) {
	params := map[string]string{
		"userId": query.UserID,
		"limit":  strconv.Itoa(query.Limit),
	}
	if query.DeckID != "" {
		params["deckId"] = query.DeckID
	}
	if query.CourseID != "" {
		params["courseId"] = query.CourseID
	}

	body, err := client.get(ctx, func() *resty.Request {
		return client.request(ctx).SetQueryParams(params)
	}, pathDueCards)
	if err != nil {
		return memorycard.DueCards{}, err
	}

	var response struct {
		DueCards json.RawMessage `json:"dueCards"`
		TotalDue *int            `json:"totalDue"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		slog.Default().Warn("malformed due cards response",
			slog.String("userId", query.UserID),
			slog.Any("error", err),
		)
		return memorycard.DueCards{Cards: []memorycard.MemoryCard{}}, nil
	}

	cards := memorycard.CardsFromArray(response.DueCards)
	totalDue := len(cards)
	if response.TotalDue != nil {
		totalDue = *response.TotalDue
	}
	return memorycard.DueCards{Cards: cards, TotalDue: totalDue}, nil
}

// SubmitReview sends a card's difficulty rating. It is never retried automatically.
func (client *Client) SubmitReview(ctx context.Context, review memorycard.CardReview) error {
	if _, err := send(client.request(ctx).SetBody(review), http.MethodPost, pathReview, client.timeout); err != nil {
		return err
	}
	return nil
}

func (client *Client) ListDecks(ctx context.Context, userID string) ([]memorycard.MemoryCardDeck, error) {
	body, err := client.get(ctx, func() *resty.Request {
		return client.request(ctx).SetQueryParam("userId", userID)
	}, pathDecks)
	if err != nil {
		return nil, err
	}

	var decks []memorycard.MemoryCardDeck
	if err := json.Unmarshal(body, &decks); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(decks) > %w", err)
	}
	return decks, nil
}

// GetDeck returns a deck with its cards normalized by memorycard.ExtractCards.
func (client *Client) GetDeck(ctx context.Context, userID, deckID string) (memorycard.MemoryCardDeck, error) {
	body, err := client.get(ctx, func() *resty.Request {
		return client.request(ctx).
			SetPathParam("deckId", deckID).
			SetQueryParam("userId", userID)
	}, pathDeck)
	if err != nil {
		return memorycard.MemoryCardDeck{}, err
	}

	var deck memorycard.MemoryCardDeck
	if err := json.Unmarshal(body, &deck); err != nil {
		return memorycard.MemoryCardDeck{}, fmt.Errorf("json.Unmarshal(deck) > %w", err)
	}
	return deck, nil
}

func (client *Client) CreateDeck(ctx context.Context, deck memorycard.NewDeck) (memorycard.MemoryCardDeck, error) {
	body, err := send(client.request(ctx).SetBody(deck), http.MethodPost, pathDecks, client.timeout)
	if err != nil {
		return memorycard.MemoryCardDeck{}, err
	}

	var created memorycard.MemoryCardDeck
	if err := json.Unmarshal(body, &created); err != nil {
		return memorycard.MemoryCardDeck{}, fmt.Errorf("json.Unmarshal(deck) > %w", err)
	}
	return created, nil
}

func (client *Client) DeleteDeck(ctx context.Context, userID, deckID string) error {
	request := client.request(ctx).
		SetPathParam("deckId", deckID).
		SetQueryParam("userId", userID)
	if _, err := send(request, http.MethodDelete, pathDeck, client.timeout); err != nil {
		return err
	}
	return nil
}

func (client *Client) AddCard(ctx context.Context, userID string, card memorycard.MemoryCard) (memorycard.MemoryCard, error) {
	payload := struct {
		UserID string `json:"userId"`
		memorycard.MemoryCard
	}{
		UserID:     userID,
		MemoryCard: card,
	}
	request := client.request(ctx).
		SetPathParam("deckId", card.DeckID).
		SetBody(payload)
	body, err := send(request, http.MethodPost, pathCards, client.timeout)
	if err != nil {
		return memorycard.MemoryCard{}, err
	}

	var created memorycard.MemoryCard
	if err := json.Unmarshal(body, &created); err != nil {
		return memorycard.MemoryCard{}, fmt.Errorf("json.Unmarshal(card) > %w", err)
	}
	return created, nil
}

func (client *Client) UpdateCard(ctx context.Context, userID, deckID, cardID string, update memorycard.CardUpdate) (memorycard.MemoryCard, error) {
	payload := struct {
		UserID string `json:"userId"`
		DeckID string `json:"deckId"`
		CardID string `json:"cardId"`
		memorycard.CardUpdate
	}{
		UserID:     userID,
		DeckID:     deckID,
		CardID:     cardID,
		CardUpdate: update,
	}
	request := client.request(ctx).
		SetPathParam("deckId", deckID).
		SetPathParam("cardId", cardID).
		SetBody(payload)
	body, err := send(request, http.MethodPatch, pathCard, client.timeout)
	if err != nil {
		return memorycard.MemoryCard{}, err
	}

	var updated memorycard.MemoryCard
	if err := json.Unmarshal(body, &updated); err != nil {
		return memorycard.MemoryCard{}, fmt.Errorf("json.Unmarshal(card) > %w", err)
	}
	return updated, nil
}

func (client *Client) DeleteCard(ctx context.Context, userID, deckID, cardID string) error {
	request := client.request(ctx).
		SetPathParam("deckId", deckID).
		SetPathParam("cardId", cardID).
		SetQueryParam("userId", userID)
	if _, err := send(request, http.MethodDelete, pathCard, client.timeout); err != nil {
		return err
	}
	return nil
}

// GenerateCards asks the backend's AI generation to build a deck for the course chapters.
// It runs under the generation timeout instead of the request timeout.
func (client *Client) GenerateCards(ctx context.Context, request memorycard.GenerateCardsRequest) (memorycard.GenerateCardsResult, error) {
	body, err := send(client.request(ctx).SetBody(request), http.MethodPost, pathGenerate, client.generationTimeout)
	if err != nil {
		return memorycard.GenerateCardsResult{}, err
	}

	var result memorycard.GenerateCardsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return memorycard.GenerateCardsResult{}, fmt.Errorf("json.Unmarshal(generated deck) > %w", err)
	}
	if result.CardsGenerated == 0 {
		result.CardsGenerated = len(result.Deck.Cards)
	}
	return result, nil
}
