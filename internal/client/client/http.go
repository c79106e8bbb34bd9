package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/dmitrijs2005/packadmin/internal/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Pack listings embed base64 images, so responses can be large.
const maxResponseBytes = 256 << 20

// HTTPClient talks to the remote data service over REST/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
	timeout time.Duration
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithSessionToken sends token as a bearer credential on every request.
func WithSessionToken(token string) Option {
	return func(c *HTTPClient) { c.token = token }
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type request struct {
	op          string
	method      string
	path        string
	body        io.Reader
	contentType string
	// kind classifies every failure of this request.
	kind error
	// guarded requests turn a 401 into a *RejectedError.
	guarded bool
	// ackRequired requests succeed only on a body with success:true.
	ackRequired bool
}

// result is the acknowledgement body of delete endpoints.
type result struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", r.op, r.kind, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &StatusError{Op: r.op, Err: err, kind: r.kind}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &StatusError{Op: r.op, Err: err, kind: r.kind}
	}

	if resp.StatusCode == http.StatusUnauthorized && r.guarded {
		return newRejectedError(serverMessage(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: r.op, Code: resp.StatusCode, Message: serverMessage(body), kind: r.kind}
	}

	var ack result
	decoded := json.Unmarshal(body, &ack) == nil
	if decoded && ack.Success != nil && !*ack.Success {
		return &StatusError{Op: r.op, Code: resp.StatusCode, Message: ack.Message, kind: r.kind}
	}
	if r.ackRequired && (!decoded || ack.Success == nil) {
		msg := ack.Message
		if msg == "" {
			msg = "missing success acknowledgement"
		}
		return &StatusError{Op: r.op, Code: resp.StatusCode, Message: msg, kind: r.kind}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: %w: decoding response: %w", r.op, r.kind, err)
	}
	return nil
}

func serverMessage(body []byte) string {
	var ack result
	if err := json.Unmarshal(body, &ack); err != nil {
		return ""
	}
	return ack.Message
}

func jsonRequest(op, method, path string, kind error, payload any) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("%s: %w: encoding request: %w", op, kind, err)
	}
	return request{
		op:          op,
		method:      method,
		path:        path,
		body:        bytes.NewReader(b),
		contentType: "application/json",
		kind:        kind,
	}, nil
}

// formField is one ordered text part of a multipart body.
type formField struct {
	name, value string
}

func multipartBody(fields []formField, images []models.Blob) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	for _, img := range images {
		part, err := w.CreateFormFile("images", img.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func list[T any](ctx context.Context, c *HTTPClient, op, path string) ([]T, error) {
	var out []T
	err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, kind: ErrFetch}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ping probes the service with the cheapest read it offers.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.do(ctx, request{op: "ping", method: http.MethodGet, path: "/categories", kind: ErrFetch}, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (c *HTTPClient) ListPacks(ctx context.Context) ([]models.Pack, error) {
	return list[models.Pack](ctx, c, "list packs", "/packs")
}

func (c *HTTPClient) ListAggregatedPacks(ctx context.Context) ([]models.AggregatedPack, error) {
	return list[models.AggregatedPack](ctx, c, "list aggregated packs", "/aggregated-packs")
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]string, error) {
	return list[string](ctx, c, "list categories", "/categories")
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]models.Item, error) {
	return list[models.Item](ctx, c, "list items", "/items")
}

func (c *HTTPClient) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return list[models.Transaction](ctx, c, "list transactions", "/transactions")
}

// CreatePack submits the draft and its images as one multipart form and
// returns the pack as stored by the server.
func (c *HTTPClient) CreatePack(ctx context.Context, draft models.PackDraft, images []models.Blob) (models.Pack, error) {
	const op = "create pack"

	body, contentType, err := multipartBody([]formField{
		{"brand", draft.Brand},
		{"price", draft.Price.String()},
		{"numberOfItems", fmt.Sprint(draft.NumberOfItems)},
		{"category", draft.Category},
	}, images)
	if err != nil {
		return models.Pack{}, fmt.Errorf("%s: %w: encoding form: %w", op, ErrOperationFailed, err)
	}

	var pack models.Pack
	err = c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/packs",
		body:        body,
		contentType: contentType,
		kind:        ErrOperationFailed,
	}, &pack)
	return pack, err
}

func (c *HTTPClient) AddItem(ctx context.Context, packID int64, name string) (models.Item, error) {
	r, err := jsonRequest("add item", http.MethodPost, fmt.Sprintf("/packs/%d/items", packID), ErrOperationFailed,
		struct {
			Name string `json:"name"`
		}{name})
	if err != nil {
		return models.Item{}, err
	}

	var item models.Item
	err = c.do(ctx, r, &item)
	return item, err
}

// AddImages uploads additional images for an existing pack.
func (c *HTTPClient) AddImages(ctx context.Context, packID int64, images []models.Blob) error {
	const op = "add images"

	body, contentType, err := multipartBody(nil, images)
	if err != nil {
		return fmt.Errorf("%s: %w: encoding form: %w", op, ErrOperationFailed, err)
	}
	return c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        fmt.Sprintf("/packs/%d/images", packID),
		body:        body,
		contentType: contentType,
		kind:        ErrOperationFailed,
	}, nil)
}

func (c *HTTPClient) DeleteImages(ctx context.Context, ids []int64) error {
	r, err := jsonRequest("delete images", http.MethodDelete, "/images/delete", ErrOperationFailed,
		struct {
			ImageIDs []int64 `json:"imageIds"`
		}{ids})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// RecordSale registers the sale of a pack. Amount and profit are sent as
// JSON numbers.
func (c *HTTPClient) RecordSale(ctx context.Context, packID int64, amount, profit decimal.Decimal) (models.Transaction, error) {
	r, err := jsonRequest("record sale", http.MethodPost, fmt.Sprintf("/packs/%d/sold", packID), ErrOperationFailed,
		struct {
			Amount json.Number `json:"amount"`
			Profit json.Number `json:"profit"`
		}{json.Number(amount.String()), json.Number(profit.String())})
	if err != nil {
		return models.Transaction{}, err
	}

	var tx models.Transaction
	err = c.do(ctx, r, &tx)
	return tx, err
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id int64, credential string) error {
	return c.guardedDelete(ctx, "delete item", fmt.Sprintf("/items/%d", id), credential)
}

func (c *HTTPClient) DeleteTransaction(ctx context.Context, id int64, credential string) error {
	return c.guardedDelete(ctx, "delete transaction", fmt.Sprintf("/transactions/%d", id), credential)
}

// guardedDelete sends the credential verbatim in the JSON body.
func (c *HTTPClient) guardedDelete(ctx context.Context, op, path, credential string) error {
	r, err := jsonRequest(op, http.MethodDelete, path, ErrOperationFailed,
		struct {
			Password string `json:"password"`
		}{credential})
	if err != nil {
		return err
	}
	r.guarded = true
	r.ackRequired = true
	return c.do(ctx, r, nil)
}

var _ Client = (*HTTPClient)(nil)
