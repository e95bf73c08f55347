package nocodb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"health-wheel/config"

	"github.com/sirupsen/logrus"
)

// ErrNotConfigured is returned by every call when the base URL or token is missing.
var ErrNotConfigured = errors.New("record store is not configured")

const tokenHeader = "xc-token"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx answer of the record store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nocodb: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the record store.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type PageInfo struct {
	TotalRows   int64 `json:"totalRows"`
	Page        int   `json:"page"`
	PageSize    int   `json:"pageSize"`
	IsFirstPage bool  `json:"isFirstPage"`
	IsLastPage  bool  `json:"isLastPage"`
}

type Page struct {
	List     []json.RawMessage `json:"list"`
	PageInfo PageInfo          `json:"pageInfo"`
}

type Query struct {
	Where  string
	Sort   string
	Limit  int
	Offset int
}

type Client struct {
	baseURL  string
	token    string
	pageSize int
	http     HTTPClient
	log      *logrus.Logger
}

func NewClient(cfg config.NocoDBConfig, httpClient HTTPClient, log *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:    strings.TrimSpace(cfg.APIToken),
		pageSize: pageSize,
		http:     httpClient,
		log:      log,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.token != ""
}

// List fetches one page of records.
func (c *Client) List(ctx context.Context, table string, q Query) (*Page, error) {
	params := url.Values{}
	if q.Where != "" {
		params.Set("where", q.Where)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(q.Offset))

	var page Page
	if err := c.do(ctx, http.MethodGet, recordsPath(table), params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAll follows pagination until the last page.
func (c *Client) ListAll(ctx context.Context, table string, q Query) ([]json.RawMessage, error) {
	if q.Limit <= 0 {
		q.Limit = c.pageSize
	}

	var all []json.RawMessage
	for {
		page, err := c.List(ctx, table, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.List...)
		if page.PageInfo.IsLastPage || len(page.List) < q.Limit {
			return all, nil
		}
		q.Offset += len(page.List)
	}
}

func (c *Client) Get(ctx context.Context, table string, id int64, out any) error {
	path := recordsPath(table) + "/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// Create inserts one record and returns its Id.
func (c *Client) Create(ctx context.Context, table string, record any) (int64, error) {
	var created struct {
		ID int64 `json:"Id"`
	}
	if err := c.do(ctx, http.MethodPost, recordsPath(table), nil, record, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, errors.New("nocodb: create returned no record id")
	}
	return created.ID, nil
}

// Update patches a record; record must carry its Id field.
func (c *Client) Update(ctx context.Context, table string, record any) error {
	return c.do(ctx, http.MethodPatch, recordsPath(table), nil, record, nil)
}

func (c *Client) Delete(ctx context.Context, table string, id int64) error {
	body := map[string]int64{"Id": id}
	return c.do(ctx, http.MethodDelete, recordsPath(table), nil, body, nil)
}

// ListLinks fetches the records attached to recordID through linkField.
func (c *Client) ListLinks(ctx context.Context, table, linkField string, recordID int64) (*Page, error) {
	if linkField == "" {
		return nil, fmt.Errorf("%w: link field for table %s", ErrNotConfigured, table)
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.pageSize))
	var page Page
	if err := c.do(ctx, http.MethodGet, linksPath(table, linkField, recordID), params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Link attaches targetIDs to recordID through the given link field.
func (c *Client) Link(ctx context.Context, table, linkField string, recordID int64, targetIDs ...int64) error {
	if linkField == "" {
		return fmt.Errorf("%w: link field for table %s", ErrNotConfigured, table)
	}
	return c.do(ctx, http.MethodPost, linksPath(table, linkField, recordID), nil, linkBody(targetIDs), nil)
}

// Unlink detaches targetIDs from recordID. The target records are kept.
func (c *Client) Unlink(ctx context.Context, table, linkField string, recordID int64, targetIDs ...int64) error {
	if linkField == "" {
		return fmt.Errorf("%w: link field for table %s", ErrNotConfigured, table)
	}
	return c.do(ctx, http.MethodDelete, linksPath(table, linkField, recordID), nil, linkBody(targetIDs), nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("nocodb: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("NocoDB request %s %s", method, path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nocodb: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nocodb: decode response: %w", err)
	}
	return nil
}

func recordsPath(table string) string {
	return "/api/v2/tables/" + url.PathEscape(table) + "/records"
}

func linksPath(table, linkField string, recordID int64) string {
	return fmt.Sprintf("/api/v2/tables/%s/links/%s/records/%d", url.PathEscape(table), url.PathEscape(linkField), recordID)
}

func linkBody(ids []int64) []map[string]int64 {
	body := make([]map[string]int64, 0, len(ids))
	for _, id := range ids {
		body = append(body, map[string]int64{"Id": id})
	}
	return body
}

func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		for _, m := range []string{payload.Msg, payload.Message, payload.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(raw))
}
