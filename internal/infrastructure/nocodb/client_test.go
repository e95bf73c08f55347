package nocodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"health-wheel/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(config.NocoDBConfig{BaseURL: srv.URL + "/", APIToken: "tok", PageSize: 2}, srv.Client(), log)
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(config.NocoDBConfig{BaseURL: "http://example.invalid"}, nil, nil)

	_, err := c.List(context.Background(), "t", Query{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, c.Configured())
}

func TestClient_ListSendsTokenAndWhere(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("xc-token"))
		assert.Equal(t, "/api/v2/tables/ratings/records", r.URL.Path)
		assert.Equal(t, "(patient_id,eq,7)~and(criteres_domaine,eq,Sommeil & repos)", r.URL.Query().Get("where"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"list":[{"Id":1}],"pageInfo":{"isLastPage":true}}`)
	})

	where, err := Where(EqInt("patient_id", 7), Eq("criteres_domaine", "Sommeil & repos"))
	require.NoError(t, err)
	page, err := c.List(context.Background(), "ratings", Query{Where: where})
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.True(t, page.PageInfo.IsLastPage)
}

func TestClient_ListAllFollowsPages(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		switch offset {
		case 0:
			_, _ = io.WriteString(w, `{"list":[{"Id":1},{"Id":2}],"pageInfo":{"isLastPage":false}}`)
		case 2:
			_, _ = io.WriteString(w, `{"list":[{"Id":3},{"Id":4}],"pageInfo":{"isLastPage":false}}`)
		default:
			_, _ = io.WriteString(w, `{"list":[{"Id":5}],"pageInfo":{"isLastPage":true}}`)
		}
	})

	rows, err := c.ListAll(context.Background(), "t", Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_CreateAndLink(t *testing.T) {
	var linked []map[string]int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/tables/ratings/records":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "rating", body["type"])
			_, _ = io.WriteString(w, `{"Id":42}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/tables/ratings/links/lnk/records/42":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&linked))
			_, _ = io.WriteString(w, `true`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	})

	id, err := c.Create(context.Background(), "ratings", map[string]any{"type": "rating"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, c.Link(context.Background(), "ratings", "lnk", id, 7))
	assert.Equal(t, []map[string]int64{{"Id": 7}}, linked)
}

func TestClient_LinkWithoutFieldIsConfigurationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	assert.ErrorIs(t, c.Link(context.Background(), "ratings", "", 1, 2), ErrNotConfigured)
	assert.ErrorIs(t, c.Unlink(context.Background(), "ratings", "", 1, 2), ErrNotConfigured)
	_, err := c.ListLinks(context.Background(), "ratings", "", 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_ListLinksAndUnlink(t *testing.T) {
	var unlinked []map[string]int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/tables/patients/links/cRatings/records/7", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"list":[{"Id":101,"Title":"Sleep Quality"},{"Id":102,"Title":"Workload"}],"pageInfo":{"isLastPage":true}}`)
		case http.MethodDelete:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&unlinked))
			_, _ = io.WriteString(w, `true`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})

	page, err := c.ListLinks(context.Background(), "patients", "cRatings", 7)
	require.NoError(t, err)
	assert.Len(t, page.List, 2)

	require.NoError(t, c.Unlink(context.Background(), "patients", "cRatings", 7, 101, 102))
	assert.Equal(t, []map[string]int64{{"Id": 101}, {"Id": 102}}, unlinked)
}

func TestClient_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"msg":"Record not found"}`)
	})

	var out map[string]any
	err := c.Get(context.Background(), "t", 9, &out)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Record not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(fmt.Errorf("wrapped: %w", errors.New("other"))))
}

func TestWhere_SkipsEmptyValues(t *testing.T) {
	where, err := Where(Eq("domaines", "Travail"), Eq("criteres", ""))
	require.NoError(t, err)
	assert.Equal(t, "(domaines,eq,Travail)", where)

	where, err = Where()
	require.NoError(t, err)
	assert.Equal(t, "", where)
}

func TestWhere_RejectsReservedCharacters(t *testing.T) {
	for _, v := range []string{
		"Sommeil)~or(patient_id,gt,0",
		"a,b",
		"(x",
		"x~not",
	} {
		where, err := Where(EqInt("patient_id", 7), Eq("criteres_domaine", v))
		assert.ErrorIs(t, err, ErrUnsafeFilterValue, v)
		assert.Empty(t, where, v)
	}
	assert.True(t, SafeValue("alice+tag@example.com"))
}
