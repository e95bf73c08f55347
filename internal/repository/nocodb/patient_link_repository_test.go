package nocodb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"health-wheel/config"
	store "health-wheel/internal/infrastructure/nocodb"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientLinkRepository_RoundTrip(t *testing.T) {
	var methods []string
	var unlinked []map[string]int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/tables/patients/links/cRatings/records/7", r.URL.Path)
		methods = append(methods, r.Method)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"list":[{"Id":101,"Title":"Sleep Quality"}],"pageInfo":{"isLastPage":true}}`)
		case http.MethodDelete:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&unlinked))
			_, _ = io.WriteString(w, `true`)
		default:
			_, _ = io.WriteString(w, `true`)
		}
	}))
	defer srv.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)
	client := store.NewClient(config.NocoDBConfig{BaseURL: srv.URL, APIToken: "tok"}, srv.Client(), log)
	repo := NewPatientLinkRepository(client, "patients")
	ctx := context.Background()

	records, err := repo.ListLinks(ctx, 7, "cRatings")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(101), records[0].ID())
	assert.Equal(t, "Sleep Quality", records[0]["Title"])

	require.NoError(t, repo.Link(ctx, 7, "cRatings", []int64{101}))
	require.NoError(t, repo.Unlink(ctx, 7, "cRatings", []int64{101}))
	assert.Equal(t, []map[string]int64{{"Id": 101}}, unlinked)
	assert.Equal(t, []string{http.MethodGet, http.MethodPost, http.MethodDelete}, methods)
}
