package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"health-wheel/config"
	"health-wheel/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCriteriaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "criteria.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
domains:
  - name: Sommeil
    criteria:
      - text: Qualité du sommeil
        provenance: [Montre connectée, Questionnaire]
      - text: Durée du sommeil
  - name: Travail
    criteria:
      - text: Charge de travail
`), 0o600))

	got, err := loadCriteriaFile(path)
	require.NoError(t, err)

	want := []entity.Criterion{
		{Domain: "Sommeil", Text: "Qualité du sommeil", Provenance: entity.Provenance{"Montre connectée", "Questionnaire"}},
		{Domain: "Sommeil", Text: "Durée du sommeil"},
		{Domain: "Travail", Text: "Charge de travail"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCriteria_Invalid(t *testing.T) {
	_, err := parseCriteria([]byte("domains: [unterminated"))
	assert.Error(t, err)
}

func TestNewStores_DriverSelection(t *testing.T) {
	log := logrus.New()

	stores, err := NewStores(&config.Config{Store: config.StoreConfig{Driver: "NocoDB"}}, log)
	require.NoError(t, err)
	assert.NotNil(t, stores.Ratings)
	assert.Nil(t, stores.DB)

	_, err = NewStores(&config.Config{Store: config.StoreConfig{Driver: "sqlite"}}, log)
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "llm-ping", "criteria"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	imp, _, err := root.Find([]string{"criteria", "import"})
	require.NoError(t, err)
	assert.Equal(t, "import", imp.Name())
}
