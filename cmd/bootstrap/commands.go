package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"health-wheel/internal/domain/entity"
	"health-wheel/internal/infrastructure/llm"
	"health-wheel/internal/service"
	"health-wheel/internal/usecase"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewRootCommand builds the health-wheel CLI. Without a subcommand it serves
// the HTTP API.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "health-wheel",
		Short:         "Health wheel survey backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	llmPingCmd := &cobra.Command{
		Use:   "llm-ping",
		Short: "Send a trivial prompt to the configured LLM",
		RunE:  runLLMPing,
	}
	llmPingCmd.Flags().Duration("timeout", 30*time.Second, "Request timeout")

	criteriaCmd := &cobra.Command{
		Use:   "criteria",
		Short: "Manage the criteria catalogue",
	}
	criteriaImportCmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import criteria from a YAML file, skipping existing ones",
		Long: `Import criteria grouped by domain:

  domains:
    - name: Sommeil
      criteria:
        - text: Qualité du sommeil
          provenance: [Montre connectée, Questionnaire]`,
		Args: cobra.ExactArgs(1),
		RunE: runCriteriaImport,
	}
	criteriaCmd.AddCommand(criteriaImportCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmPingCmd)
	rootCmd.AddCommand(criteriaCmd)
	return rootCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	app, err := New()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run()
}

func runLLMPing(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := llm.NewChatClient(cfg.LLM, nil, log)
	reply, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("llm ping failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "model %s answered: %s\n", client.Model(), reply)
	return nil
}

func runCriteriaImport(cmd *cobra.Command, args []string) error {
	criteria, err := loadCriteriaFile(args[0])
	if err != nil {
		return err
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	stores, err := NewStores(cfg, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	uc := usecase.NewCriterionUsecase(log, stores.Criteria, service.NewAuditService(log))
	result, err := uc.ImportCriteria(cmd.Context(), criteria)
	if result != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", result.Created, result.Skipped)
	}
	return err
}

type criteriaFile struct {
	Domains []struct {
		Name     string `yaml:"name"`
		Criteria []struct {
			Text       string   `yaml:"text"`
			Provenance []string `yaml:"provenance"`
		} `yaml:"criteria"`
	} `yaml:"domains"`
}

func loadCriteriaFile(path string) ([]entity.Criterion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseCriteria(data)
}

func parseCriteria(data []byte) ([]entity.Criterion, error) {
	var file criteriaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse criteria: %w", err)
	}

	var criteria []entity.Criterion
	for _, d := range file.Domains {
		for _, c := range d.Criteria {
			criteria = append(criteria, entity.Criterion{
				Domain:     d.Name,
				Text:       c.Text,
				Provenance: entity.Provenance(c.Provenance),
			})
		}
	}
	return criteria, nil
}
