package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"tajwid-pintar-be/internal/config"
	"tajwid-pintar-be/internal/dto"
	"tajwid-pintar-be/internal/pkg/logger"
	"tajwid-pintar-be/internal/pkg/serverutils"
	"tajwid-pintar-be/internal/repository/unitofwork"
	"tajwid-pintar-be/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedFile string

type seedRecord struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Content  string   `yaml:"content"`
	Tags     []string `yaml:"tags"`
	Source   string   `yaml:"source"`
}

type seedDocument struct {
	Records []seedRecord `yaml:"records"`
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert knowledge records from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		reqs, err := loadSeed(f)
		if err != nil {
			return err
		}

		cfg := config.Load()
		db, err := openDB(cfg)
		if err != nil {
			return err
		}

		svc := service.NewKnowledgeService(unitofwork.NewRepositoryFactory(db), nil, nil, logger.NewNopLogger(), service.KnowledgeServiceConfig{
			MaxAudioClipBytes: cfg.Knowledge.MaxAudioClipBytes,
		})
		return seedRecords(cmd.Context(), svc, reqs, cmd.OutOrStdout())
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file with a top-level records list")
	_ = seedCmd.MarkFlagRequired("file")
}

// loadSeed decodes and validates every record before anything is written.
func loadSeed(r io.Reader) ([]dto.CreateKnowledgeRequest, error) {
	var doc seedDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	reqs := make([]dto.CreateKnowledgeRequest, 0, len(doc.Records))
	for i, rec := range doc.Records {
		req := dto.CreateKnowledgeRequest{
			Title:    rec.Title,
			Category: rec.Category,
			Content:  rec.Content,
			Tags:     rec.Tags,
			Source:   rec.Source,
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i+1, rec.Title, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func seedRecords(ctx context.Context, svc service.IKnowledgeService, reqs []dto.CreateKnowledgeRequest, out io.Writer) error {
	for i := range reqs {
		res, err := svc.Create(ctx, &reqs[i])
		if err != nil {
			return fmt.Errorf("create %q: %w", reqs[i].Title, err)
		}
		fmt.Fprintf(out, "%s %s %s\n", color.GreenString("+"), res.Id, res.Title)
	}
	fmt.Fprintf(out, "seeded %d records\n", len(reqs))
	return nil
}
