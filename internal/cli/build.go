package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/clif-consortium/clifdict/internal/config"
	"github.com/clif-consortium/clifdict/internal/ddl"
	"github.com/clif-consortium/clifdict/internal/dict"
	"github.com/clif-consortium/clifdict/internal/vocab"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

var buildCmd = &cobra.Command{
	Use:   "build [project_path]",
	Short: "Build a data dictionary from DDL and vocabulary sources",
	Long: `Build a versioned data dictionary document.

This command:
1. Parses the DDL file into tables and columns
2. Extracts per-table maturity status markers (#concept / #beta)
3. Loads the mCIDE vocabulary CSV tree
4. Merges everything into one dictionary document and writes it as YAML

Paths default to the clifdict.yaml project configuration; flags override it.
Anomalies in the sources (skipped statements, orphaned vocabularies, empty
categorical columns) are reported as warnings and never fail the build.

Examples:
  # Build using clifdict.yaml in the current directory
  clifdict build

  # Build with explicit paths
  clifdict build --schema schema/clif.sql --vocab mCIDE --dict-version 2.1 --output clif_2_1_data_dict.yaml

  # Write the dictionary to stdout
  clifdict build --schema schema/clif.sql --vocab mCIDE --dict-version 2.1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

var (
	buildSchema  string
	buildVocab   string
	buildVersion string
	buildOutput  string
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildSchema, "schema", "", "DDL file path")
	buildCmd.Flags().StringVar(&buildVocab, "vocab", "", "Vocabulary directory root")
	buildCmd.Flags().StringVar(&buildVersion, "dict-version", "", "Version tag for the dictionary")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Output file path (default: stdout)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	projectPath := "."
	if len(args) == 1 {
		projectPath = args[0]
	}
	_ = godotenv.Load()

	cfg, err := loadProjectConfig(projectPath)
	if err != nil {
		return err
	}

	schemaPath := firstNonEmpty(buildSchema, joinProject(projectPath, cfg.Schema))
	vocabPath := firstNonEmpty(buildVocab, joinProject(projectPath, cfg.Vocabulary))
	version := firstNonEmpty(buildVersion, cfg.Version)
	outputPath := firstNonEmpty(buildOutput, joinProject(projectPath, cfg.Output))

	if schemaPath == "" {
		return fmt.Errorf("%w: no schema path (set schema: in %s or pass --schema)",
			clifdict.ErrInvalidConfig, clifdict.DictionaryConfigFile)
	}
	if version == "" {
		return fmt.Errorf("%w: no dictionary version (set version: in %s or pass --dict-version)",
			clifdict.ErrInvalidConfig, clifdict.DictionaryConfigFile)
	}

	logger.Verbose("Reading schema from %s", schemaPath)
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("%w: schema %s: %v", clifdict.ErrInputNotFound, schemaPath, err)
	}

	parse := ddl.Parse(string(schema))
	statuses, statusWarnings := ddl.ExtractStatuses(string(schema))
	logger.Verbose("Parsed %d tables", len(parse.Tables))

	index := vocab.NewIndex()
	var vocabWarnings []clifdict.Warning
	if vocabPath != "" {
		index, vocabWarnings, err = vocab.NewLoader().LoadDirectory(vocabPath)
		if err != nil {
			return err
		}
		logger.Verbose("Loaded %d vocabularies from %s", len(index.Keys()), vocabPath)
	}

	d, buildWarnings := dict.Build(parse, statuses, index, version)

	var warnings []clifdict.Warning
	warnings = append(warnings, statusWarnings...)
	warnings = append(warnings, vocabWarnings...)
	warnings = append(warnings, buildWarnings...)
	reportWarnings(logger, warnings)

	data, err := clifdict.EncodeDictionary(d)
	if err != nil {
		return fmt.Errorf("encode dictionary: %w", err)
	}

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write dictionary: %w", err)
	}

	logger.Info("Dictionary %s written to %s (%d tables, %d warnings)",
		version, outputPath, len(d.Tables), len(warnings))
	return nil
}

// loadProjectConfig reads clifdict.yaml if present. A missing file is fine:
// everything can come from flags.
func loadProjectConfig(projectPath string) (*config.ProjectConfig, error) {
	cfg, err := config.Load(projectPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// joinProject resolves a config-relative path against the project root.
func joinProject(projectPath, rel string) string {
	if rel == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(projectPath, rel)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
