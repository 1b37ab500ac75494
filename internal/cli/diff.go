package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clif-consortium/clifdict/internal/changelog"
	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old_dictionary> <new_dictionary>",
	Short: "Compute the changelog between two dictionary versions",
	Long: `Compare two dictionary documents and produce a changelog.

Tables are classified as added, removed, modified or status-changed;
modified tables carry a field-level variable diff. Both inputs must be
well-formed dictionaries: a document violating the dictionary invariants
(duplicate table or variable names) aborts with exit code 10 and no output.

Examples:
  # Write the changelog YAML to stdout
  clifdict diff clif_2_0_data_dict.yaml clif_2_1_data_dict.yaml

  # Write to a file and print a human summary
  clifdict diff clif_2_0_data_dict.yaml clif_2_1_data_dict.yaml --output changelog_2_0_to_2_1.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

var (
	diffOutput    string
	diffNoSummary bool
)

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVar(&diffOutput, "output", "", "Output file path (default: stdout)")
	diffCmd.Flags().BoolVar(&diffNoSummary, "no-summary", false, "Suppress the console summary")
}

func runDiff(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	oldDict, err := readDictionary(args[0])
	if err != nil {
		return err
	}
	newDict, err := readDictionary(args[1])
	if err != nil {
		return err
	}
	logger.Verbose("Comparing %s (%d tables) against %s (%d tables)",
		oldDict.Version, len(oldDict.Tables), newDict.Version, len(newDict.Tables))

	c, err := changelog.NewDiffer().Diff(oldDict, newDict)
	if err != nil {
		return err
	}

	data, err := clifdict.EncodeChangelog(c)
	if err != nil {
		return fmt.Errorf("encode changelog: %w", err)
	}

	if diffOutput == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(diffOutput, data, 0644); err != nil {
			return fmt.Errorf("write changelog: %w", err)
		}
		logger.Info("Changelog written to %s", diffOutput)
	}

	if !diffNoSummary {
		// Summary goes to stderr so stdout stays machine-parseable.
		changelog.NewRenderer(os.Stderr).Render(c)
	}
	return nil
}

func readDictionary(path string) (*clifdict.Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: dictionary %s: %v", clifdict.ErrInputNotFound, path, err)
	}
	d, err := clifdict.DecodeDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return d, nil
}
