package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

func resetBuildFlags() {
	buildSchema = ""
	buildVocab = ""
	buildVersion = ""
	buildOutput = ""
}

func resetDiffFlags() {
	diffOutput = ""
	diffNoSummary = true
}

const testSchema = `-- #beta
CREATE TABLE vitals (
    recorded_dttm DATETIME COMMENT 'Recording time',
    vital_category VARCHAR(50) COMMENT 'Vital sign category'
);
`

func writeTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "schema.sql"), []byte(testSchema), 0644); err != nil {
		t.Fatal(err)
	}
	vocabDir := filepath.Join(dir, "mcide", "vitals")
	if err := os.MkdirAll(vocabDir, 0755); err != nil {
		t.Fatal(err)
	}
	csv := "vital_category,description,example_1\ntemp_c,Body temperature,Temp\n"
	if err := os.WriteFile(filepath.Join(vocabDir, "vital_category.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestBuildCmd_ArgsValidation_TooMany(t *testing.T) {
	err := buildCmd.Args(buildCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
}

func TestBuildCmd_MissingSchema(t *testing.T) {
	resetBuildFlags()
	buildVersion = "2.1"

	err := runBuild(buildCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for missing schema path")
	}
	if code := clifdict.ExitCodeForError(err); code != clifdict.ExitConfigError {
		t.Errorf("Expected exit code %d (config), got %d for: %v", clifdict.ExitConfigError, code, err)
	}
}

func TestBuildCmd_NonexistentSchemaPath(t *testing.T) {
	resetBuildFlags()
	buildSchema = "/nonexistent/path/schema.sql"
	buildVersion = "2.1"

	err := runBuild(buildCmd, []string{t.TempDir()})
	if err == nil {
		t.Fatal("Expected error for nonexistent schema")
	}
	if code := clifdict.ExitCodeForError(err); code != clifdict.ExitInputError {
		t.Errorf("Expected exit code %d (input), got %d for: %v", clifdict.ExitInputError, code, err)
	}
}

func TestBuildCmd_WritesDictionary(t *testing.T) {
	dir := writeTestProject(t)
	resetBuildFlags()
	buildSchema = filepath.Join(dir, "schema.sql")
	buildVocab = filepath.Join(dir, "mcide")
	buildVersion = "2.1"
	buildOutput = filepath.Join(dir, "dict.yaml")

	if err := runBuild(buildCmd, nil); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}

	data, err := os.ReadFile(buildOutput)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	d, err := clifdict.DecodeDictionary(data)
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	if len(d.Tables) != 1 || d.Tables[0].Name != "vitals" {
		t.Errorf("unexpected tables: %v", d.TableNames())
	}
	if d.Tables[0].Status != clifdict.StatusBeta {
		t.Errorf("expected beta status, got %s", d.Tables[0].Status)
	}
	v, ok := d.Tables[0].Variable("vital_category")
	if !ok || len(v.Values) != 1 || v.Values[0] != "temp_c" {
		t.Errorf("vocabulary not merged: %+v", v)
	}
}

func TestBuildCmd_StdoutAndConfigDefaults(t *testing.T) {
	dir := writeTestProject(t)
	cfg := "version: \"2.1\"\nschema: schema.sql\nvocabulary: mcide\n"
	if err := os.WriteFile(filepath.Join(dir, clifdict.DictionaryConfigFile), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	resetBuildFlags()

	var out bytes.Buffer
	buildCmd.SetOut(&out)
	defer buildCmd.SetOut(nil)

	if err := runBuild(buildCmd, []string{dir}); err != nil {
		t.Fatalf("runBuild failed: %v", err)
	}
	if !strings.Contains(out.String(), "vitals:") {
		t.Errorf("dictionary not written to stdout:\n%s", out.String())
	}
}

func TestDiffCmd_ArgsValidation(t *testing.T) {
	err := diffCmd.Args(diffCmd, []string{"only_one.yaml"})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	if code := clifdict.ExitCodeForError(err); code != clifdict.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", clifdict.ExitUsageError, code, err)
	}
}

func writeDictFile(t *testing.T, path string, d *clifdict.Dictionary) {
	t.Helper()
	data, err := clifdict.EncodeDictionary(d)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiffCmd_WritesChangelog(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.yaml")
	newPath := filepath.Join(dir, "new.yaml")
	writeDictFile(t, oldPath, &clifdict.Dictionary{Version: "2.0", Tables: []clifdict.Table{
		{Name: "ecmo_mcs", Status: clifdict.StatusConcept},
	}})
	writeDictFile(t, newPath, &clifdict.Dictionary{Version: "2.1", Tables: []clifdict.Table{
		{Name: "ecmo_mcs", Status: clifdict.StatusBeta},
	}})

	resetDiffFlags()
	diffOutput = filepath.Join(dir, "changelog.yaml")

	if err := runDiff(diffCmd, []string{oldPath, newPath}); err != nil {
		t.Fatalf("runDiff failed: %v", err)
	}

	data, err := os.ReadFile(diffOutput)
	if err != nil {
		t.Fatalf("changelog not written: %v", err)
	}
	c, err := clifdict.DecodeChangelog(data)
	if err != nil {
		t.Fatalf("changelog does not decode: %v", err)
	}
	if c.Summary.TotalChanges != 1 {
		t.Errorf("expected 1 changed table, got %d", c.Summary.TotalChanges)
	}
	if _, ok := c.Summary.StatusChanges["concept_to_beta"]; !ok {
		t.Error("missing concept_to_beta transition bucket")
	}
}

func TestDiffCmd_InvalidDictionaryFailsFast(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.yaml")
	newPath := filepath.Join(dir, "new.yaml")
	writeDictFile(t, oldPath, &clifdict.Dictionary{Version: "2.0"})
	// Duplicate variable names violate the dictionary invariants.
	bad := "version: \"2.1\"\ntables:\n  meds:\n    status: concept\n    variables:\n" +
		"      - name: med_category\n        type: categorical\n        description: a\n" +
		"      - name: med_category\n        type: string\n        description: b\n"
	if err := os.WriteFile(newPath, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	resetDiffFlags()
	diffOutput = filepath.Join(dir, "changelog.yaml")

	err := runDiff(diffCmd, []string{oldPath, newPath})
	if err == nil {
		t.Fatal("Expected precondition violation")
	}
	if code := clifdict.ExitCodeForError(err); code != clifdict.ExitConfigError {
		t.Errorf("Expected exit code %d (config), got %d for: %v", clifdict.ExitConfigError, code, err)
	}
	if _, statErr := os.Stat(diffOutput); statErr == nil {
		t.Error("changelog must not be written on precondition violation")
	}
}

func TestDiffCmd_NonexistentInput(t *testing.T) {
	resetDiffFlags()
	err := runDiff(diffCmd, []string{"/nonexistent/old.yaml", "/nonexistent/new.yaml"})
	if err == nil {
		t.Fatal("Expected error for nonexistent input")
	}
	if code := clifdict.ExitCodeForError(err); code != clifdict.ExitInputError {
		t.Errorf("Expected exit code %d (input), got %d for: %v", clifdict.ExitInputError, code, err)
	}
}
