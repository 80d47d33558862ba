package e2e

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/mrsinham/dicomexport/internal/dicom/fixture"
)

// binaryPath holds the path to the compiled binary (set once in TestMain)
var binaryPath string

// testContext holds state for a single scenario
type testContext struct {
	tmpDir   string
	exitCode int
	output   string
}

// buildBinary compiles the dicomexport binary once
func buildBinary() (string, error) {
	tmpFile, err := os.CreateTemp("", "dicomexport-test-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpFile.Close()

	// Get the directory of this test file to find the project root
	_, thisFile, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")

	cmd := exec.Command("go", "build", "-o", tmpFile.Name(), "./cmd/dicomexport")
	cmd.Dir = projectRoot
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("build failed: %w\n%s", err, stderr.String())
	}

	return tmpFile.Name(), nil
}

// TestMain compiles the binary once before running all tests
func TestMain(m *testing.M) {
	var err error
	binaryPath, err = buildBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build binary: %v\n", err)
		os.Exit(1)
	}
	defer os.Remove(binaryPath)

	code := m.Run()
	os.Exit(code)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	tc := &testContext{}

	// Setup: create temp directory before each scenario
	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tmpDir, err := os.MkdirTemp("", "dicomexport-e2e-*")
		if err != nil {
			return ctx, err
		}
		tc.tmpDir = tmpDir
		return ctx, nil
	})

	// Teardown: cleanup temp directory after each scenario
	sc.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.tmpDir != "" {
			os.RemoveAll(tc.tmpDir)
		}
		return ctx, nil
	})

	// Step definitions
	sc.Step(`^dicomexport is built$`, tc.dicomexportIsBuilt)
	sc.Step(`^a DICOM file "([^"]*)" for patient "([^"]*)"$`, tc.aDICOMFileForPatient)
	sc.Step(`^a DICOM file "([^"]*)" described as "([^"]*)"$`, tc.aDICOMFileDescribedAs)
	sc.Step(`^a text file "([^"]*)"$`, tc.aTextFile)
	sc.Step(`^I run dicomexport with "([^"]*)"$`, tc.iRunDicomexportWith)
	sc.Step(`^the exit code should be (\d+)$`, tc.theExitCodeShouldBe)
	sc.Step(`^the output should contain "([^"]*)"$`, tc.theOutputShouldContain)
	sc.Step(`^"([^"]*)" should exist$`, tc.shouldExist)
	sc.Step(`^"([^"]*)" should not exist$`, tc.shouldNotExist)
	sc.Step(`^"([^"]*)" should be a grayscale PNG$`, tc.shouldBeGrayscalePNG)
	sc.Step(`^"([^"]*)" should contain (\d+) PNG files$`, tc.shouldContainPNGFiles)
	sc.Step(`^"([^"]*)" should be a CSV with (\d+) data rows$`, tc.shouldBeCSVWithRows)
	sc.Step(`^"([^"]*)" should have a row with laterality "([^"]*)" and view "([^"]*)"$`, tc.shouldHaveCSVRow)
}

func (tc *testContext) dicomexportIsBuilt() error {
	if binaryPath == "" {
		return fmt.Errorf("binary not built")
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		return fmt.Errorf("binary does not exist at %s", binaryPath)
	}
	return nil
}

func (tc *testContext) aDICOMFileForPatient(path, patientID string) error {
	path = tc.expand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f := fixture.File{
		PatientName: "E2E^Patient",
		PatientID:   patientID,
	}
	return f.Write(path)
}

func (tc *testContext) aDICOMFileDescribedAs(path, description string) error {
	path = tc.expand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f := fixture.File{
		PatientID:              "E2E001",
		AcquisitionDescription: description,
	}
	return f.Write(path)
}

func (tc *testContext) aTextFile(path string) error {
	path = tc.expand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("not a dicom file\n"), 0644)
}

func (tc *testContext) iRunDicomexportWith(args string) error {
	args = strings.ReplaceAll(args, "{tmpdir}", tc.tmpDir)

	// Split args respecting quotes
	argList := splitArgs(args)

	cmd := exec.Command(binaryPath, argList...)
	cmd.Dir = tc.tmpDir // relative output paths land in the scenario dir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	tc.output = output.String()

	if exitErr, ok := err.(*exec.ExitError); ok {
		tc.exitCode = exitErr.ExitCode()
	} else if err != nil {
		return fmt.Errorf("failed to run command: %w", err)
	} else {
		tc.exitCode = 0
	}

	return nil
}

func (tc *testContext) theExitCodeShouldBe(expected int) error {
	if tc.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d\nOutput:\n%s", expected, tc.exitCode, tc.output)
	}
	return nil
}

func (tc *testContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(tc.output, expected) {
		return fmt.Errorf("output does not contain %q\nOutput:\n%s", expected, tc.output)
	}
	return nil
}

func (tc *testContext) shouldExist(path string) error {
	path = tc.expand(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	return nil
}

func (tc *testContext) shouldNotExist(path string) error {
	path = tc.expand(path)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("path should not exist: %s", path)
	}
	return nil
}

func (tc *testContext) shouldBeGrayscalePNG(path string) error {
	path = tc.expand(path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening PNG: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding PNG %s: %w", path, err)
	}

	if _, _, _, a := img.At(0, 0).RGBA(); a == 0 {
		return fmt.Errorf("unexpected transparent pixel in %s", path)
	}
	return nil
}

func (tc *testContext) shouldContainPNGFiles(path string, count int) error {
	path = tc.expand(path)

	matches, err := filepath.Glob(filepath.Join(path, "*.png"))
	if err != nil {
		return err
	}
	if len(matches) != count {
		return fmt.Errorf("expected %d PNG files in %s, found %d", count, path, len(matches))
	}
	return nil
}

func (tc *testContext) shouldBeCSVWithRows(path string, rows int) error {
	records, err := tc.readCSV(path)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("CSV %s is empty", path)
	}
	if got := strings.Join(records[0], ","); got != "patient_id,exam_id,laterality,view,file_path" {
		return fmt.Errorf("unexpected CSV header: %s", got)
	}
	if len(records)-1 != rows {
		return fmt.Errorf("expected %d data rows, got %d", rows, len(records)-1)
	}
	return nil
}

func (tc *testContext) shouldHaveCSVRow(path, laterality, view string) error {
	records, err := tc.readCSV(path)
	if err != nil {
		return err
	}

	for _, rec := range records[1:] {
		if len(rec) >= 4 && rec[2] == laterality && rec[3] == view {
			return nil
		}
	}
	return fmt.Errorf("no row with laterality %q and view %q in %s", laterality, view, path)
}

func (tc *testContext) readCSV(path string) ([][]string, error) {
	path = tc.expand(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV %s: %w", path, err)
	}
	return records, nil
}

// expand replaces the {tmpdir} placeholder with the scenario directory
func (tc *testContext) expand(path string) string {
	return strings.ReplaceAll(path, "{tmpdir}", tc.tmpDir)
}

// splitArgs splits a command line string into arguments
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
