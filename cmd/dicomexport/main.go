package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/mrsinham/dicomexport/cmd/dicomexport/wizard"
	"github.com/mrsinham/dicomexport/internal/convert"
	internaldicom "github.com/mrsinham/dicomexport/internal/dicom"
	"github.com/mrsinham/dicomexport/internal/logging"
)

// version is set at build time via -ldflags
var version = "dev"

const logFile = "dicomexport.log"

func main() {
	// Check for wizard subcommand (before pflag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		if err := wizard.Run(fromConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	directory := pflag.StringP("directory", "d", "", "Convert every DICOM file in this directory")
	files := pflag.StringArrayP("file", "f", nil, "Convert a single DICOM file (repeatable)")
	output := pflag.StringP("output", "o", "", "Output directory (default: output/<input name>)")
	csvExport := pflag.Bool("csv", false, "Write a CSV index of the converted files")
	addMetadata := pflag.Bool("add-metadata", false, "Rewrite laterality/description headers via dcmodify")
	deleteBackup := pflag.Bool("delete-backup", false, "Delete the .bak files dcmodify leaves behind")
	jsonDump := pflag.Bool("json", false, "Dump full metadata of each file as JSON")
	windowCenter := pflag.Int("window-center", 0, "Window center for intensity clipping")
	windowWidth := pflag.Int("window-width", 0, "Window width for intensity clipping")
	interactive := pflag.BoolP("interactive", "i", false, "Launch interactive wizard")
	configFile := pflag.String("config", "", "Load configuration from YAML file")
	saveConfig := pflag.String("save-config", "", "Save configuration to YAML file (after conversion)")
	help := pflag.Bool("help", false, "Show help message")
	showVersion := pflag.Bool("version", false, "Show version")

	pflag.Parse()

	// Handle interactive mode
	if *interactive {
		if err := wizard.Run(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Show version
	if *showVersion {
		fmt.Printf("dicomexport %s\n", version)
		os.Exit(0)
	}

	// Show help
	if *help {
		printHelp()
		os.Exit(0)
	}

	log := logging.New(logFile)

	// Handle config file loading
	if *configFile != "" {
		state, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		opts, err := wizard.ToRunOptions(state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("dicomexport")
		fmt.Println("===========")
		fmt.Printf("Loading config from %s\n\n", *configFile)

		res, err := convert.Run(log, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printResult(res)
		os.Exit(0)
	}

	// Validate source selection: exactly one of --directory and --file
	if (*directory == "") == (len(*files) == 0) {
		fmt.Fprintln(os.Stderr, "Error: exactly one of --directory or --file is required")
		printUsage()
		os.Exit(1)
	}

	// Presence, not value, decides whether windowing was requested: a
	// center or width of 0 is valid.
	centerSet := pflag.CommandLine.Changed("window-center")
	widthSet := pflag.CommandLine.Changed("window-width")
	if centerSet != widthSet {
		fmt.Fprintln(os.Stderr, "Error: --window-center and --window-width must be given together")
		os.Exit(1)
	}

	var window *internaldicom.Window
	if centerSet {
		window = &internaldicom.Window{Center: *windowCenter, Width: *windowWidth}
	}

	opts := convert.RunOptions{
		Directory:    *directory,
		Files:        *files,
		OutputDir:    *output,
		Window:       window,
		CSV:          *csvExport,
		AddMetadata:  *addMetadata,
		DeleteBackup: *deleteBackup,
		JSONDump:     *jsonDump,
	}

	fmt.Println("dicomexport")
	fmt.Println("===========")
	fmt.Println()

	res, err := convert.Run(log, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Save config if requested
	if *saveConfig != "" {
		state := wizard.FromRunOptions(opts)
		if err := wizard.SaveToYAML(state, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	printResult(res)
}

func printResult(res *convert.Result) {
	fmt.Println("\n✓ Conversion complete!")
	fmt.Printf("  Converted: %d file(s)\n", len(res.PNGFiles))
	if len(res.Invalid) > 0 {
		fmt.Printf("  Invalid inputs skipped: %d\n", len(res.Invalid))
		for _, p := range res.Invalid {
			fmt.Printf("    - %s\n", p)
		}
	}
	fmt.Printf("  Output directory: %s\n", res.OutputDir)
	if res.CSVPath != "" {
		fmt.Printf("  CSV index: %s\n", res.CSVPath)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  dicomexport --directory <DIR> [options]")
	fmt.Fprintln(os.Stderr, "  dicomexport --file <FILE> [--file <FILE> ...] [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	pflag.PrintDefaults()
}

func printHelp() {
	fmt.Println("dicomexport")
	fmt.Println("===========")
	fmt.Println()
	fmt.Println("Convert DICOM files to 8-bit grayscale PNG and export patient/study metadata.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dicomexport --directory <DIR> [options]")
	fmt.Println("  dicomexport --file <FILE> [--file <FILE> ...] [options]")
	fmt.Println("  dicomexport wizard [--from <config.yaml>]")
	fmt.Println()
	fmt.Println("Source selection (exactly one required):")
	fmt.Println("  -d, --directory <DIR>  Convert every .dcm/.dicom file in DIR")
	fmt.Println("  -f, --file <FILE>      Convert FILE (repeat for several files)")
	fmt.Println()
	fmt.Println("Conversion options:")
	fmt.Println("  -o, --output <DIR>     Output directory (default: output/<input name>)")
	fmt.Println("  --window-center <N>    Window center for intensity clipping")
	fmt.Println("  --window-width <N>     Window width (use together with --window-center)")
	fmt.Println()
	fmt.Println("Metadata options:")
	fmt.Println("  --csv                  Write a CSV index (patient_id, exam_id, laterality, view, path)")
	fmt.Println("  --json                 Dump full metadata of each file as <name>_metadata.json")
	fmt.Println("  --add-metadata         Rewrite laterality/description headers via dcmodify (requires dcmtk)")
	fmt.Println("  --delete-backup        Delete the .bak files dcmodify leaves behind")
	fmt.Println()
	fmt.Println("Wizard and config:")
	fmt.Println("  -i, --interactive      Launch the interactive wizard")
	fmt.Println("  --config <FILE>        Load a saved YAML configuration and run it")
	fmt.Println("  --save-config <FILE>   Save the current flags as YAML after conversion")
	fmt.Println()
	fmt.Println("  --version              Show version")
	fmt.Println("  --help                 Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # Convert a whole directory and write the CSV index")
	fmt.Println("  dicomexport --directory exams --csv")
	fmt.Println()
	fmt.Println("  # Convert two files with explicit windowing")
	fmt.Println("  dicomexport -f a.dcm -f b.dcm --window-center 2048 --window-width 1024")
	fmt.Println()
	fmt.Println("  # Rewrite headers and clean up dcmodify backups")
	fmt.Println("  dicomexport --directory exams --add-metadata --delete-backup")
	fmt.Println()
	fmt.Println("  # Dump every file's metadata as JSON")
	fmt.Println("  dicomexport --directory exams --json")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  PNG files land under <output>/png/. The CSV index is named after the")
	fmt.Println("  input directory (or patient_info.csv in file mode). Conversion failures")
	fmt.Println("  are logged to " + logFile + " and skipped; the batch always completes.")
}
