package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/SaschaSchweitzer/persons"
	"github.com/SaschaSchweitzer/persons/cmd/persons/internal"
	"github.com/SaschaSchweitzer/persons/nameutil"
	"github.com/SaschaSchweitzer/persons/tabular"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive [input file]",
	Short: "Interactive mode",
	Long:  "Identify persons once, then explore the clusters interactively.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInteractive,
}

// GetInteractiveCommand returns the interactive command.
func GetInteractiveCommand() *cobra.Command {
	return interactiveCmd
}

// InteractiveState holds the state for interactive mode.
type InteractiveState struct {
	result    *tabular.ResultTable
	bySurname map[string][]tabular.Row
	byPerson  map[string][]tabular.Row
}

var state *InteractiveState

func runInteractive(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	config, err := internal.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	internal.InitColor(config.Output.Color)

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		internal.PrintError("✗ File not found: %s\n", inputFile)
		return fmt.Errorf("file not found: %s", inputFile)
	}

	table, err := readInput(inputFile)
	if err != nil {
		internal.PrintError("✗ Failed to read input: %v\n", err)
		return err
	}

	internal.PrintInfo("ℹ Identifying persons in %s\n", inputFile)
	engine := persons.New(config.EngineOptions())
	result, err := engine.PersonsFromNames(cmd.Context(), table, nil)
	if err != nil {
		internal.PrintError("✗ Identification failed: %v\n", err)
		return err
	}

	state = newInteractiveState(result)
	internal.PrintSuccess("✓ %d records, %d persons\n", len(result.Rows), len(state.byPerson))
	internal.PrintInfo("  Type 'help' for available commands\n")
	internal.PrintInfo("  Type 'exit' or 'quit' to exit\n\n")

	startREPL()
	return nil
}

func newInteractiveState(result *tabular.ResultTable) *InteractiveState {
	s := &InteractiveState{
		result:    result,
		bySurname: make(map[string][]tabular.Row),
		byPerson:  make(map[string][]tabular.Row),
	}
	surnameColumn := surnameColumnOf(result)
	for _, row := range result.Rows {
		surname := nameutil.Normalize(row[surnameColumn])
		s.bySurname[surname] = append(s.bySurname[surname], row)
		s.byPerson[row[tabular.PersonIDColumn]] = append(s.byPerson[row[tabular.PersonIDColumn]], row)
	}
	return s
}

// surnameColumnOf finds the surname column of the result table: it is the
// fifth fixed column, but recognising it by position keeps this robust
// against optional columns.
func surnameColumnOf(result *tabular.ResultTable) string {
	if len(result.Columns) >= 5 {
		return result.Columns[4]
	}
	return ""
}

func startREPL() {
	// Try go-prompt; fall back to plain input when no TTY is available.
	defer func() {
		if r := recover(); r != nil {
			internal.PrintInfo("Note: Using simple input mode (no TTY detected)\n")
			startSimpleREPL()
		}
	}()

	fileInfo, err := os.Stdin.Stat()
	if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		startSimpleREPL()
		return
	}

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix("persons> "),
		prompt.OptionTitle("Persons Interactive Mode"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)
	p.Run()
}

func startSimpleREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("persons> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		executor(line)
	}
	if err := scanner.Err(); err != nil {
		internal.PrintError("Error reading input: %v\n", err)
	}
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		return
	}

	parts := strings.Fields(in)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "exit", "quit", "q":
		internal.PrintInfo("Goodbye!\n")
		os.Exit(0)

	case "help", "h":
		printHelp()

	case "stats":
		showStats()

	case "lookup", "l":
		if len(args) == 0 {
			internal.PrintError("Usage: lookup <surname>\n")
			return
		}
		lookupSurname(strings.Join(args, " "))

	case "person", "p":
		if len(args) == 0 {
			internal.PrintError("Usage: person <person id>\n")
			return
		}
		showPerson(args[0])

	default:
		internal.PrintError("Unknown command: %s (type 'help')\n", command)
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "lookup", Description: "List clusters for a surname"},
		{Text: "person", Description: "Show the records of one person"},
		{Text: "stats", Description: "Show summary statistics"},
		{Text: "help", Description: "Show available commands"},
		{Text: "exit", Description: "Exit interactive mode"},
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}

func printHelp() {
	internal.Printf("Available commands:\n")
	internal.Printf("  lookup <surname>   List the persons found for a surname\n")
	internal.Printf("  person <id>        Show all records of a person\n")
	internal.Printf("  stats              Summary statistics\n")
	internal.Printf("  exit               Leave interactive mode\n")
}

func showStats() {
	internal.Printf("Records:  %d\n", len(state.result.Rows))
	internal.Printf("Persons:  %d\n", len(state.byPerson))
	internal.Printf("Surnames: %d\n", len(state.bySurname))
}

func lookupSurname(surname string) {
	rows, ok := state.bySurname[nameutil.Normalize(surname)]
	if !ok {
		internal.PrintError("No records for surname %q\n", surname)
		return
	}

	byPerson := make(map[string][]tabular.Row)
	for _, row := range rows {
		id := row[tabular.PersonIDColumn]
		byPerson[id] = append(byPerson[id], row)
	}
	ids := make([]string, 0, len(byPerson))
	for id := range byPerson {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		internal.Printf("person %s:\n", id)
		for _, row := range byPerson[id] {
			internal.Printf("  %s (%s)\n", rowName(row), row[tabular.MatchingColumn])
		}
	}
}

func showPerson(id string) {
	rows, ok := state.byPerson[id]
	if !ok {
		internal.PrintError("No person with id %s\n", id)
		return
	}
	for _, row := range rows {
		internal.Printf("%s  source=%s  matching=%s\n",
			rowName(row), row[tabular.SourceColumn], row[tabular.MatchingColumn])
	}
}

func rowName(row tabular.Row) string {
	forename := ""
	surname := ""
	if len(state.result.Columns) >= 5 {
		forename = row[state.result.Columns[3]]
		surname = row[state.result.Columns[4]]
	}
	return strings.TrimSpace(forename + " " + surname)
}
