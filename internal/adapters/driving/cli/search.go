package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kbbot/internal/core/domain"
)

var (
	askHTML    bool
	searchJSON bool
	titlesJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question with links to matching documents",
	Long: `Looks the question up in the title index and prints each matching
document's name, link and snippet. Common phrasings such as "reset my
password" are expanded to the canonical titles they refer to.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed document titles",
	Long: `Matches the query against the title index: exact title first, then
titles containing the query or contained in it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "List every indexed document title",
	Args:  cobra.NoArgs,
	RunE:  runTitles,
}

func init() {
	askCmd.Flags().BoolVar(&askHTML, "html", false, "render the answer as HTML")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	titlesCmd.Flags().BoolVar(&titlesJSON, "json", false, "output titles as JSON")
	rootCmd.AddCommand(askCmd, searchCmd, titlesCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := searchService()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	if !askHTML && isTerminal(cmd) {
		results, err := svc.Search(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		cmd.Println(styledAnswer(results))
		return nil
	}

	format := domain.AnswerText
	if askHTML {
		format = domain.AnswerHTML
	}
	answer, err := svc.Ask(cmd.Context(), query, format)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	cmd.Println(answer)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := searchService()
	if err != nil {
		return err
	}

	results, err := svc.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println(domain.NoResultsMessage)
		return nil
	}
	for i, r := range results {
		cmd.Printf("  [%d] %s\n", i+1, r.Name)
		cmd.Printf("      %s\n", r.URL)
		if r.LastUpdated != nil {
			cmd.Printf("      updated %s\n", r.LastUpdated.Format("2006-01-02"))
		}
	}
	return nil
}

func runTitles(cmd *cobra.Command, _ []string) error {
	svc, err := searchService()
	if err != nil {
		return err
	}

	titles, err := svc.Titles(cmd.Context())
	if err != nil {
		return fmt.Errorf("list titles: %w", err)
	}

	if titlesJSON {
		return printJSON(cmd, titles)
	}
	for _, t := range titles {
		cmd.Println(t)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// isTerminal reports whether the command writes straight to a terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd fits in int
}

var (
	answerName    = lipgloss.NewStyle().Bold(true)
	answerLink    = lipgloss.NewStyle().Foreground(lipgloss.Color("#0EA5E9")).Underline(true)
	answerSnippet = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	answerRule    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))
)

// styledAnswer renders results like the plain text answer, with colour.
func styledAnswer(results []domain.DocumentEntry) string {
	if len(results) == 0 {
		return domain.NoResultsMessage
	}

	blocks := make([]string, len(results))
	for i, r := range results {
		lines := []string{answerName.Render(r.Name), answerLink.Render(r.URL)}
		if r.Snippet != "" {
			lines = append(lines, answerSnippet.Render(r.Snippet))
		}
		blocks[i] = strings.Join(lines, "\n")
	}
	return strings.Join(blocks, "\n"+answerRule.Render("──────────")+"\n")
}
