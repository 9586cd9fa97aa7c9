package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

var keywordsJSON bool

var keywordsCmd = &cobra.Command{
	Use:     "keywords",
	Aliases: []string{"kw"},
	Short:   "Manage the keyword taxonomy",
	Long: `View and edit the keyword categories used to build search queries and
filter results. Every keyword from every category is added to the query.`,
	RunE: runKeywordsList,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and keywords",
	RunE:  runKeywordsList,
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add [category-id] [keyword]",
	Short: "Add a keyword to a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeywordsAdd,
}

var keywordsRemoveCmd = &cobra.Command{
	Use:     "remove [category-id] [keyword]",
	Aliases: []string{"rm"},
	Short:   "Remove a keyword from a category",
	Args:    cobra.ExactArgs(2),
	RunE:    runKeywordsRemove,
}

var keywordsAddCategoryCmd = &cobra.Command{
	Use:   "add-category [name]",
	Short: "Create an empty category",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKeywordsAddCategory,
}

var keywordsRemoveCategoryCmd = &cobra.Command{
	Use:   "remove-category [category-id]",
	Short: "Delete a category and its keywords",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsRemoveCategory,
}

var keywordsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default categories",
	RunE:  runKeywordsReset,
}

func init() {
	keywordsCmd.PersistentFlags().BoolVar(&keywordsJSON, "json", false, "output categories as JSON")
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsRemoveCmd)
	keywordsCmd.AddCommand(keywordsAddCategoryCmd)
	keywordsCmd.AddCommand(keywordsRemoveCategoryCmd)
	keywordsCmd.AddCommand(keywordsResetCmd)
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywordsList(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}
	return outputCategories(cmd, keywordService.List())
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}
	categoryID, keyword := args[0], strings.TrimSpace(args[1])
	if err := requireCategory(categoryID); err != nil {
		return err
	}

	before := keywordService.List()
	after, err := keywordService.AddKeyword(cmd.Context(), categoryID, keyword)
	if err != nil {
		return fmt.Errorf("failed to add keyword: %w", err)
	}
	return reportChange(cmd, before, after, fmt.Sprintf("Added %q to %s.", keyword, categoryID))
}

func runKeywordsRemove(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}
	categoryID, keyword := args[0], args[1]
	if err := requireCategory(categoryID); err != nil {
		return err
	}

	before := keywordService.List()
	after, err := keywordService.RemoveKeyword(cmd.Context(), categoryID, keyword)
	if err != nil {
		return fmt.Errorf("failed to remove keyword: %w", err)
	}
	return reportChange(cmd, before, after, fmt.Sprintf("Removed %q from %s.", keyword, categoryID))
}

func runKeywordsAddCategory(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}
	name := strings.TrimSpace(strings.Join(args, " "))

	before := keywordService.List()
	after, err := keywordService.AddCategory(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}
	if len(after) > len(before) {
		created := after[len(after)-1]
		return reportChange(cmd, before, after, fmt.Sprintf("Created category %s (%s).", created.Name, created.ID))
	}
	return reportChange(cmd, before, after, "")
}

func runKeywordsRemoveCategory(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}
	categoryID := args[0]
	if err := requireCategory(categoryID); err != nil {
		return err
	}

	before := keywordService.List()
	after, err := keywordService.RemoveCategory(cmd.Context(), categoryID)
	if err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return reportChange(cmd, before, after, fmt.Sprintf("Removed category %s.", categoryID))
}

func runKeywordsReset(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errKeywordsUnavailable
	}

	before := keywordService.List()
	after, err := keywordService.Reset(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to reset keywords: %w", err)
	}
	return reportChange(cmd, before, after, "Restored the default categories.")
}

func requireCategory(categoryID string) error {
	if _, ok := domain.FindCategory(keywordService.List(), categoryID); !ok {
		return fmt.Errorf("%w: category %q (run 'dealwatch keywords' to list ids)", domain.ErrNotFound, categoryID)
	}
	return nil
}

func reportChange(cmd *cobra.Command, before, after []domain.KeywordCategory, msg string) error {
	if keywordsJSON {
		return outputCategories(cmd, after)
	}
	if domain.CategoriesEqual(before, after) || msg == "" {
		cmd.Println("No change.")
		return nil
	}
	cmd.Println(msg)
	return nil
}

func outputCategories(cmd *cobra.Command, cats []domain.KeywordCategory) error {
	if keywordsJSON {
		if cats == nil {
			cats = []domain.KeywordCategory{}
		}
		data, err := json.MarshalIndent(cats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(cats) == 0 {
		cmd.Println("No categories. The default keywords are still used.")
		return nil
	}

	for _, c := range cats {
		cmd.Printf("%s (%s)\n", c.Name, c.ID)
		if len(c.Keywords) == 0 {
			cmd.Println("  (no keywords)")
		} else {
			cmd.Printf("  %s\n", strings.Join(c.Keywords, ", "))
		}
		cmd.Println()
	}
	return nil
}
