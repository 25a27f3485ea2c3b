package densebench

import (
	"fmt"
	"strings"

	"github.com/mwiater/densebench/internal/catalog"
	"github.com/spf13/cobra"
)

// showCatalogCmd prints the dataset categories and methods in effect.
var showCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show dataset categories and methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, sectionStyle.Render("Methods"))
		t := newTable("Key", "Display", "Color")
		for _, m := range cat.Methods() {
			t.Row(m.Key, m.Display, m.Color)
		}
		fmt.Fprintln(out, t.String())

		fmt.Fprintln(out, sectionStyle.Render("Categories"))
		for _, c := range catalog.NamedCategories {
			fmt.Fprintf(out, "  %-8s %s\n", c, strings.Join(cat.Datasets(c), ", "))
		}
		for _, group := range cat.CaseCollisions() {
			fmt.Fprintf(out, "%s datasets differ only by case: %s\n", warnText("warning"), strings.Join(group, ", "))
		}
		return nil
	},
}

func init() {
	showCmd.AddCommand(showCatalogCmd)
}
