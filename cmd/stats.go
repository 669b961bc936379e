package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gramseva/census-atlas/internal/engine"
	"github.com/gramseva/census-atlas/internal/model"
)

var (
	statsMetric   string
	statsGender   string
	statsAge      string
	statsCategory string
	statsClass    string
	statsTop      int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print KPIs, bracket distribution, and ranking for a selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		metric, err := model.ParseMetric(statsMetric)
		if err != nil {
			return err
		}
		sel, err := parseSelection(statsGender, statsAge, statsCategory, statsClass)
		if err != nil {
			return err
		}

		snap, _, err := buildSnapshot(cfg)
		if err != nil {
			return err
		}
		eng := engine.New()
		eng.SetSnapshot(snap)

		view, err := eng.View(metric, sel)
		if err != nil {
			return err
		}

		fmt.Printf("%s @ %s\n", metric, view.Key)
		fmt.Printf("  average: %s   min: %s   max: %s\n",
			view.KPIDisplay.Average, view.KPIDisplay.Min, view.KPIDisplay.Max)

		fmt.Println("  distribution:")
		for _, c := range view.Brackets {
			fmt.Printf("    %-10s %d\n", c.Label, c.Count)
		}

		fmt.Println("  top areas:")
		top := statsTop
		if top > len(view.Ranking) {
			top = len(view.Ranking)
		}
		for i := 0; i < top; i++ {
			e := view.Ranking[i]
			fmt.Printf("    %2d. %-24s %s\n", i+1, e.DisplayName, engine.FormatValue(metric, e.Value))
		}

		if missing := eng.Missing(); len(missing) > 0 {
			fmt.Printf("  missing vectors: %d (see log)\n", len(missing))
		}
		return nil
	},
}

// parseSelection validates the four dimension flags into a Selection.
func parseSelection(gender, age, category, class string) (model.Selection, error) {
	var sel model.Selection
	var err error
	if sel.Gender, err = model.ParseGender(gender); err != nil {
		return model.Selection{}, err
	}
	if sel.AgeBand, err = model.ParseAgeBand(age); err != nil {
		return model.Selection{}, err
	}
	if sel.SocialCategory, err = model.ParseSocialCategory(category); err != nil {
		return model.Selection{}, err
	}
	if sel.EconomicClass, err = model.ParseEconomicClass(class); err != nil {
		return model.Selection{}, err
	}
	return sel, nil
}

func init() {
	statsCmd.Flags().StringVar(&statsMetric, "metric", "literacy", "metric: literacy, income, population")
	statsCmd.Flags().StringVar(&statsGender, "gender", "all", "gender segment")
	statsCmd.Flags().StringVar(&statsAge, "age", "all", "age band segment")
	statsCmd.Flags().StringVar(&statsCategory, "category", "all", "social category segment")
	statsCmd.Flags().StringVar(&statsClass, "class", "all", "economic class segment")
	statsCmd.Flags().IntVar(&statsTop, "top", 10, "ranking rows to print")
	rootCmd.AddCommand(statsCmd)
}
