package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jkowalczyk/retain/internal/sm2"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scheduling statistics per deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		today := env.clk.Today()
		infos, err := env.db.ListDecks(ctx, today)
		if err != nil {
			return err
		}

		fmt.Printf("Day %d\n\n", today)
		if len(infos) == 0 {
			fmt.Println("No decks.")
			return nil
		}

		for _, info := range infos {
			cards, err := env.db.Cards(ctx, info.Name)
			if err != nil {
				return err
			}

			var efSum float64
			maxInterval := 0
			for _, c := range cards {
				efSum += c.Review.Easiness
				if c.Review.IntervalDays > maxInterval {
					maxInterval = c.Review.IntervalDays
				}
			}
			avgEF := sm2.DefaultEasiness
			if len(cards) > 0 {
				avgEF = efSum / float64(len(cards))
			}

			fmt.Printf("%s\n", info.Name)
			fmt.Printf("  cards %d · due %d · never reviewed %d\n", info.Cards, info.Due, info.NewCards)
			fmt.Printf("  avg easiness %.2f · longest interval %dd\n\n", avgEF, maxInterval)
		}
		return nil
	},
}
