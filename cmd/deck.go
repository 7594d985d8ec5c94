package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks",
}

var deckCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.db.CreateDeck(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deck %q created.\n", args[0])
		return nil
	},
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List decks with card and due counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		infos, err := env.db.ListDecks(cmd.Context(), env.clk.Today())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No decks. Create one with: retain deck create <name>")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-24s %4d cards  %4d due  %4d new\n", info.Name, info.Cards, info.Due, info.NewCards)
		}
		return nil
	},
}

var deckDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a deck and all its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.db.DeleteDeck(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deck %q deleted.\n", args[0])
		return nil
	},
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <deck> <term> <definition>",
	Short: "Add a card to a deck (due immediately)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		id, err := env.db.AddCard(cmd.Context(), args[0], args[1], args[2], env.clk.Today())
		if err != nil {
			return err
		}
		fmt.Printf("Card %d added to %q.\n", id, args[0])
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list <deck>",
	Short: "List a deck's cards with their scheduling state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		cards, err := env.db.Cards(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		today := env.clk.Today()
		for _, c := range cards {
			due := " "
			if c.Review.IsDue(today) {
				due = "*"
			}
			fmt.Printf("%s %5d  %-20s %-24s ef=%.2f ivl=%dd reps=%d due=day %d\n",
				due, c.ID, c.Term, c.Definition,
				c.Review.Easiness, c.Review.IntervalDays, c.Review.Repetitions, c.Review.NextReviewDay)
		}
		return nil
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid card id %q", args[0])
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.db.DeleteCard(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Card %d deleted.\n", id)
		return nil
	},
}

func init() {
	deckCmd.AddCommand(deckCreateCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckDeleteCmd)

	cardCmd.AddCommand(cardAddCmd)
	cardCmd.AddCommand(cardListCmd)
	cardCmd.AddCommand(cardDeleteCmd)
}
