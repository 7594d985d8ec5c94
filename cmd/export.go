package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jkowalczyk/retain/internal/deck"
)

var exportCmd = &cobra.Command{
	Use:   "export <deck> <file>",
	Short: "Export a deck with its scheduling state to a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := env.db.LoadDeck(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := deck.ExportFile(args[1], d); err != nil {
			return err
		}
		env.log.Info("deck exported", zap.String("deck", d.Name), zap.String("file", args[1]))
		fmt.Printf("Exported %q (%d cards) to %s.\n", d.Name, len(d.Cards), args[1])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck from a JSON file",
	Long: "Import a deck from a JSON export. Scheduling state in the file is\n" +
		"restored exactly; cards without scheduling state become due today.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		d, err := deck.ImportFile(args[0], env.clk.Today())
		if err != nil {
			return err
		}
		if err := env.db.ImportDeck(cmd.Context(), d); err != nil {
			return err
		}
		env.log.Info("deck imported", zap.String("deck", d.Name), zap.Int("cards", len(d.Cards)))
		fmt.Printf("Imported %q (%d cards).\n", d.Name, len(d.Cards))
		return nil
	},
}
