package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the current simulated day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		fmt.Printf("Day %d\n", env.clk.Today())
		return nil
	},
}

var dayAdvanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Advance the simulated clock by one day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		day, err := env.clk.Advance(cmd.Context())
		if err != nil {
			return err
		}
		env.log.Info("day advanced", zap.Int("day", day))
		fmt.Printf("It is now day %d.\n", day)
		return nil
	},
}

func init() {
	dayCmd.AddCommand(dayAdvanceCmd)
}
