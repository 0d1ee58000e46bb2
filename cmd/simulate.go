package cmd

import (
	"bytes"
	"fmt"

	"github.com/controlkit/pidloop/cmd/global"
	"github.com/controlkit/pidloop/internal/configuration"
	"github.com/controlkit/pidloop/internal/loops"
	"github.com/controlkit/pidloop/internal/simulation"
	"github.com/controlkit/pidloop/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var simulateTicks int

var simulateCmd = &cobra.Command{
	Use:   "simulate [loop-id]",
	Short: "Run the configured loop(s) offline against a simulated plant",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()

		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			return err
		}

		config := configuration.CurrentConfig

		ticks := config.Simulation.Ticks
		if simulateTicks > 0 {
			ticks = simulateTicks
		}

		var loopConfigs []configuration.LoopConfig
		for _, loopConfig := range config.Loops {
			if len(args) > 0 && loopConfig.ID != args[0] {
				continue
			}
			loopConfigs = append(loopConfigs, loopConfig)
		}
		if len(loopConfigs) == 0 {
			return fmt.Errorf("no matching loop configuration found")
		}

		for idx, loopConfig := range loopConfigs {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			loop, err := loops.NewLoop(loopConfig, config.Filters, config.Simulation.HistoryWindowSize)
			if err != nil {
				return err
			}

			plant := simulation.NewFirstOrderPlant(config.Simulation.Plant)
			runner, err := simulation.NewRunner(loop, plant)
			if err != nil {
				return err
			}

			result := runner.Run(ticks)

			ui.Printfln(loop.GetId())
			if err := printLoopSummary(loop, result); err != nil {
				return err
			}

			caption := fmt.Sprintf("measurement over %d ticks (setpoint: %g)", ticks, loopConfig.Setpoint)
			graph := asciigraph.Plot(result.Measurements, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln(graph)
		}
		return nil
	},
}

func printLoopSummary(loop *loops.Loop, result simulation.Result) error {
	tab := table.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Final measure", fmt.Sprintf("%g", result.Final.Measure)},
			{"Final error", fmt.Sprintf("%g", result.Final.Error)},
			{"Final output", fmt.Sprintf("%g", result.Final.Output)},
			{"Output avg", fmt.Sprintf("%g", loop.OutputAvg())},
			{"Output min", fmt.Sprintf("%g", loop.OutputMin())},
			{"Output max", fmt.Sprintf("%g", loop.OutputMax())},
		},
	}

	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return err
	}
	ui.Printfln(buf.String())
	return nil
}

func init() {
	simulateCmd.Flags().IntVarP(&simulateTicks, "ticks", "t", 0, "Number of ticks to simulate (overrides config)")

	rootCmd.AddCommand(simulateCmd)
}
