package cmd

import (
	"bytes"
	"fmt"

	"github.com/controlkit/pidloop/cmd/global"
	"github.com/controlkit/pidloop/internal/control"
	"github.com/controlkit/pidloop/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var (
	ultimateGain      float64
	oscillationPeriod float64
)

var tuneCmd = &cobra.Command{
	Use:   "tune [scheme]",
	Short: "Print Ziegler-Nichols gain recommendations",
	Long: `Computes PID gain recommendations from the ultimate gain (ku) and
oscillation period (tu) measured in a sustained-oscillation tuning
experiment. Supported schemes: p | pi | pd | pid | pir |
some-overshoot | no-overshoot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupUi()

		gains, err := control.Tune(args[0], ultimateGain, oscillationPeriod)
		if err != nil {
			return err
		}

		formatGain := func(value *float64) string {
			if value == nil {
				return "-"
			}
			return fmt.Sprintf("%g", *value)
		}

		tab := table.Table{
			Headers: []string{"gain", "value"},
			Rows: [][]string{
				{"kp", formatGain(gains.Kp)},
				{"ti", formatGain(gains.Ti)},
				{"td", formatGain(gains.Td)},
				{"ki", formatGain(gains.Ki)},
				{"kd", formatGain(gains.Kd)},
			},
		}

		var buf bytes.Buffer
		tableErr := tab.WriteTable(&buf, &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		})
		if tableErr != nil {
			return tableErr
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	tuneCmd.Flags().Float64Var(&ultimateGain, "ku", 0, "Ultimate gain at sustained oscillation")
	tuneCmd.Flags().Float64Var(&oscillationPeriod, "tu", 0, "Oscillation period")
	_ = tuneCmd.MarkFlagRequired("ku")
	_ = tuneCmd.MarkFlagRequired("tu")

	rootCmd.AddCommand(tuneCmd)
}
