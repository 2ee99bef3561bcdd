package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the parameters of the loaded model artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.loadModels()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			hw, err := models.SeasonalSmoothing.Model()
			if err != nil {
				return err
			}
			if err := hw.TablePrint(out, "", "  "); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}

			ar, err := models.AutoRegressive.Model()
			if err != nil {
				return err
			}
			return ar.TablePrint(out, "", "  ")
		},
	}
}
