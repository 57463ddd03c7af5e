package main

import (
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the next-month budget forecast and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, auth, err := newSession()
		if err != nil {
			return err
		}

		msg := session.HandleInput(cmd.Context(), "forecast", auth)
		printMessage(msg)
		return nil
	},
}
