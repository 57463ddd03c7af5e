package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with the assistant",
	Long: `Starts an interactive chat session. Try:
  menu                      list features
  spent 45 on food today    capture a transaction from free text
  add transaction           start the guided wizard
  forecast                  predict next month's budget
Type 'exit' to leave. The conversation is persisted between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, auth, err := newSession()
		if err != nil {
			return err
		}

		// Show where the conversation left off.
		if history := session.Messages(); len(history) > 0 {
			last := history[len(history)-1]
			printMessage(&last)
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := scanner.Text()
			if line == "exit" || line == "quit" {
				break
			}

			msg := session.HandleInput(cmd.Context(), line, auth)
			printMessage(msg)
		}
		return scanner.Err()
	},
}
