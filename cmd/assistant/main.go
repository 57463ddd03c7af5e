// Command assistant runs the MoneyMap assistant from the terminal: an
// interactive chat shell and a one-shot forecast.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
