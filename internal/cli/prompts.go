package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/whiskerlabs/catstonks/config"
	"github.com/whiskerlabs/catstonks/pkg/dataflows"
)

// PromptForSymbol prompts the user to enter a ticker symbol
func PromptForSymbol(defaultSymbol string) (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Enter the ticker symbol to correlate against:",
		Help:    "E.g. ^GSPC for the S&P 500, or AAPL, TSLA, ...",
		Default: defaultSymbol,
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		return dataflows.ValidateSymbol(val.(string))
	}))

	if err != nil {
		return "", err
	}

	return dataflows.NormalizeSymbol(symbol), nil
}

// PromptForDaysBack prompts the user for the price history window
func PromptForDaysBack(defaultDays int) (int, error) {
	var daysStr string
	prompt := &survey.Input{
		Message: "How many days of price history?",
		Help:    "At least 2 days are needed for a correlation.",
		Default: strconv.Itoa(defaultDays),
	}

	err := survey.AskOne(prompt, &daysStr, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		days, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("enter a whole number of days")
		}
		if days < 2 {
			return fmt.Errorf("need at least 2 days for a correlation")
		}
		if days > 365 {
			return fmt.Errorf("window too large (max 365 days)")
		}
		return nil
	}))

	if err != nil {
		return 0, err
	}

	return strconv.Atoi(strings.TrimSpace(daysStr))
}

// PromptForConfirmation prompts the user to confirm the run
func PromptForConfirmation(cfg *config.Config) (bool, error) {
	fmt.Printf(`
Analysis Configuration:
  📊 Symbol:        %s
  📅 Days Back:     %d
  🐱 Cat Names:     %d

`, cfg.Symbol, cfg.DaysBack, cfg.NameSampleSize)

	var confirmed bool
	prompt := &survey.Confirm{
		Message: "Proceed with this analysis?",
		Default: true,
	}

	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// PromptForRestartOrExit prompts the user when an analysis completes
func PromptForRestartOrExit() (bool, error) {
	var choice string
	prompt := &survey.Select{
		Message: "What would you like to do next?",
		Options: []string{
			"Start a new analysis",
			"Exit catstonks",
		},
		Default: "Exit catstonks",
	}

	err := survey.AskOne(prompt, &choice)
	if err != nil {
		return false, err
	}

	return choice == "Start a new analysis", nil
}
