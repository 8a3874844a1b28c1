package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "posledger-cli",
		Short: "POS ledger CLI tool",
		Long:  `A command line interface for interacting with the POS ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the POS ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Currency commands
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Currency operations",
	}

	convertCmd := &cobra.Command{
		Use:   "convert [amount] [from] [to]",
		Short: "Convert an amount between USD and KHR",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			convert(args[0], args[1], args[2])
		},
	}

	detectCmd := &cobra.Command{
		Use:   "detect [amount]",
		Short: "Guess the currency of an untagged amount",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			detect(args[0])
		},
	}

	currencyCmd.AddCommand(convertCmd)
	currencyCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(currencyCmd)

	// Journal commands
	journalCmd := &cobra.Command{
		Use:   "journal [account] [type] [debit] [credit] [description] [user]",
		Short: "Post a manual general journal entry",
		Args:  cobra.ExactArgs(6),
		Run: func(cmd *cobra.Command, args []string) {
			postJournal(args[0], args[1], args[2], args[3], args[4], args[5])
		},
	}
	rootCmd.AddCommand(journalCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConsistency() {
	result := getJSON("/api/v1/ledger/consistency")

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Println("Consistency check PASSED")
		return
	}
	fmt.Println("Consistency check FAILED: debits do not equal credits")
	os.Exit(1)
}

func convert(amount, from, to string) {
	result := postJSON("/api/v1/currency/convert", map[string]string{
		"amount": amount,
		"from":   from,
		"to":     to,
	})

	fmt.Printf("%v\n", result["display"])
}

func detect(amount string) {
	result := getJSON("/api/v1/currency/detect?amount=" + amount)
	fmt.Printf("%v\n", result["currency"])
}

func postJournal(account, accountType, debit, credit, description, user string) {
	result := postJSON("/api/v1/postings/journal", map[string]string{
		"account_name": account,
		"account_type": accountType,
		"debit":        debit,
		"credit":       credit,
		"description":  description,
		"user_id":      user,
	})

	fmt.Printf("Journal entry %v\n", result["status"])
}

func getJSON(path string) map[string]any {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func postJSON(path string, payload any) map[string]any {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	return decodeResponse(resp)
}

func decodeResponse(resp *http.Response) map[string]any {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}
