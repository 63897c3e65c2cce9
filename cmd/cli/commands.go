package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(coachesCmd)
	rootCmd.AddCommand(groundsCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(metricsCmd)

	seedCmd.Flags().String("key", "", "Seed only this collection key")
	clearCmd.Flags().String("key", "", "Clear only this collection key")
	coachesCmd.Flags().String("sport", "", "Filter coaches by sport")
	groundsCmd.Flags().String("sport", "", "Filter grounds by sport")
	productsCmd.Flags().String("category", "", "Filter products by category")
	productsCmd.Flags().String("q", "", "Search products by name or brand")
	newsCmd.Flags().Bool("published", false, "Only published articles")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed unseeded collections from their fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		endpoint := "/seed"
		if key != "" {
			endpoint += "?key=" + url.QueryEscape(key)
		}
		return performPostRequest(endpoint)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the store, or one key with --key",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		endpoint := "/clear"
		if key != "" {
			endpoint += "?key=" + url.QueryEscape(key)
		}
		return performPostRequest(endpoint)
	},
}

var coachesCmd = &cobra.Command{
	Use:   "coaches",
	Short: "List the coaches",
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, _ := cmd.Flags().GetString("sport")
		endpoint := "/coaches"
		if sport != "" {
			endpoint += "?sport=" + url.QueryEscape(sport)
		}
		return performGetRequest(endpoint)
	},
}

var groundsCmd = &cobra.Command{
	Use:   "grounds",
	Short: "List the grounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		sport, _ := cmd.Flags().GetString("sport")
		endpoint := "/grounds"
		if sport != "" {
			endpoint += "?sport=" + url.QueryEscape(sport)
		}
		return performGetRequest(endpoint)
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List or search the products",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("q")
		params := url.Values{}
		if category != "" {
			params.Set("category", category)
		}
		if query != "" {
			params.Set("q", query)
		}
		endpoint := "/products"
		if encoded := params.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
		return performGetRequest(endpoint)
	},
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "List the news articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		published, _ := cmd.Flags().GetBool("published")
		endpoint := "/news"
		if published {
			endpoint += "?published=true"
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader(""))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
