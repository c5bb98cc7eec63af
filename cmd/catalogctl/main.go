// catalogctl is a CLI tool for exercising the catalog proxy.
// Each command performs a single operation, making it composable for scripts.
//
// Commands:
//
//	catalogctl product -proxy URL [-id ID | -slug SLUG | -sku SKU]
//	catalogctl search -proxy URL [-keyword WORD] [-filter EXPR] [-limit N] [-all]
//	catalogctl category -proxy URL -id ID [-full]
//	catalogctl categories -proxy URL
//	catalogctl import -proxy URL -file product.json
//
// Examples:
//
//	catalogctl product -proxy http://localhost:8080 -sku SKU-1 -language de
//	catalogctl search -proxy http://localhost:8080 -keyword shoes -limit 20
//	catalogctl search -proxy http://localhost:8080 -all -q
//	catalogctl category -proxy http://localhost:8080 -id c1 -full
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

var client = &http.Client{Timeout: 60 * time.Second}

// Global flags (apply to all commands)
var (
	proxyURL string
	quiet    bool
	noColor  bool
	verbose  bool

	// Locale flags, sent as the Commerce-Context header
	language string
	country  string
	currency string
	segment  string
)

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		disableColors()
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen = "", "", ""
	colorYellow, colorCyan, colorGray, colorBold = "", "", "", ""
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "product":
		runProduct(args)
	case "search":
		runSearch(args)
	case "category":
		runCategory(args)
	case "categories":
		runCategories(args)
	case "import":
		runImport(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `catalogctl - catalog proxy test tool

Usage:
  catalogctl <command> [options]

Commands:
  product     Get a single product by id, slug, or sku
  search      Search the product catalog
  category    Get a category subtree, optionally with products
  categories  Get the full category hierarchy
  import      Import a product from a JSON file

Examples:
  # Look up a product in German with B2B pricing
  catalogctl product -proxy http://localhost:8080 -sku SKU-1 -language de -segment b2b

  # Keyword search, first 20 hits
  catalogctl search -proxy http://localhost:8080 -keyword shoes -limit 20

  # Drain the whole catalog and count results
  catalogctl search -proxy http://localhost:8080 -all -q

  # Category subtree with its products
  catalogctl category -proxy http://localhost:8080 -id c1 -full

Run 'catalogctl <command> -h' for command-specific options.
`)
}

// addCommonFlags registers the flags shared by every command.
func addCommonFlags(fs *flag.FlagSet) {
	fs.StringVar(&proxyURL, "proxy", "http://localhost:8080", "Catalog proxy base URL")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - minimal output")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "v", false, "Verbose - show full request/response")
	fs.StringVar(&language, "language", "", "Content language (Commerce-Context)")
	fs.StringVar(&country, "country", "", "Price country (Commerce-Context)")
	fs.StringVar(&currency, "currency", "", "Price currency (Commerce-Context)")
	fs.StringVar(&segment, "segment", "", "Customer segment for discount pricing")
}

// =============================================================================
// PRODUCT COMMAND
// =============================================================================

func runProduct(args []string) {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	addCommonFlags(fs)
	var id, slug, sku string
	fs.StringVar(&id, "id", "", "Product id")
	fs.StringVar(&slug, "slug", "", "Product slug")
	fs.StringVar(&sku, "sku", "", "Variant sku")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: catalogctl product [-id ID | -slug SLUG | -sku SKU] [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	if id == "" && slug == "" && sku == "" {
		fs.Usage()
		os.Exit(1)
	}

	params := url.Values{}
	path := "/products"
	switch {
	case id != "":
		path += "/" + url.PathEscape(id)
	case slug != "":
		params.Set("slug", slug)
	case sku != "":
		params.Set("sku", sku)
	}

	resp, err := doRequest("GET", withQuery(path, params), nil)
	if err != nil {
		fatal("Failed to get product: %v", err)
	}

	results := extractResults(resp)
	if len(results) == 0 {
		fatal("No product in response")
	}
	product := results[0]

	if quiet {
		fmt.Println(stringField(product, "id"))
		return
	}
	printSuccess("Product retrieved")
	fmt.Printf("  ID:   %s%s%s\n", colorCyan, stringField(product, "id"), colorReset)
	fmt.Printf("  Name: %s\n", stringField(product, "name"))
	fmt.Printf("  Slug: %s\n", stringField(product, "slug"))
	printVariants(product)
}

// =============================================================================
// SEARCH COMMAND
// =============================================================================

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	addCommonFlags(fs)
	var keyword, filter, productIDs string
	var limit, offset int
	var all bool
	fs.StringVar(&keyword, "keyword", "", "Full text search keyword")
	fs.StringVar(&filter, "filter", "", "Vendor facet filter expression")
	fs.StringVar(&productIDs, "ids", "", "Comma separated product ids")
	fs.IntVar(&limit, "limit", 0, "Page size")
	fs.IntVar(&offset, "offset", 0, "Page offset")
	fs.BoolVar(&all, "all", false, "Drain the entire catalog")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: catalogctl search [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}

	params := url.Values{}
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	if filter != "" {
		params.Set("filter", filter)
	}
	if productIDs != "" {
		params.Set("productIds", productIDs)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	if all {
		params.Set("all", "true")
	}

	resp, err := doRequest("GET", withQuery("/products", params), nil)
	if err != nil {
		fatal("Search failed: %v", err)
	}

	results := extractResults(resp)
	if quiet {
		fmt.Println(len(results))
		return
	}

	printSuccess("Found %d products", len(results))
	if meta, ok := resp["meta"].(map[string]interface{}); ok {
		if total, ok := meta["total"].(float64); ok {
			fmt.Printf("  Total: %s%d%s\n", colorCyan, int(total), colorReset)
		}
	}
	for _, p := range results {
		fmt.Printf("  - %s%s%s %s\n", colorCyan, stringField(p, "id"), colorReset, stringField(p, "name"))
	}
}

// =============================================================================
// CATEGORY COMMANDS
// =============================================================================

func runCategory(args []string) {
	fs := flag.NewFlagSet("category", flag.ExitOnError)
	addCommonFlags(fs)
	var id, slug string
	var full bool
	fs.StringVar(&id, "id", "", "Category id")
	fs.StringVar(&slug, "slug", "", "Category slug")
	fs.BoolVar(&full, "full", false, "Include the category's products")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: catalogctl category -id ID [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	if id == "" && slug == "" {
		fs.Usage()
		os.Exit(1)
	}

	params := url.Values{}
	path := "/categories"
	if id != "" {
		path += "/" + url.PathEscape(id)
	} else {
		params.Set("slug", slug)
	}
	if full {
		params.Set("full", "true")
	}

	resp, err := doRequest("GET", withQuery(path, params), nil)
	if err != nil {
		fatal("Failed to get category: %v", err)
	}

	results := extractResults(resp)
	if len(results) == 0 {
		fatal("No category in response")
	}

	if quiet {
		fmt.Println(stringField(results[0], "id"))
		return
	}
	printSuccess("Category retrieved")
	printCategoryTree(results[0], "  ")
}

func runCategories(args []string) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	addCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: catalogctl categories [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}

	resp, err := doRequest("GET", "/categories", nil)
	if err != nil {
		fatal("Failed to get categories: %v", err)
	}

	results := extractResults(resp)
	if quiet {
		fmt.Println(len(results))
		return
	}

	printSuccess("Found %d root categories", len(results))
	for _, cat := range results {
		printCategoryTree(cat, "  ")
	}
}

// printCategoryTree renders a category and its children with indentation.
func printCategoryTree(cat map[string]interface{}, indent string) {
	fmt.Printf("%s%s%s%s %s\n", indent, colorCyan, stringField(cat, "id"), colorReset, stringField(cat, "name"))
	if products, ok := cat["products"].([]interface{}); ok && len(products) > 0 {
		fmt.Printf("%s  %s(%d products)%s\n", indent, colorGray, len(products), colorReset)
	}
	children, ok := cat["children"].([]interface{})
	if !ok {
		return
	}
	for _, child := range children {
		if childMap, ok := child.(map[string]interface{}); ok {
			printCategoryTree(childMap, indent+"  ")
		}
	}
}

// =============================================================================
// IMPORT COMMAND
// =============================================================================

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	addCommonFlags(fs)
	var file string
	fs.StringVar(&file, "file", "", "Product import JSON file (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: catalogctl import -file product.json [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	if file == "" {
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fatal("Reading import file: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		fatal("Invalid import JSON: %v", err)
	}

	resp, err := doRequest("POST", "/products", body)
	if err != nil {
		fatal("Import failed: %v", err)
	}

	results := extractResults(resp)
	if len(results) == 0 {
		fatal("No product in response")
	}

	if quiet {
		fmt.Println(stringField(results[0], "id"))
		return
	}
	printSuccess("Product imported")
	fmt.Printf("  ID: %s%s%s\n", colorCyan, stringField(results[0], "id"), colorReset)
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// commerceContext builds the Commerce-Context header value from the locale
// flags. Empty when no flag is set.
func commerceContext() string {
	var parts []string
	for _, kv := range [][2]string{
		{"language", language},
		{"country", country},
		{"currency", currency},
		{"segment", segment},
	} {
		if kv[1] != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", kv[0], kv[1]))
		}
	}
	return strings.Join(parts, ", ")
}

func doRequest(method, path string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	var reqJSON []byte

	if body != nil {
		var err error
		reqJSON, err = json.MarshalIndent(body, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(reqJSON)
	}

	reqURL := proxyURL + path
	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if ctx := commerceContext(); ctx != "" {
		req.Header.Set("Commerce-Context", ctx)
	}

	if !quiet {
		printRequest(method, path, reqJSON)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !quiet {
		printResponse(resp.StatusCode, respBody, duration)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return result, nil
}

// extractResults reads the results array of a page envelope.
func extractResults(resp map[string]interface{}) []map[string]interface{} {
	raw, ok := resp["results"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// printVariants renders a product's variants with their prices.
func printVariants(product map[string]interface{}) {
	variants, ok := product["variants"].([]interface{})
	if !ok || len(variants) == 0 {
		return
	}
	fmt.Printf("  %sVariants:%s\n", colorYellow, colorReset)
	for _, v := range variants {
		vm, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		list, sale := "", ""
		if prices, ok := vm["prices"].(map[string]interface{}); ok {
			list, _ = prices["list"].(string)
			sale, _ = prices["sale"].(string)
		}
		line := fmt.Sprintf("    - %s  %s", stringField(vm, "sku"), list)
		if sale != "" && sale != list {
			line += fmt.Sprintf(" %s(sale %s)%s", colorGreen, sale, colorReset)
		}
		fmt.Println(line)
	}
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printRequest(method, path string, body []byte) {
	fmt.Printf("\n%s▶ REQUEST%s %s%s %s%s\n", colorYellow, colorReset, colorBold, method, path, colorReset)
	if body != nil {
		printJSON(body, "  ")
	}
}

func printResponse(status int, body []byte, duration time.Duration) {
	statusColor := colorGreen
	if status >= 400 {
		statusColor = colorRed
	}
	fmt.Printf("\n%s◀ RESPONSE%s %s%d%s (%v)\n", colorCyan, colorReset, statusColor, status, colorReset, duration)
	printJSON(body, "  ")
}

func printJSON(data []byte, prefix string) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, prefix, "  "); err != nil {
		fmt.Printf("%s%s\n", prefix, string(data))
		return
	}

	output := pretty.String()
	if !verbose {
		lines := strings.Split(output, "\n")
		if len(lines) > 30 {
			lines = append(lines[:25], fmt.Sprintf("%s  %s(%d more lines, use -v for full output)%s", prefix, colorGray, len(lines)-25, colorReset))
			output = strings.Join(lines, "\n")
		}
	}
	fmt.Println(output)
}

func printSuccess(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}
