// Package stranalyzer provides an in-process Go client for the string
// analyzer: the same analysis, storage and query engine the HTTP server
// uses, without the network hop.
//
// # Analyze and look up
//
//	client, _ := stranalyzer.New(stranalyzer.WithLogger(slog.Default()))
//	a, _ := client.Analyze(ctx, "Was it a car or a cat I saw")
//	fmt.Println(a.IsPalindrome, a.WordCount)
//
// # Filter
//
//	long, _ := client.List(ctx, stranalyzer.Filter{MinLength: stranalyzer.Int(10)})
//
// # Natural language queries
//
//	res, err := client.Query(ctx, "single word palindromic strings")
//	if errors.Is(err, stranalyzer.ErrNoMatch) {
//	    // nothing stored matches the interpreted filter
//	}
package stranalyzer
