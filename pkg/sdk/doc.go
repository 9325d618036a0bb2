// Package sdk is the Go client for the askroute HTTP API.
//
// Basic usage:
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	answer, err := client.Ask(ctx, "What is FastAPI?")
//	if err != nil {
//	    var apiErr *sdk.APIError
//	    if errors.As(err, &apiErr) {
//	        log.Printf("API error %d: %s", apiErr.StatusCode, apiErr.Message)
//	    }
//	    return err
//	}
//	fmt.Println(answer.Decision, answer.Result)
package sdk
