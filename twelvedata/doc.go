// Package twelvedata provides a typed client for the Twelve Data market-data API.
//
// Every endpoint is served by one generic Request type configured by a
// Resource descriptor. A request snapshots the client's default parameters
// when it is created, accumulates parameters through chained setters and
// ends with one of the terminal calls.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := twelvedata.NewClient(
//		"your-api-key",
//		logger,
//		twelvedata.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	series, err := client.TimeSeries("AAPL", "1day").OutputSize(5).Do(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Parameters
//
// Parameters come from three layers, later layers winning: the library
// defaults (outputsize=30, timezone=Exchange, order=desc, prepost=false,
// dp=5), the caller defaults set with Client.UpdateDefaults, and the setters
// of a single request. The API key is always added. Absent values never
// remove a parameter.
//
// # Errors
//
// API failures are returned as *APIError and match one of the kind sentinels:
//
//	var apiErr *twelvedata.APIError
//	if errors.As(err, &apiErr) && errors.Is(err, twelvedata.ErrRateLimit) {
//		// back off
//	}
//
// Network failures are returned as *TransportError. Nothing is retried.
package twelvedata
