// Package sdk provides an embedded assetdex client for Go programs that
// want the index engine in-process instead of behind the HTTP API.
//
// The client wires the full engine stack (Redis-backed document store,
// text index, vector store) directly, so every operation is a function
// call with no network hop besides the database itself.
//
// Basic usage:
//
//	client, err := sdk.New(ctx,
//		sdk.WithRedis("localhost:6379"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.IndexAsset(ctx, &sdk.Asset{
//		ID:   uuid.New(),
//		Path: "/photos/vacation_photo.jpg",
//		Type: sdk.Image,
//		Tags: []string{"vacation", "beach"},
//	})
//
//	results, err := client.SearchText(ctx, "beach", 10)
//
// Observability is opt-in: pass WithLogger for structured operation logs
// and WithPrometheus to export per-operation counters and latencies.
package sdk
