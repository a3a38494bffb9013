package api

// API Client-
//
// Files:
//   config.go     - BlockchainConfig and the default network values
//   endpoints.go  - closed endpoint catalog and URL path resolution
//   value.go      - tagged JSON value used for params and response bodies
//   result.go     - Result type carrying either a value or an *Error
//   errors.go     - error taxonomy (invalid url, encode, transport, no data, decode)
//   types.go      - Request, Params and Response
//   base.go       - Client struct, options, Send and SendAsync
//   queries.go    - one helper per endpoint
//
// Usage:
//   client := api.NewClient(api.DefaultConfig())
//   resp := client.Balance(ctx, "0xabc...")
//   if err := resp.Err(); err != nil { ... }
//   balance := resp.Value().Get("balance")
