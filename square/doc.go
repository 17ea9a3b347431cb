// Package square is a thin client for the Square Connect v1 and v2 REST APIs.
//
// Every operation builds a RequestSpec (version, endpoint, verb, location
// scoping and an optional JSON body, query or multipart payload) and hands it
// to Client.Do, which resolves the path, attaches the bearer token of the
// matching API version and returns the raw JSON body:
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	client, err := square.New(cfg.Square)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.ListLocations(ctx)
//
// A non-200 answer is returned together with an *errors.Error whose code is
// the HTTP status and whose metadata carries the first Square error entry.
package square
