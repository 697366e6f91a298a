// Package config loads the demo configuration.
//
// Values come from struct tag defaults, an optional .env file and
// environment variables prefixed with PROPERLIST_ (for example
// PROPERLIST_LOG_LEVEL or PROPERLIST_DEMO_ITEM_COUNT).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Demo.ItemCount)
package config
