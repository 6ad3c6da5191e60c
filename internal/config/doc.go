// Package config provides configuration parsing for sprig projects.
//
// The configuration is stored in sprig.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "demo",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000,
//	    "static": "public"
//	  },
//	  "render": {
//	    "pretty": false
//	  },
//	  "page": {
//	    "lang": "en",
//	    "styles": ["body{font-family:sans-serif}"]
//	  },
//	  "export": {
//	    "output": "dist",
//	    "paths": ["/", "/about"],
//	    "notFound": "404.html"
//	  },
//	  "publish": {
//	    "target": "s3",
//	    "bucket": "my-site",
//	    "region": "eu-west-1"
//	  }
//	}
//
// SPRIG_HOST and SPRIG_PORT override the server address.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.Address())
package config
