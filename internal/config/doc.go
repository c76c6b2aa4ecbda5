// Package config provides configuration parsing for vtree.
//
// The configuration is stored in vtree.json (or vtree.yaml) at the project
// root. This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "diff": {
//	    "maxRows": 2000
//	  },
//	  "recycle": {
//	    "poolSize": 64
//	  },
//	  "layout": {
//	    "width": 390,
//	    "height": 844
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "metrics": {
//	    "namespace": "vtree"
//	  },
//	  "inspector": {
//	    "addr": "localhost:7070",
//	    "history": 50,
//	    "interval": "1s"
//	  },
//	  "archive": {
//	    "bucket": "snapshots",
//	    "prefix": "dev/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// Keys left out of the file keep their defaults. Explicit zeros are kept,
// so "maxRows": 0 disables the reload fallback and "poolSize": 0 disables
// recycling.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logger := cfg.Logger(os.Stderr)
package config
