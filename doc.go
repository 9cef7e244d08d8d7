// Package goboost provides gradient-boosted model handles for Go, with
// explicit attribute metadata, binary persistence, and model dumps.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/goml-dev/goboost/booster"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    ds, err := booster.NewDataset(X, []float64{2, 4, 6, 8})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    b, err := booster.Train(booster.ParseParams("max_depth=3"), ds, 10)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    preds, err := b.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", preds)
//	}
//
// # Packages
//
//   - booster: model handles, training, attributes, persistence, dumps
//   - pkg/errors: error types and the warning system
//   - pkg/log: structured logging helpers
package goboost
