// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command mdindex-cli is a small demo/introspection server for the index
// containers in this module: it builds a populated R-tree and flat
// segment tree and serves HTTP endpoints to query and export them,
// following the teacher's cmd/cc-backend/main.go shape (flag parsing,
// optional gops agent, .env + JSON config loading, gorilla/mux routing,
// graceful shutdown on SIGINT/SIGTERM).
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ClusterCockpit/cc-mdindex/internal/config"
	"github.com/ClusterCockpit/cc-mdindex/pkg/log"
)

func main() {
	var flagGops bool
	var flagConfigFile, flagEnvFile, flagSeed string
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Overwrite the default demo parameters by those specified in `config.json`")
	flag.StringVar(&flagEnvFile, "env", "./.env", "Load environment variable overrides from `.env`")
	flag.StringVar(&flagSeed, "seed", "demo", "Seed string for the demo data generator")
	flag.Parse()

	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Fatalf("gops/agent.Listen failed: %s", err.Error())
		}
	}

	if err := config.Init(flagEnvFile, flagConfigFile); err != nil {
		log.Fatal(err)
	}

	registry := prometheus.NewRegistry()
	demo := buildDemo(config.Keys, flagSeed, registry)

	r := mux.NewRouter()
	registerRoutes(r, demo)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := http.Server{
		Addr:         config.Keys.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", config.Keys.Addr)
	if err != nil {
		log.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("HTTP introspection server listening at %s", config.Keys.Addr)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(ctx)
	wg.Wait()
	log.Info("graceful shutdown completed")
}
