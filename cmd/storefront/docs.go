package main

// @title Storefront API
// @version 1.0
// @description Product catalog and order pipeline with full observability (logging, tracing, metrics)

// @host localhost:8080
// @BasePath /
