package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Trading Desk API
// @version         0.1.0
// @description     Portfolio buckets, operations, rotations, and drawdown protection.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
