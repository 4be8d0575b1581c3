// Package crax provides top-level metadata for the Crax webhook server API.
//
// @title Crax Webhook Server API
// @version 0.1.0
// @description Webhook-receiving backend of the Crax build-in-public feed: turns GitHub push events into posts and serves the feed read API.
// @BasePath /
// @securityDefinitions.apikey OperatorAuth
// @in header
// @name Authorization
// @description Provide the operator bearer token as `Bearer <token>`.
package crax
