// Package integration contains the Integration bounded context.
// It describes how the service talks to external store platforms.
//
// Key concepts:
//   - PlatformClient: Port interface for fetching a platform's product list (Shopify, VTEX)
//   - Registry: explicit mapping from platform tag to client, built once at startup
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
