// Package api provides HTTP REST API handlers for the sliding puzzle.
//
// The api package implements:
//   - RESTful endpoints for puzzle operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - Solver-backed solve and hint endpoints
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/unified - Multi-session aggregate view
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current puzzle state
//   - POST /api/sessions/{id}/move - Slide a tile by direction
//   - POST /api/sessions/{id}/move-tile - Slide a tile by number
//   - POST /api/sessions/{id}/bulk-move - Execute a move sequence
//   - POST /api/sessions/{id}/shuffle - Shuffle the board
//   - POST /api/sessions/{id}/reset - Reset to the starting layout
//   - GET /api/sessions/{id}/solve - Compute an optimal solution
//   - GET /api/sessions/{id}/hint - Suggest the next optimal move
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Moves are sent as POST with a JSON
// body:
//
//	{"direction": "up"}              // move
//	{"tile": 8}                      // move-tile
//	{"moves": ["up", "left"]}        // bulk-move
//	{"moves": 30}                    // shuffle depth
//
// WebSocket:
//
// GET /ws?session={id} upgrades to a WebSocket pushing state updates for the
// given session after every state change from any transport.
package api
