// Package mcp provides a Model Context Protocol interface for the sliding puzzle game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for puzzle operations
//   - Session-aware command execution over the REST API
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current board with step count and distance-to-goal
//   - move: Slide one tile in a direction
//   - move_tile: Slide a tile by its number
//   - bulk_move: Execute multiple slides in sequence
//   - shuffle: Scramble the board with random moves
//   - solve: Compute an optimal solution with A* search
//   - hint: Get the next move of an optimal solution
//   - reset_game: Return to the starting arrangement
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available puzzle configurations
//   - game_instructions: Get comprehensive rules and strategy notes
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into an HTTP
// request against the REST API, and the JSON response is rendered into
// readable text for the agent. No game state lives in this package.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Solve puzzles autonomously
//   - Verify plans against the optimal solver
//   - Manage multiple game sessions
//   - Learn from move history
package mcp
