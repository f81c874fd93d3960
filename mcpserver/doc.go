// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mcpserver exposes published leagues as Model Context Protocol tools.

# Tools

  - league_standings {slug}: ranked standings
  - league_fixtures {slug, matchday?}: fixtures grouped by matchday

Both tools only see leagues that have a share slug, the same set anonymous
viewers can read over HTTP. Failures are reported as tool errors
(IsError) rather than protocol errors so clients can show them.

# Transport

The router mounts NewHandler at /mcp using the streamable HTTP transport
with plain JSON responses:

	server := mcpserver.NewServer(shared, version)
	r.Handle("/mcp", mcpserver.NewHandler(server))
*/
package mcpserver
