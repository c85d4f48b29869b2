package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config, library path)
	ExitDataError   = 3 // Data error (unreadable input, no records, dangling edges)

	// Backend API exit codes
	ExitAPINotFound  = 1 // Resource not found on the backend
	ExitAPIAuthError = 2 // Missing or invalid PV_API_TOKEN
	ExitAPIError     = 3 // API error (rate limit, network, bad response)

	// Neo4j exit code
	ExitGraphDBError = 4 // Neo4j unreachable or write failed
)
