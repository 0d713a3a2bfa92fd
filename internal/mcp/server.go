package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"yada/internal/config"
	"yada/internal/tracker"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"food_add": {
		def:     foodAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFoodAdd },
	},
	"food_compose": {
		def:     foodComposeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFoodCompose },
	},
	"food_search": {
		def:     foodSearchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFoodSearch },
	},
	"food_list": {
		def:     foodListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFoodList },
	},
	"food_import": {
		def:     foodImportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFoodImport },
	},
	"log_add": {
		def:     logAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogAdd },
	},
	"log_remove": {
		def:     logRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogRemove },
	},
	"log_undo": {
		def:     logUndoToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogUndo },
	},
	"log_show": {
		def:     logShowToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogShow },
	},
	"log_total": {
		def:     logTotalToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogTotal },
	},
	"log_summary": {
		def:     logSummaryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogSummary },
	},
	"diet_target": {
		def:     dietTargetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDietTarget },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Yada tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(t *tracker.Tracker, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"yada",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(t, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(t *tracker.Tracker, cfg *config.Config, version string) error {
	s := NewServer(t, cfg, version)
	return server.ServeStdio(s)
}
