package service

import (
	"fmt"

	"github.com/louisbranch/catering.space/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationModule struct {
	name     string
	register func(mcpRegistrationTarget) error
}

const mcpQuoteToolsModuleName = "quote-tools"

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.QuoteCalculateInput, domain.QuoteCalculateResult](),
	newMCPToolRegistrar[domain.QuoteApplyEditsInput, domain.QuoteApplyEditsResult](),
	newMCPToolRegistrar[domain.QuoteSaveInput, domain.QuoteRevisionResult](),
	newMCPToolRegistrar[domain.QuoteGetInput, domain.QuoteRevisionResult](),
	newMCPToolRegistrar[domain.QuoteRevisionsInput, domain.QuoteRevisionsResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(client domain.QuoteClient) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpQuoteToolsModuleName,
			register: func(registrar mcpRegistrationTarget) error {
				return registerQuoteTools(registrar, client)
			},
		},
	}
}
