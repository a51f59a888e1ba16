package service

import (
	"fmt"

	"github.com/louisbranch/catering.space/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

func registerQuoteTools(registrar mcpRegistrationTarget, client domain.QuoteClient) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.QuoteCalculateTool(), handler: domain.QuoteCalculateHandler(client)},
		{tool: domain.QuoteApplyEditsTool(), handler: domain.QuoteApplyEditsHandler(client)},
		{tool: domain.QuoteSaveTool(), handler: domain.QuoteSaveHandler(client)},
		{tool: domain.QuoteGetTool(), handler: domain.QuoteGetHandler(client)},
		{tool: domain.QuoteRevisionsTool(), handler: domain.QuoteRevisionsHandler(client)},
	}
	for _, registration := range registrations {
		if err := registerTool(registrar, registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}

func registerTool(registrar mcpRegistrationTarget, tool *mcp.Tool, handler any) error {
	if err := registrar.AddTool(tool, handler); err != nil {
		return fmt.Errorf("register tool %q: %w", tool.Name, err)
	}
	return nil
}
